package std

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/toolbus/toolbus/pkg/tooldispatch"
)

// TextTool exposes small string utilities.
type TextTool struct{}

// NewTextTool creates the text utility tool.
func NewTextTool() *TextTool {
	return &TextTool{}
}

// Declaration implements tooldispatch.Tool.
func (t *TextTool) Declaration() tooldispatch.Declaration {
	return tooldispatch.Declaration{
		Name:        "text",
		Description: "Transform or inspect a piece of text.",
		Parameters: &tooldispatch.Schema{
			Type: "object",
			Properties: map[string]*tooldispatch.Schema{
				"op": {
					Type:        "string",
					Description: "Operation to perform",
					Enum:        []string{"upper", "lower", "trim", "length", "word_count"},
				},
				"value": {Type: "string", Description: "Input text"},
			},
			Required: []string{"op", "value"},
		},
	}
}

// Execute implements tooldispatch.Tool.
func (t *TextTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	if err := tooldispatch.ValidateArgs(t.Declaration(), args); err != nil {
		return nil, err
	}

	op, _ := args["op"].(string)
	value, _ := args["value"].(string)

	switch op {
	case "upper":
		return strings.ToUpper(value), nil
	case "lower":
		return strings.ToLower(value), nil
	case "trim":
		return strings.TrimSpace(value), nil
	case "length":
		return strconv.Itoa(utf8.RuneCountInString(value)), nil
	case "word_count":
		return strconv.Itoa(len(strings.Fields(value))), nil
	default:
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}
}
