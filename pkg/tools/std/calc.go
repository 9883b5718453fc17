package std

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/toolbus/toolbus/pkg/tooldispatch"
)

// CalcTool performs basic arithmetic.
type CalcTool struct{}

// NewCalcTool creates the calculator tool.
func NewCalcTool() *CalcTool {
	return &CalcTool{}
}

// Declaration implements tooldispatch.Tool.
func (t *CalcTool) Declaration() tooldispatch.Declaration {
	return tooldispatch.Declaration{
		Name:        "calc",
		Description: "Perform an arithmetic operation on two numbers.",
		Parameters: &tooldispatch.Schema{
			Type: "object",
			Properties: map[string]*tooldispatch.Schema{
				"op": {
					Type:        "string",
					Description: "Operation to perform",
					Enum:        []string{"add", "subtract", "multiply", "divide", "pow"},
				},
				"a": {Type: "number", Description: "Left operand"},
				"b": {Type: "number", Description: "Right operand"},
			},
			Required: []string{"op", "a", "b"},
		},
	}
}

// Execute implements tooldispatch.Tool.
func (t *CalcTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	if err := tooldispatch.ValidateArgs(t.Declaration(), args); err != nil {
		return nil, err
	}

	op, _ := args["op"].(string)
	a, err := toFloat(args["a"])
	if err != nil {
		return nil, fmt.Errorf("invalid operand a: %w", err)
	}
	b, err := toFloat(args["b"])
	if err != nil {
		return nil, fmt.Errorf("invalid operand b: %w", err)
	}

	var result float64
	switch op {
	case "add":
		result = a + b
	case "subtract":
		result = a - b
	case "multiply":
		result = a * b
	case "divide":
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		result = a / b
	case "pow":
		result = math.Pow(a, b)
	default:
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return nil, fmt.Errorf("result is not a finite number")
	}

	return strconv.FormatFloat(result, 'f', -1, 64), nil
}

func toFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	default:
		return 0, fmt.Errorf("expected a number, got %T", value)
	}
}
