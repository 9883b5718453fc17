package std

import (
	"context"
	"fmt"
	"time"

	"github.com/toolbus/toolbus/pkg/tooldispatch"
)

// DatetimeTool answers date and time questions.
type DatetimeTool struct {
	// now is overridable for tests.
	now func() time.Time
}

// NewDatetimeTool creates the date/time tool.
func NewDatetimeTool() *DatetimeTool {
	return &DatetimeTool{now: time.Now}
}

// Declaration implements tooldispatch.Tool.
func (t *DatetimeTool) Declaration() tooldispatch.Declaration {
	return tooldispatch.Declaration{
		Name:        "datetime",
		Description: "Get the current time, reformat a date, or compute the number of days between two dates.",
		Parameters: &tooldispatch.Schema{
			Type: "object",
			Properties: map[string]*tooldispatch.Schema{
				"op": {
					Type:        "string",
					Description: "Operation to perform",
					Enum:        []string{"now", "format", "diff_days"},
				},
				"date": {
					Type:        "string",
					Description: "Date in YYYY-MM-DD form (format, diff_days)",
					Format:      "date",
				},
				"other": {
					Type:        "string",
					Description: "Second date in YYYY-MM-DD form (diff_days)",
					Format:      "date",
				},
				"layout": {
					Type:        "string",
					Description: "Go layout string for format, defaults to RFC1123",
				},
			},
			Required: []string{"op"},
		},
	}
}

// Execute implements tooldispatch.Tool.
func (t *DatetimeTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	if err := tooldispatch.ValidateArgs(t.Declaration(), args); err != nil {
		return nil, err
	}

	op, _ := args["op"].(string)
	switch op {
	case "now":
		return t.now().UTC().Format(time.RFC3339), nil

	case "format":
		date, err := parseDateArg(args, "date")
		if err != nil {
			return nil, err
		}
		layout := time.RFC1123
		if raw, ok := args["layout"].(string); ok && raw != "" {
			layout = raw
		}
		return date.Format(layout), nil

	case "diff_days":
		date, err := parseDateArg(args, "date")
		if err != nil {
			return nil, err
		}
		other, err := parseDateArg(args, "other")
		if err != nil {
			return nil, err
		}
		days := int(other.Sub(date).Hours() / 24)
		return fmt.Sprintf("%d", days), nil

	default:
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}
}

func parseDateArg(args map[string]interface{}, key string) (time.Time, error) {
	raw, _ := args[key].(string)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required", key)
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return date, nil
}
