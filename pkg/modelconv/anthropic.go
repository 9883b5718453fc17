package modelconv

import (
	"github.com/anthropics/anthropic-sdk-go"

	"github.com/toolbus/toolbus/pkg/tooldispatch"
)

// AnthropicTools converts declaration records into Messages API tool params.
func AnthropicTools(records []tooldispatch.DeclarationRecord) ([]anthropic.ToolUnionParam, error) {
	flat, err := flatten(records)
	if err != nil {
		return nil, err
	}

	tools := make([]anthropic.ToolUnionParam, 0, len(flat))
	for _, decl := range flat {
		toolParam := anthropic.ToolParam{
			Name:        decl.name,
			Description: anthropic.String(decl.description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: decl.parameters["properties"],
			},
		}

		if required, ok := decl.parameters["required"]; ok {
			if reqSlice, ok := required.([]interface{}); ok {
				strSlice := make([]string, len(reqSlice))
				for i, v := range reqSlice {
					strSlice[i], _ = v.(string)
				}
				toolParam.InputSchema.Required = strSlice
			}
		}

		tools = append(tools, anthropic.ToolUnionParam{OfTool: &toolParam})
	}
	return tools, nil
}
