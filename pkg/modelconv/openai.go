package modelconv

import (
	"github.com/openai/openai-go"

	"github.com/toolbus/toolbus/pkg/tooldispatch"
)

// OpenAITools converts declaration records into chat completion tool params.
func OpenAITools(records []tooldispatch.DeclarationRecord) ([]openai.ChatCompletionToolParam, error) {
	flat, err := flatten(records)
	if err != nil {
		return nil, err
	}

	tools := make([]openai.ChatCompletionToolParam, 0, len(flat))
	for _, decl := range flat {
		tools = append(tools, openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        decl.name,
				Description: openai.String(decl.description),
				Parameters:  openai.FunctionParameters(decl.parameters),
			},
		})
	}
	return tools, nil
}
