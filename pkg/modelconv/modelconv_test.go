package modelconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolbus/toolbus/pkg/tooldispatch"
)

func sampleRecords() []tooldispatch.DeclarationRecord {
	return []tooldispatch.DeclarationRecord{
		{
			"calc": tooldispatch.Declaration{
				Name:        "calc",
				Description: "Evaluates arithmetic expressions",
				Parameters: &tooldispatch.Schema{
					Type: "object",
					Properties: map[string]*tooldispatch.Schema{
						"operation": {Type: "string", Enum: []string{"add", "subtract"}},
						"a":         {Type: "number"},
						"b":         {Type: "number"},
					},
					Required: []string{"operation", "a", "b"},
				},
			},
		},
		{
			"functionDeclarations": tooldispatch.Declaration{
				Name:        "get_weather_on_date",
				Description: "Fetches a weather forecast",
				Parameters: &tooldispatch.Schema{
					Type: "object",
					Properties: map[string]*tooldispatch.Schema{
						"location": {Type: "string"},
						"date":     {Type: "string", Format: "date"},
					},
					Required: []string{"location", "date"},
				},
			},
		},
	}
}

func TestFlattenResolvesNames(t *testing.T) {
	flat, err := flatten(sampleRecords())
	require.NoError(t, err)
	require.Len(t, flat, 2)

	assert.Equal(t, "calc", flat[0].name)
	assert.Equal(t, "get_weather_on_date", flat[1].name)
	assert.Equal(t, "object", flat[0].parameters["type"])
}

func TestFlattenRejectsAnonymousFunctionDeclarations(t *testing.T) {
	records := []tooldispatch.DeclarationRecord{
		{"functionDeclarations": tooldispatch.Declaration{Description: "nameless"}},
	}
	_, err := flatten(records)
	assert.Error(t, err)
}

func TestSchemaToMapNil(t *testing.T) {
	out, err := schemaToMap(nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"type": "object"}, out)
}

func TestOpenAITools(t *testing.T) {
	tools, err := OpenAITools(sampleRecords())
	require.NoError(t, err)
	require.Len(t, tools, 2)

	assert.Equal(t, "calc", tools[0].Function.Name)
	assert.Equal(t, "Evaluates arithmetic expressions", tools[0].Function.Description.Value)
	assert.Equal(t, "get_weather_on_date", tools[1].Function.Name)

	params := map[string]interface{}(tools[0].Function.Parameters)
	props, ok := params["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "operation")
}

func TestAnthropicTools(t *testing.T) {
	tools, err := AnthropicTools(sampleRecords())
	require.NoError(t, err)
	require.Len(t, tools, 2)

	require.NotNil(t, tools[0].OfTool)
	assert.Equal(t, "calc", tools[0].OfTool.Name)
	assert.Equal(t, []string{"operation", "a", "b"}, tools[0].OfTool.InputSchema.Required)

	require.NotNil(t, tools[1].OfTool)
	assert.Equal(t, "get_weather_on_date", tools[1].OfTool.Name)
	assert.Equal(t, []string{"location", "date"}, tools[1].OfTool.InputSchema.Required)
}
