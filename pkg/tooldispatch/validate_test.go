package tooldispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherDeclaration() Declaration {
	return Declaration{
		Name:        "get_weather_on_date",
		Description: "Weather lookup",
		Parameters: &Schema{
			Type: "object",
			Properties: map[string]*Schema{
				"location": {Type: "string", Description: "City name"},
				"date":     {Type: "string", Description: "ISO date", Format: "date"},
				"days":     {Type: "integer", Description: "Forecast days"},
			},
			Required: []string{"location"},
		},
	}
}

func TestValidateArgs_Valid(t *testing.T) {
	decl := weatherDeclaration()

	err := ValidateArgs(decl, map[string]interface{}{
		"location": "Jakarta",
		"date":     "2026-08-29",
		"days":     3,
	})
	assert.NoError(t, err)
}

func TestValidateArgs_MissingRequired(t *testing.T) {
	decl := weatherDeclaration()

	err := ValidateArgs(decl, map[string]interface{}{"date": "2026-08-29"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location")
}

func TestValidateArgs_WrongType(t *testing.T) {
	decl := weatherDeclaration()

	err := ValidateArgs(decl, map[string]interface{}{
		"location": "Jakarta",
		"days":     "three",
	})
	assert.Error(t, err)
}

func TestValidateArgs_NilArgs(t *testing.T) {
	decl := Declaration{
		Description: "No required params",
		Parameters: &Schema{
			Type: "object",
			Properties: map[string]*Schema{
				"q": {Type: "string", Description: "Optional"},
			},
		},
	}

	assert.NoError(t, ValidateArgs(decl, nil))
}

func TestValidateArgs_NilParameters(t *testing.T) {
	assert.NoError(t, ValidateArgs(Declaration{Description: "bare"}, map[string]interface{}{"x": 1}))
}
