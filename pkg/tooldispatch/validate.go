package tooldispatch

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// validateDeclaration rejects malformed declarations at registration time so
// configuration bugs surface at startup rather than on the first call.
func validateDeclaration(name string, decl Declaration) error {
	if decl.Description == "" {
		return fmt.Errorf("tool %q: description is required", name)
	}
	if decl.Parameters == nil {
		return fmt.Errorf("tool %q: parameters are required", name)
	}
	if decl.Parameters.Type != "object" {
		return fmt.Errorf("tool %q: parameters.type must be \"object\", got %q", name, decl.Parameters.Type)
	}
	if _, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(decl.Parameters)); err != nil {
		return fmt.Errorf("tool %q: parameters are not a valid schema: %w", name, err)
	}
	for _, required := range decl.Parameters.Required {
		if _, ok := decl.Parameters.Properties[required]; !ok {
			return fmt.Errorf("tool %q: required parameter %q is not declared", name, required)
		}
	}
	return nil
}

// ValidateArgs checks args against a tool's declared parameter schema.
// The dispatcher does not call this; argument validation is each tool's own
// responsibility, and tools that want schema enforcement opt in from their
// Execute implementation.
func ValidateArgs(decl Declaration, args map[string]interface{}) error {
	if decl.Parameters == nil {
		return nil
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(decl.Parameters))
	if err != nil {
		return fmt.Errorf("failed to compile parameter schema: %w", err)
	}

	if args == nil {
		args = map[string]interface{}{}
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return err
	}
	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, resultErr := range result.Errors() {
			messages = append(messages, resultErr.String())
		}
		return fmt.Errorf("invalid arguments: %v", messages)
	}
	return nil
}
