// Package modelconv reshapes declaration records into the tool parameter
// types the model SDKs expect.
package modelconv

import (
	"encoding/json"
	"fmt"

	"github.com/toolbus/toolbus/pkg/tooldispatch"
)

// flatDeclaration is a declaration with its model-facing call name resolved:
// keyed records call by their registry name, functionDeclarations records by
// their declared name.
type flatDeclaration struct {
	name        string
	description string
	parameters  map[string]interface{}
}

func flatten(records []tooldispatch.DeclarationRecord) ([]flatDeclaration, error) {
	flat := make([]flatDeclaration, 0, len(records))
	for _, record := range records {
		for key, decl := range record {
			// Models call tools by their declared name. Fall back on the
			// record key for declarations that omit one.
			name := decl.Name
			if name == "" {
				name = key
			}
			if name == "functionDeclarations" {
				return nil, fmt.Errorf("functionDeclarations record without a declared name")
			}

			params, err := schemaToMap(decl.Parameters)
			if err != nil {
				return nil, fmt.Errorf("tool %q: %w", name, err)
			}

			flat = append(flat, flatDeclaration{
				name:        name,
				description: decl.Description,
				parameters:  params,
			})
		}
	}
	return flat, nil
}

func schemaToMap(schema *tooldispatch.Schema) (map[string]interface{}, error) {
	if schema == nil {
		return map[string]interface{}{"type": "object"}, nil
	}
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameter schema: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode parameter schema: %w", err)
	}
	return out, nil
}
