package tooldispatch

import "context"

// Tool is a named capability the dispatcher can invoke on behalf of a model.
type Tool interface {
	// Declaration returns the schema describing the tool to the model.
	// It must be pure and side-effect free; the registry regenerates
	// declarations on demand and never caches them.
	Declaration() Declaration

	// Execute runs the tool with the given arguments. The return value must
	// be JSON-serializable. Argument validation is the tool's own
	// responsibility; the dispatcher passes args through untouched.
	// Timeouts are likewise a per-tool concern: the dispatcher threads the
	// context but enforces no deadline of its own.
	Execute(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// Declaration describes a tool's callable interface.
type Declaration struct {
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters"`
}

// Schema is a JSON-Schema-shaped parameter description.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Format      string             `json:"format,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// EnvelopeStyle selects the record shape a tool's declaration is wrapped in.
type EnvelopeStyle string

const (
	// EnvelopeKeyed wraps the declaration as {<registry name>: declaration}.
	EnvelopeKeyed EnvelopeStyle = "keyed"
	// EnvelopeFunctionDeclarations wraps it as {functionDeclarations: declaration},
	// the shape some model-calling conventions expect for specific tools.
	EnvelopeFunctionDeclarations EnvelopeStyle = "functionDeclarations"
)

// DeclarationRecord is a one-key mapping produced by Registry.Declarations.
type DeclarationRecord map[string]Declaration
