package tooldispatch

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

type entry struct {
	tool  Tool
	style EnvelopeStyle
}

// Registry owns the name-to-tool mapping. It is populated during a bounded
// startup phase and read-only once dispatch traffic begins.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	order   []string
}

// NewRegistry creates an empty registry. Callers compose it explicitly and
// pass it by reference; there is no package-level instance.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
	}
}

// RegisterOption customizes a single registration.
type RegisterOption func(*entry)

// WithEnvelopeStyle sets the declaration record shape for the tool.
func WithEnvelopeStyle(style EnvelopeStyle) RegisterOption {
	return func(e *entry) {
		e.style = style
	}
}

// Register binds tool under name. Registering a name twice returns a
// *DuplicateRegistrationError and leaves the first binding intact.
func (r *Registry) Register(name string, tool Tool, opts ...RegisterOption) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("tool name is required")
	}
	if tool == nil {
		return fmt.Errorf("tool %q: implementation is required", name)
	}
	if err := validateDeclaration(name, tool.Declaration()); err != nil {
		return fmt.Errorf("invalid declaration: %w", err)
	}

	e := &entry{tool: tool, style: EnvelopeKeyed}
	for _, opt := range opts {
		opt(e)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return &DuplicateRegistrationError{Name: name}
	}

	r.entries[name] = e
	r.order = append(r.order, name)

	log.Info().Str("tool", name).Str("envelope", string(e.style)).Msg("Tool registered")

	return nil
}

// Resolve returns the tool bound to name.
func (r *Registry) Resolve(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.tool, true
}

// Names returns registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Declarations produces one record per registered tool in registration order.
// Declarations are regenerated on every call, never cached, and nothing is
// executed or mutated here.
func (r *Registry) Declarations() []DeclarationRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]DeclarationRecord, 0, len(r.order))
	for _, name := range r.order {
		e := r.entries[name]
		key := name
		if e.style == EnvelopeFunctionDeclarations {
			key = "functionDeclarations"
		}
		records = append(records, DeclarationRecord{key: e.tool.Declaration()})
	}
	return records
}
