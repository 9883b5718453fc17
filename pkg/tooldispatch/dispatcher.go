package tooldispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/toolbus/toolbus/internal/metrics"
)

// Record describes one completed invocation for audit purposes.
type Record struct {
	CallName      string
	Tool          string
	CorrelationID string
	Args          map[string]interface{}
	Output        interface{}
	Error         string
	Duration      time.Duration
	At            time.Time
}

// Recorder receives a Record after every invocation. Implementations must not
// block dispatch semantics; recording failures are logged and swallowed.
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// Dispatcher routes a named call to its tool and normalizes the outcome.
// It holds no per-call state; concurrent Handle calls are independent.
type Dispatcher struct {
	registry *Registry
	aliases  map[string]string
	recorder Recorder
	metrics  *metrics.Metrics
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithAlias maps an alternate call name to a registry key. Aliases are
// checked before direct lookup.
func WithAlias(callName, registryKey string) DispatcherOption {
	return func(d *Dispatcher) {
		d.aliases[callName] = registryKey
	}
}

// WithAliases merges a whole alias table.
func WithAliases(aliases map[string]string) DispatcherOption {
	return func(d *Dispatcher) {
		for callName, registryKey := range aliases {
			d.aliases[callName] = registryKey
		}
	}
}

// WithRecorder attaches an invocation audit sink.
func WithRecorder(rec Recorder) DispatcherOption {
	return func(d *Dispatcher) {
		d.recorder = rec
	}
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// NewDispatcher creates a dispatcher over reg.
func NewDispatcher(reg *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		aliases:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Aliases returns a copy of the alias table.
func (d *Dispatcher) Aliases() map[string]string {
	out := make(map[string]string, len(d.aliases))
	for callName, registryKey := range d.aliases {
		out[callName] = registryKey
	}
	return out
}

// Handle routes one call and returns its response envelope. The contract is
// total: every request yields exactly one envelope carrying the request's
// correlation id, and no failure escapes as an error or panic.
func (d *Dispatcher) Handle(ctx context.Context, call FunctionCall) FunctionResponseEnvelope {
	start := time.Now()

	key := call.Name
	if target, ok := d.aliases[call.Name]; ok {
		key = target
	}

	tool, ok := d.registry.Resolve(key)
	if !ok {
		unknownErr := &UnknownToolError{Name: call.Name}
		log.Error().Str("call", call.Name).Str("id", call.ID).Msg("Unknown tool requested")
		d.observe(ctx, call, key, nil, unknownErr, time.Since(start))
		return failureEnvelope(call.ID, unknownErr.Error())
	}

	log.Debug().Str("tool", key).Str("call", call.Name).Str("id", call.ID).Msg("Executing tool")

	output, err := d.execute(ctx, tool, call.Args)
	duration := time.Since(start)
	d.observe(ctx, call, key, output, err, duration)

	if err != nil {
		log.Error().
			Str("tool", key).
			Str("id", call.ID).
			Dur("duration", duration).
			Err(err).
			Msg("Tool execution failed")
		// Only the summarized message crosses into the envelope; the raw
		// cause stays in the log.
		return failureEnvelope(call.ID, err.Error())
	}

	log.Debug().
		Str("tool", key).
		Str("id", call.ID).
		Dur("duration", duration).
		Msg("Tool execution completed")

	return successEnvelope(call.ID, output)
}

// execute invokes the tool, converting a panicking tool into an error so the
// total-response contract holds.
func (d *Dispatcher) execute(ctx context.Context, tool Tool, args map[string]interface{}) (output interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			output = nil
			err = fmt.Errorf("tool panicked: %v", r)
		}
	}()
	return tool.Execute(ctx, args)
}

func (d *Dispatcher) observe(ctx context.Context, call FunctionCall, tool string, output interface{}, err error, duration time.Duration) {
	status := "success"
	message := ""
	if err != nil {
		status = "error"
		message = err.Error()
	}

	if d.metrics != nil {
		d.metrics.ToolInvocationsTotal.WithLabelValues(tool, status).Inc()
		d.metrics.ToolInvocationDuration.WithLabelValues(tool).Observe(duration.Seconds())
	}

	if d.recorder != nil {
		rec := Record{
			CallName:      call.Name,
			Tool:          tool,
			CorrelationID: call.ID,
			Args:          call.Args,
			Output:        output,
			Error:         message,
			Duration:      duration,
			At:            time.Now(),
		}
		if recordErr := d.recorder.Record(ctx, rec); recordErr != nil {
			log.Warn().Err(recordErr).Str("id", call.ID).Msg("Failed to record invocation")
		}
	}
}
