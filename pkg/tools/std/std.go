// Package std provides the baseline tool set registered with the dispatcher.
package std

import (
	"fmt"

	"github.com/toolbus/toolbus/pkg/tooldispatch"
)

// Options configures which optional tools are registered.
type Options struct {
	Weather *WeatherConfig
	Search  *SearchConfig
	Email   *EmailConfig
}

// Register wires the standard tools into reg and returns the alias table the
// dispatcher needs for them. Registration errors are startup-time
// configuration bugs; callers should treat them as fatal.
func Register(reg *tooldispatch.Registry, opts Options) (map[string]string, error) {
	if reg == nil {
		return nil, fmt.Errorf("registry is required")
	}

	aliases := make(map[string]string)

	if err := reg.Register("calc", NewCalcTool()); err != nil {
		return nil, fmt.Errorf("failed to register tool calc: %w", err)
	}
	if err := reg.Register("datetime", NewDatetimeTool()); err != nil {
		return nil, fmt.Errorf("failed to register tool datetime: %w", err)
	}
	if err := reg.Register("text", NewTextTool()); err != nil {
		return nil, fmt.Errorf("failed to register tool text: %w", err)
	}

	if opts.Weather != nil {
		// The weather tool keeps the historical model-facing shape: its
		// declaration record is {functionDeclarations: ...} and the model
		// calls it by its declared name rather than its registry name.
		err := reg.Register("weather", NewWeatherTool(*opts.Weather),
			tooldispatch.WithEnvelopeStyle(tooldispatch.EnvelopeFunctionDeclarations))
		if err != nil {
			return nil, fmt.Errorf("failed to register tool weather: %w", err)
		}
		aliases["get_weather_on_date"] = "weather"
	}

	if opts.Search != nil {
		if err := reg.Register("search", NewSearchTool(*opts.Search)); err != nil {
			return nil, fmt.Errorf("failed to register tool search: %w", err)
		}
	}

	if opts.Email != nil {
		if err := reg.Register("send_email", NewEmailTool(NewSMTPSender(*opts.Email))); err != nil {
			return nil, fmt.Errorf("failed to register tool send_email: %w", err)
		}
	}

	return aliases, nil
}
