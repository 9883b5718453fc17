package std

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/toolbus/toolbus/pkg/tooldispatch"
)

// WeatherConfig configures the weather tool.
type WeatherConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// WeatherTool looks up the forecast for a location on a date. It is declared
// to the model as get_weather_on_date while living in the registry as
// "weather"; the dispatcher's alias table bridges the two names.
type WeatherTool struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewWeatherTool creates the weather tool.
func NewWeatherTool(cfg WeatherConfig) *WeatherTool {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &WeatherTool{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient overrides the HTTP client, mainly for tests.
func (t *WeatherTool) WithHTTPClient(client *http.Client) *WeatherTool {
	t.httpClient = client
	return t
}

// Declaration implements tooldispatch.Tool.
func (t *WeatherTool) Declaration() tooldispatch.Declaration {
	return tooldispatch.Declaration{
		Name:        "get_weather_on_date",
		Description: "Get the weather forecast for a location on a specific date.",
		Parameters: &tooldispatch.Schema{
			Type: "object",
			Properties: map[string]*tooldispatch.Schema{
				"location": {Type: "string", Description: "City or place name"},
				"date": {
					Type:        "string",
					Description: "Date in YYYY-MM-DD form, defaults to today",
					Format:      "date",
				},
			},
			Required: []string{"location"},
		},
	}
}

// Execute implements tooldispatch.Tool.
func (t *WeatherTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	if err := tooldispatch.ValidateArgs(t.Declaration(), args); err != nil {
		return nil, err
	}
	if t.baseURL == "" {
		return nil, fmt.Errorf("weather base URL is not configured")
	}

	location, _ := args["location"].(string)
	date, _ := args["date"].(string)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	endpoint, err := url.Parse(t.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid weather base URL: %w", err)
	}
	query := endpoint.Query()
	query.Set("location", location)
	query.Set("date", date)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read weather response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather service returned %d: %s", resp.StatusCode, string(body))
	}

	var forecast map[string]interface{}
	if err := json.Unmarshal(body, &forecast); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	return forecast, nil
}
