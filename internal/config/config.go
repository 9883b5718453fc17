package config

import (
	"encoding/json"
	"fmt"
)

// Config represents the main toolbus configuration
type Config struct {
	// Tools
	Tools ToolsConfig `json:"tools" mapstructure:"tools"`

	// Scheduled tool invocations
	Schedules []ScheduleConfig `json:"schedules" mapstructure:"schedules"`

	// Invocation history
	History HistoryConfig `json:"history" mapstructure:"history"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Gateway configuration
	Gateway GatewayConfig `json:"gateway" mapstructure:"gateway"`

	// Data directory
	DataDir string `json:"data_dir" mapstructure:"data_dir"`
}

// ToolsConfig holds per-tool configuration. Tools whose section is disabled
// are not registered.
type ToolsConfig struct {
	Weather WeatherConfig `json:"weather" mapstructure:"weather"`
	Search  SearchConfig  `json:"search" mapstructure:"search"`
	Email   EmailConfig   `json:"email" mapstructure:"email"`
}

// WeatherConfig holds the forecast provider settings
type WeatherConfig struct {
	Enabled        bool   `json:"enabled" mapstructure:"enabled"`
	BaseURL        string `json:"base_url" mapstructure:"base_url"`
	APIKey         string `json:"api_key" mapstructure:"api_key"`
	TimeoutSeconds int    `json:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// SearchConfig holds the Tavily search settings
type SearchConfig struct {
	Enabled        bool   `json:"enabled" mapstructure:"enabled"`
	APIKey         string `json:"api_key" mapstructure:"api_key"`
	BaseURL        string `json:"base_url" mapstructure:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// EmailConfig holds SMTP settings for the send_email tool
type EmailConfig struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	Host     string `json:"host" mapstructure:"host"`
	Port     int    `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	From     string `json:"from" mapstructure:"from"`
}

// ScheduleConfig describes a recurring tool invocation
type ScheduleConfig struct {
	Name string                 `json:"name" mapstructure:"name"`
	Tool string                 `json:"tool" mapstructure:"tool"`
	Args map[string]interface{} `json:"args" mapstructure:"args"`
	Cron string                 `json:"cron" mapstructure:"cron"`
}

// HistoryConfig holds invocation history settings
type HistoryConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level     string `json:"level" mapstructure:"level"`
	File      string `json:"file" mapstructure:"file"`
	Redaction bool   `json:"redaction" mapstructure:"redaction"`
}

// GatewayConfig holds gateway server configuration
type GatewayConfig struct {
	Port         int    `json:"port" mapstructure:"port"`
	Host         string `json:"host" mapstructure:"host"`
	SharedSecret string `json:"shared_secret" mapstructure:"shared_secret"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Tools: ToolsConfig{
			Weather: WeatherConfig{
				Enabled:        false,
				TimeoutSeconds: 10,
			},
			Search: SearchConfig{
				Enabled:        false,
				TimeoutSeconds: 15,
			},
			Email: EmailConfig{
				Enabled: false,
				Port:    587,
			},
		},
		Schedules: []ScheduleConfig{},
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Redaction: true,
		},
		Gateway: GatewayConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			SharedSecret: "",
		},
		DataDir: "",
	}
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Gateway.Port <= 0 || c.Gateway.Port > 65535 {
		return fmt.Errorf("invalid gateway port: %d", c.Gateway.Port)
	}

	if c.Tools.Weather.Enabled && c.Tools.Weather.BaseURL == "" {
		return fmt.Errorf("weather tool: base_url is required when enabled")
	}
	if c.Tools.Search.Enabled && c.Tools.Search.APIKey == "" {
		return fmt.Errorf("search tool: api_key is required when enabled")
	}
	if c.Tools.Email.Enabled {
		if c.Tools.Email.Host == "" {
			return fmt.Errorf("email tool: host is required when enabled")
		}
		if c.Tools.Email.From == "" {
			return fmt.Errorf("email tool: from address is required when enabled")
		}
	}

	seen := make(map[string]bool, len(c.Schedules))
	for i, sched := range c.Schedules {
		if sched.Name == "" {
			return fmt.Errorf("schedule %d: name is required", i)
		}
		if seen[sched.Name] {
			return fmt.Errorf("schedule %s: duplicate name", sched.Name)
		}
		seen[sched.Name] = true
		if sched.Tool == "" {
			return fmt.Errorf("schedule %s: tool is required", sched.Name)
		}
		if sched.Cron == "" {
			return fmt.Errorf("schedule %s: cron expression is required", sched.Name)
		}
	}

	return nil
}
