package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Redaction)
	assert.Equal(t, 8080, cfg.Gateway.Port)
	assert.Equal(t, "0.0.0.0", cfg.Gateway.Host)
	assert.False(t, cfg.Tools.Weather.Enabled)
	assert.Equal(t, 10, cfg.Tools.Weather.TimeoutSeconds)
	assert.False(t, cfg.Tools.Search.Enabled)
	assert.False(t, cfg.Tools.Email.Enabled)
	assert.Equal(t, 587, cfg.Tools.Email.Port)
	assert.True(t, cfg.History.Enabled)
	assert.Empty(t, cfg.Schedules)
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid default config", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("invalid gateway port", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Gateway.Port = 0

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "gateway port")
	})

	t.Run("weather enabled without base url", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Tools.Weather.Enabled = true

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "base_url")
	})

	t.Run("search enabled without api key", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Tools.Search.Enabled = true

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "api_key")
	})

	t.Run("email enabled without host", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Tools.Email.Enabled = true
		cfg.Tools.Email.From = "bot@example.com"

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "host")
	})

	t.Run("email enabled fully configured", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Tools.Email.Enabled = true
		cfg.Tools.Email.Host = "smtp.example.com"
		cfg.Tools.Email.From = "bot@example.com"

		assert.NoError(t, cfg.Validate())
	})

	t.Run("schedule missing fields", func(t *testing.T) {
		tests := []struct {
			name     string
			schedule ScheduleConfig
			want     string
		}{
			{"missing name", ScheduleConfig{Tool: "calc", Cron: "* * * * *"}, "name is required"},
			{"missing tool", ScheduleConfig{Name: "job", Cron: "* * * * *"}, "tool is required"},
			{"missing cron", ScheduleConfig{Name: "job", Tool: "calc"}, "cron expression is required"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := DefaultConfig()
				cfg.Schedules = []ScheduleConfig{tt.schedule}

				err := cfg.Validate()
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.want)
			})
		}
	})

	t.Run("duplicate schedule names", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Schedules = []ScheduleConfig{
			{Name: "job", Tool: "calc", Cron: "* * * * *"},
			{Name: "job", Tool: "text", Cron: "0 * * * *"},
		}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate name")
	})
}

func TestConfigString(t *testing.T) {
	cfg := DefaultConfig()
	str := cfg.String()

	assert.NotEmpty(t, str)
	assert.Contains(t, str, "gateway")
	assert.Contains(t, str, "tools")
}
