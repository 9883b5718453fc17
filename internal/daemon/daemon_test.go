package daemon

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolbus/toolbus/internal/config"
	"github.com/toolbus/toolbus/internal/logger"
)

func newTestDaemon(t *testing.T, mutate func(*config.Config)) *Daemon {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.History.Path = filepath.Join(cfg.DataDir, "history.db")
	if mutate != nil {
		mutate(cfg)
	}

	log, err := logger.New(logger.Config{Level: "error", Console: false})
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })

	d, err := New(cfg, log)
	require.NoError(t, err)
	return d
}

func TestNew(t *testing.T) {
	d := newTestDaemon(t, nil)

	assert.NotNil(t, d.Registry())
	assert.NotNil(t, d.Dispatcher())
	assert.False(t, d.IsRunning())

	// Baseline tools are always present
	assert.Equal(t, []string{"calc", "datetime", "text"}, d.Registry().Names())
}

func TestNew_HistoryDisabled(t *testing.T) {
	d := newTestDaemon(t, func(cfg *config.Config) {
		cfg.History.Enabled = false
	})

	assert.Nil(t, d.history)
}

func TestNew_OptionalTools(t *testing.T) {
	d := newTestDaemon(t, func(cfg *config.Config) {
		cfg.Tools.Weather.Enabled = true
		cfg.Tools.Weather.BaseURL = "http://weather.local"
		cfg.Tools.Search.Enabled = true
		cfg.Tools.Search.APIKey = "tvly-test"
	})

	assert.Equal(t, []string{"calc", "datetime", "text", "weather", "search"}, d.Registry().Names())
	assert.Equal(t, map[string]string{"get_weather_on_date": "weather"}, d.Dispatcher().Aliases())
}

func TestNew_InvalidSchedule(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.History.Enabled = false
	cfg.Schedules = []config.ScheduleConfig{
		{Name: "bad", Tool: "calc", Cron: "not a cron expr"},
	}

	log, err := logger.New(logger.Config{Level: "error", Console: false})
	require.NoError(t, err)
	defer log.Close()

	_, err = New(cfg, log)
	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	// Gateway stays disabled without a shared secret, so Start does not bind
	// a port.
	d := newTestDaemon(t, nil)

	require.NoError(t, d.Start())
	assert.True(t, d.IsRunning())

	assert.Error(t, d.Start())

	require.NoError(t, d.Stop())
	assert.False(t, d.IsRunning())

	// Stop is idempotent
	assert.NoError(t, d.Stop())
}
