// Package daemon wires the registry, dispatcher, scheduler, history store
// and gateway into a long-running service.
package daemon

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/toolbus/toolbus/internal/config"
	"github.com/toolbus/toolbus/internal/logger"
	"github.com/toolbus/toolbus/internal/metrics"
	"github.com/toolbus/toolbus/pkg/gateway"
	"github.com/toolbus/toolbus/pkg/history"
	"github.com/toolbus/toolbus/pkg/schedule"
	"github.com/toolbus/toolbus/pkg/tooldispatch"
	"github.com/toolbus/toolbus/pkg/tools/std"
)

// Daemon represents the toolbus daemon service
type Daemon struct {
	config  *config.Config
	logger  *logger.Logger
	metrics *metrics.Metrics

	// Core modules
	registry   *tooldispatch.Registry
	dispatcher *tooldispatch.Dispatcher
	history    *history.Store

	// Services
	scheduler     *schedule.Scheduler
	gatewayServer *gateway.Server

	startTime time.Time
	running   bool
	mu        sync.RWMutex
}

// New creates a new daemon instance
func New(cfg *config.Config, log *logger.Logger) (*Daemon, error) {
	d := &Daemon{
		config:  cfg,
		logger:  log,
		metrics: metrics.NewMetrics(),
	}

	if err := d.initializeCoreModules(); err != nil {
		return nil, fmt.Errorf("failed to initialize core modules: %w", err)
	}
	if err := d.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return d, nil
}

// initializeCoreModules builds the registry, tools and dispatcher
func (d *Daemon) initializeCoreModules() error {
	d.registry = tooldispatch.NewRegistry()

	aliases, err := std.Register(d.registry, toolOptions(d.config))
	if err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}
	d.logger.Info().Int("tools", d.registry.Len()).Msg("Tool registry initialized")
	d.metrics.ToolsRegistered.Set(float64(d.registry.Len()))

	dispatcherOpts := []tooldispatch.DispatcherOption{
		tooldispatch.WithAliases(aliases),
		tooldispatch.WithMetrics(d.metrics),
	}

	if d.config.History.Enabled {
		store, err := history.NewStore(d.config.History.Path)
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		d.history = store
		dispatcherOpts = append(dispatcherOpts, tooldispatch.WithRecorder(store))
		d.logger.Info().Str("path", d.config.History.Path).Msg("Invocation history initialized")
	}

	d.dispatcher = tooldispatch.NewDispatcher(d.registry, dispatcherOpts...)
	d.logger.Info().Msg("Dispatcher initialized")

	return nil
}

// initializeServices builds the scheduler and gateway
func (d *Daemon) initializeServices() error {
	scheduler, err := schedule.NewScheduler(d.dispatcher, schedule.WithMetrics(d.metrics))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	d.scheduler = scheduler

	for _, sched := range d.config.Schedules {
		job := schedule.JobConfig{
			Name: sched.Name,
			Tool: sched.Tool,
			Args: sched.Args,
			Cron: sched.Cron,
		}
		if _, err := d.scheduler.Add(job); err != nil {
			return fmt.Errorf("failed to add schedule %s: %w", sched.Name, err)
		}
	}
	if len(d.config.Schedules) > 0 {
		d.logger.Info().Int("jobs", d.scheduler.Len()).Msg("Schedules configured")
	}

	if d.config.Gateway.SharedSecret != "" {
		server, err := gateway.NewServer(gateway.Config{
			Host:         d.config.Gateway.Host,
			Port:         d.config.Gateway.Port,
			SharedSecret: d.config.Gateway.SharedSecret,
			Dispatcher:   d.dispatcher,
			Registry:     d.registry,
			Metrics:      d.metrics,
			Logger:       d.logger.GetZerolog(),
		})
		if err != nil {
			return fmt.Errorf("failed to create gateway server: %w", err)
		}
		d.gatewayServer = server
	} else {
		d.logger.Warn().Msg("Gateway disabled: no shared secret configured")
	}

	return nil
}

// Start starts all daemon services
func (d *Daemon) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return fmt.Errorf("daemon is already running")
	}

	if d.gatewayServer != nil {
		if err := d.gatewayServer.Start(); err != nil {
			return fmt.Errorf("failed to start gateway server: %w", err)
		}
	}
	d.scheduler.Start()

	d.startTime = time.Now()
	d.running = true
	d.logger.Info().Msg("Daemon started")

	return nil
}

// Stop gracefully stops all daemon services
func (d *Daemon) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return nil
	}

	d.logger.Info().Msg("Stopping daemon")

	d.scheduler.Stop()

	if d.gatewayServer != nil {
		if err := d.gatewayServer.Stop(); err != nil {
			d.logger.Error().Err(err).Msg("Failed to stop gateway server")
		}
	}

	if d.history != nil {
		if err := d.history.Close(); err != nil {
			d.logger.Error().Err(err).Msg("Failed to close history store")
		}
	}

	d.running = false
	d.logger.Info().Dur("uptime", time.Since(d.startTime)).Msg("Daemon stopped")

	return nil
}

// Run starts the daemon and blocks until a shutdown signal arrives
func (d *Daemon) Run() error {
	if err := d.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	d.logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	return d.Stop()
}

// Registry returns the tool registry
func (d *Daemon) Registry() *tooldispatch.Registry {
	return d.registry
}

// Dispatcher returns the dispatcher
func (d *Daemon) Dispatcher() *tooldispatch.Dispatcher {
	return d.dispatcher
}

// IsRunning reports whether the daemon is running
func (d *Daemon) IsRunning() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.running
}

// toolOptions maps the file configuration onto tool registration options.
func toolOptions(cfg *config.Config) std.Options {
	opts := std.Options{}

	if cfg.Tools.Weather.Enabled {
		opts.Weather = &std.WeatherConfig{
			BaseURL: cfg.Tools.Weather.BaseURL,
			APIKey:  cfg.Tools.Weather.APIKey,
			Timeout: time.Duration(cfg.Tools.Weather.TimeoutSeconds) * time.Second,
		}
	}
	if cfg.Tools.Search.Enabled {
		opts.Search = &std.SearchConfig{
			APIKey:  cfg.Tools.Search.APIKey,
			BaseURL: cfg.Tools.Search.BaseURL,
			Timeout: time.Duration(cfg.Tools.Search.TimeoutSeconds) * time.Second,
		}
	}
	if cfg.Tools.Email.Enabled {
		opts.Email = &std.EmailConfig{
			Host:     cfg.Tools.Email.Host,
			Port:     cfg.Tools.Email.Port,
			Username: cfg.Tools.Email.Username,
			Password: cfg.Tools.Email.Password,
			From:     cfg.Tools.Email.From,
		}
	}

	return opts
}
