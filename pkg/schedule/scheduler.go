// Package schedule runs configured tool invocations on cron expressions.
package schedule

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/toolbus/toolbus/internal/metrics"
	"github.com/toolbus/toolbus/pkg/tooldispatch"
)

// JobConfig describes one scheduled invocation.
type JobConfig struct {
	Name string                 `json:"name" mapstructure:"name"`
	Tool string                 `json:"tool" mapstructure:"tool"`
	Args map[string]interface{} `json:"args" mapstructure:"args"`
	Cron string                 `json:"cron" mapstructure:"cron"`
}

// Scheduler dispatches jobs through the normal Handle path, so scheduled runs
// get the same envelope, logging, and audit treatment as model-driven calls.
type Scheduler struct {
	cron       *cron.Cron
	dispatcher *tooldispatch.Dispatcher
	metrics    *metrics.Metrics

	mu   sync.Mutex
	jobs map[string]cron.EntryID
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) {
		s.metrics = m
	}
}

// NewScheduler creates a scheduler over dispatcher.
func NewScheduler(dispatcher *tooldispatch.Dispatcher, opts ...Option) (*Scheduler, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}

	s := &Scheduler{
		cron:       cron.New(),
		dispatcher: dispatcher,
		jobs:       make(map[string]cron.EntryID),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Add registers a job and returns its id. The cron expression uses the
// standard five-field format.
func (s *Scheduler) Add(cfg JobConfig) (string, error) {
	if cfg.Name == "" {
		return "", fmt.Errorf("job name is required")
	}
	if cfg.Tool == "" {
		return "", fmt.Errorf("job %q: tool is required", cfg.Name)
	}
	if _, err := cron.ParseStandard(cfg.Cron); err != nil {
		return "", fmt.Errorf("job %q: invalid cron expression %q: %w", cfg.Name, cfg.Cron, err)
	}

	id := uuid.NewString()

	entryID, err := s.cron.AddFunc(cfg.Cron, func() {
		s.runJob(cfg)
	})
	if err != nil {
		return "", fmt.Errorf("job %q: failed to schedule: %w", cfg.Name, err)
	}

	s.mu.Lock()
	s.jobs[id] = entryID
	s.mu.Unlock()

	log.Info().Str("job", cfg.Name).Str("tool", cfg.Tool).Str("cron", cfg.Cron).Msg("Scheduled job added")

	return id, nil
}

// Remove deletes a job by id.
func (s *Scheduler) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, ok := s.jobs[id]; ok {
		s.cron.Remove(entryID)
		delete(s.jobs, id)
	}
}

// Len returns the number of scheduled jobs.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.jobs)
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Int("jobs", s.Len()).Msg("Scheduler started")
}

// Stop stops the scheduler and waits for in-flight jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) runJob(cfg JobConfig) {
	correlationID, err := gonanoid.New()
	if err != nil {
		correlationID = uuid.NewString()
	}

	env := s.dispatcher.Handle(context.Background(), tooldispatch.FunctionCall{
		Name: cfg.Tool,
		Args: cfg.Args,
		ID:   correlationID,
	})

	resp := env.FunctionResponses[0]
	status := "success"
	if resp.Response.Error != "" {
		status = "error"
		log.Warn().
			Str("job", cfg.Name).
			Str("tool", cfg.Tool).
			Str("id", correlationID).
			Str("error", resp.Response.Error).
			Msg("Scheduled job failed")
	} else {
		log.Debug().
			Str("job", cfg.Name).
			Str("tool", cfg.Tool).
			Str("id", correlationID).
			Msg("Scheduled job completed")
	}

	if s.metrics != nil {
		s.metrics.ScheduleRunsTotal.WithLabelValues(cfg.Name, status).Inc()
	}
}
