package resize

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/slok/planboard/internal/log"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/storage"
)

// Ledger is where the resized task is proposed.
type Ledger interface {
	Effective(committed model.Task) (model.Task, bool)
	Propose(t model.Task, mode model.DateMode) error
}

// ServiceConfig is the configuration for the resize service.
type ServiceConfig struct {
	Repository storage.TaskRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Resize"})
	return nil
}

// Service changes the duration of a task keeping its start date.
type Service struct {
	repo   storage.TaskRepository
	logger log.Logger
}

// NewService creates a new resize service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the resize request parameters.
type Request struct {
	TaskID string
	Mode   model.DateMode
	// Duration is the new duration in days as typed by the user, both ends included.
	Duration string
	Ledger   Ledger
}

// ParseDuration parses a manually typed duration, it must be a positive number of days.
func ParseDuration(s string) (int, error) {
	days, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("duration %q is not a number: %w", s, model.ErrNotValid)
	}
	if days <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %d: %w", days, model.ErrNotValid)
	}
	return days, nil
}

// Run proposes the task with the new duration. Rejected inputs leave the ledger untouched.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	if req.Ledger == nil {
		return nil, fmt.Errorf("ledger is required: %w", model.ErrNotValid)
	}
	if !req.Mode.Valid() {
		return nil, fmt.Errorf("unknown date mode %q: %w", req.Mode, model.ErrNotValid)
	}

	days, err := ParseDuration(req.Duration)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.GetTask(ctx, req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("could not get task: %w", err)
	}

	t, _ := req.Ledger.Effective(*stored)
	start, _ := t.Dates(req.Mode)
	if start.IsZero() {
		return nil, fmt.Errorf("task %s has no %s start date: %w", t.ID, req.Mode, model.ErrNotValid)
	}

	resized := t.WithDates(req.Mode, start, start.AddDays(days-1))
	if err := req.Ledger.Propose(resized, req.Mode); err != nil {
		return nil, fmt.Errorf("could not propose change: %w", err)
	}

	s.logger.Debugf("Task %s resized to %d days", t.ID, days)

	return &resized, nil
}
