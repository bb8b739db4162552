package move

import (
	"context"
	"fmt"

	"github.com/slok/planboard/internal/app/settings"
	"github.com/slok/planboard/internal/drag"
	"github.com/slok/planboard/internal/log"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/storage"
	"github.com/slok/planboard/internal/timeline"
)

// Ledger receives the committed drags.
type Ledger interface {
	drag.Proposer
	Effective(committed model.Task) (model.Task, bool)
}

// ServiceConfig is the configuration for the move service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Move"})
	return nil
}

// Service reschedules a task replaying a pointer drag over its timeline bar.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new move service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the move request parameters.
type Request struct {
	ProjectID string
	TaskID    string
	// FromX is where the pointer is pressed, nil presses the middle of the bar.
	FromX *float64
	ToX   float64
	// Steps is the number of pointer moves between FromX and ToX, at least one.
	Steps int
	// Optional overrides of the saved view settings.
	DateMode *model.DateMode
	Width    *int
	Ledger   Ledger
}

// Response is the result of a move.
type Response struct {
	Outcome drag.OutcomeKind
	// Task is the proposed task on a commit, the untouched task otherwise.
	Task model.Task
	// LastPreview is the last live position shown before the release.
	LastPreview *model.Preview
	Days        int
}

// Run presses the task bar, moves the pointer and releases it.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	if req.Ledger == nil {
		return nil, fmt.Errorf("ledger is required: %w", model.ErrNotValid)
	}
	if req.Steps <= 0 {
		req.Steps = 1
	}

	vs, err := settings.Load(ctx, s.repo, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if req.DateMode != nil {
		vs.DateMode = *req.DateMode
	}
	if req.Width != nil {
		vs.TimelineWidth = *req.Width
	}
	if err := vs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid view settings: %w", err)
	}

	tasks, err := s.repo.ListTasks(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}
	for i, t := range tasks {
		tasks[i], _ = req.Ledger.Effective(t)
	}

	geo, ok := timeline.Compute(tasks, vs.DateMode)
	if !ok {
		return nil, fmt.Errorf("project %s: %w", req.ProjectID, model.ErrNoGeometry)
	}

	bar, ok := geo.Bar(req.TaskID)
	if !ok {
		return nil, fmt.Errorf("task %s is not on the %s timeline: %w", req.TaskID, vs.DateMode, model.ErrNotFound)
	}

	width := float64(vs.TimelineWidth)
	barX, barW := geo.BarPixels(bar, width)
	fromX := barX + barW/2
	if req.FromX != nil {
		fromX = *req.FromX
	}
	if fromX < barX || fromX > barX+barW {
		return nil, fmt.Errorf("pointer at x=%.1f is not on the task bar [%.1f, %.1f]: %w", fromX, barX, barX+barW, model.ErrNotValid)
	}

	events := drag.NewDispatcher()
	m, err := drag.NewMachine(drag.MachineConfig{
		Proposer: req.Ledger,
		Source:   events,
		Logger:   s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create drag machine: %w", err)
	}
	m.SetLayout(geo, width)

	if err := m.PointerDown(bar.Task, vs.DateMode, fromX, fromX-barX, drag.ButtonPrimary); err != nil {
		return nil, fmt.Errorf("could not start drag: %w", err)
	}

	resp := &Response{Task: bar.Task}
	step := (req.ToX - fromX) / float64(req.Steps)
	for i := 1; i <= req.Steps; i++ {
		events.Dispatch(drag.PointerEvent{Kind: drag.EventMove, X: fromX + step*float64(i)})
		if p := m.Preview(); p != nil {
			resp.LastPreview = p
		}
	}
	if sess, ok := m.Session(); ok && sess.Temp != nil {
		resp.Days = bar.Start.DaysUntil(sess.Temp.Start)
	}

	out, err := m.PointerUp()
	if err != nil {
		return nil, err
	}
	resp.Outcome = out.Kind
	if out.Kind == drag.OutcomeCommit {
		resp.Task = out.Task
	}

	s.logger.Debugf("Task %s drag from x=%.1f to x=%.1f ended as %s", req.TaskID, fromX, req.ToX, out.Kind)

	return resp, nil
}
