package layout

import (
	"context"
	"fmt"

	"github.com/slok/planboard/internal/app/settings"
	"github.com/slok/planboard/internal/log"
	"github.com/slok/planboard/internal/milestone"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/storage"
	"github.com/slok/planboard/internal/timeline"
	"github.com/slok/planboard/internal/workday"
)

// PendingChanges overlays proposed task changes over the stored tasks.
type PendingChanges interface {
	Effective(committed model.Task) (model.Task, bool)
	Len() int
}

// ServiceConfig is the configuration for the layout service.
type ServiceConfig struct {
	Repository storage.Repository
	// Holidays is the holiday source, defaults to the repository.
	Holidays storage.HolidayProvider
	Logger   log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Holidays == nil {
		c.Holidays = c.Repository
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Layout"})
	return nil
}

// Service builds the board view model of a project.
type Service struct {
	repo     storage.Repository
	holidays storage.HolidayProvider
	logger   log.Logger
}

// NewService creates a new layout service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:     cfg.Repository,
		holidays: cfg.Holidays,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the layout request parameters.
type Request struct {
	ProjectID string
	// Optional overrides of the saved view settings, not persisted.
	DateMode    *model.DateMode
	Granularity *model.Granularity
	Width       *int
	// Pending is optional, when set its proposed changes replace the stored tasks.
	Pending PendingChanges
	// Preview is the live position of the task being dragged, if any.
	Preview *model.Preview
}

// Run builds the board. A project without schedulable tasks returns a board
// without window, it's not an error.
func (s *Service) Run(ctx context.Context, req Request) (*model.Board, error) {
	if req.ProjectID == "" {
		return nil, fmt.Errorf("project id is required: %w", model.ErrNotValid)
	}

	vs, err := settings.Load(ctx, s.repo, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if req.DateMode != nil {
		vs.DateMode = *req.DateMode
	}
	if req.Granularity != nil {
		vs.Granularity = *req.Granularity
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

	pending := map[string]bool{}
	if req.Pending != nil {
		for i, t := range tasks {
			et, ok := req.Pending.Effective(t)
			tasks[i] = et
			pending[t.ID] = ok
		}
	}

	board := &model.Board{Settings: vs, Preview: req.Preview}
	if req.Pending != nil {
		board.PendingCount = req.Pending.Len()
	}

	geo, ok := timeline.Compute(tasks, vs.DateMode)
	if !ok {
		s.logger.Debugf("Project %s has no schedulable tasks in %s mode", req.ProjectID, vs.DateMode)
		return board, nil
	}
	board.Window = geo.Window()

	ms, err := s.repo.ListMilestones(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("could not list milestones: %w", err)
	}

	holidays := s.holidaySet(ctx, vs.Region, geo)

	for _, g := range milestone.GroupBars(geo.Bars, model.ActiveMilestones(ms)) {
		bg := model.BoardGroup{
			Key:           g.Key,
			Name:          g.Name,
			Count:         g.Count(),
			TotalDuration: g.TotalDuration,
		}
		for _, b := range g.Bars {
			md := workday.ManDays(b.Task, vs.DateMode, holidays)
			bg.TotalManDays += md
			bg.Bars = append(bg.Bars, model.BoardBar{
				Task:        b.Task,
				Start:       b.Start,
				End:         b.End,
				StartOffset: b.StartOffset,
				Duration:    b.Duration,
				ManDays:     md,
				Pending:     pending[b.Task.ID],
			})
		}
		board.Groups = append(board.Groups, bg)
	}

	board.Headers, err = timeline.Headers(geo, vs.Granularity)
	if err != nil {
		return nil, fmt.Errorf("could not generate headers: %w", err)
	}

	return board, nil
}

// holidaySet returns the holidays of the window years. Holiday source errors only
// degrade man-days to weekend-only accounting.
func (s *Service) holidaySet(ctx context.Context, region string, geo *timeline.Geometry) workday.HolidaySet {
	if region == "" {
		return nil
	}

	hs, err := s.holidays.ListHolidays(ctx, region, workday.YearsSpanned(geo.MinDate, geo.MaxDate))
	if err != nil {
		s.logger.Warningf("Could not get %s holidays, man-days ignore them: %s", region, err)
		return nil
	}

	return workday.NewHolidaySet(hs...)
}
