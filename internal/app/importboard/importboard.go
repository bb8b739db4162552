package importboard

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/slok/planboard/internal/log"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/storage"
)

// BoardLoader loads a board from a file.
type BoardLoader interface {
	GetBoard(ctx context.Context, path string) (model.ProjectImport, error)
}

// ServiceConfig is the configuration for the import service.
type ServiceConfig struct {
	Loader     BoardLoader
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Loader == nil {
		return fmt.Errorf("loader is required")
	}
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ImportBoard"})
	return nil
}

// Service imports boards into the repository.
type Service struct {
	loader BoardLoader
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new import service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		loader: cfg.Loader,
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the import request parameters.
type Request struct {
	Path string
}

// Response is the summary of an import.
type Response struct {
	ProjectID     string
	Milestones    int
	Tasks         int
	Holidays      int
	HolidayRegion string
}

// Run loads the board file and stores its milestones, tasks and holidays. The
// holiday region becomes the project region when the project has no saved settings.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	b, err := s.loader.GetBoard(ctx, req.Path)
	if err != nil {
		return nil, fmt.Errorf("could not load board: %w", err)
	}

	for _, m := range b.Milestones {
		if err := s.repo.CreateMilestone(ctx, m); err != nil {
			return nil, fmt.Errorf("could not create milestone %q: %w", m.Name, err)
		}
	}

	for _, t := range b.Tasks {
		if err := s.repo.CreateTask(ctx, t); err != nil {
			return nil, fmt.Errorf("could not create task %q: %w", t.Name, err)
		}
	}

	if b.HolidayRegion != "" {
		if err := s.importHolidays(ctx, b); err != nil {
			return nil, err
		}
	}

	s.logger.Infof("Imported %d milestones and %d tasks into project %s", len(b.Milestones), len(b.Tasks), b.ProjectID)

	return &Response{
		ProjectID:     b.ProjectID,
		Milestones:    len(b.Milestones),
		Tasks:         len(b.Tasks),
		Holidays:      len(b.Holidays),
		HolidayRegion: b.HolidayRegion,
	}, nil
}

func (s *Service) importHolidays(ctx context.Context, b model.ProjectImport) error {
	byYear := map[int][]model.Holiday{}
	for _, h := range b.Holidays {
		byYear[h.Date.Year()] = append(byYear[h.Date.Year()], h)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	for _, y := range years {
		if err := s.repo.SaveHolidays(ctx, b.HolidayRegion, y, byYear[y]); err != nil {
			return fmt.Errorf("could not save %d holidays: %w", y, err)
		}
	}

	_, err := s.repo.GetViewSettings(ctx, b.ProjectID)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, model.ErrNotFound):
		return fmt.Errorf("could not get view settings: %w", err)
	}

	vs := model.DefaultViewSettings(b.ProjectID)
	vs.Region = b.HolidayRegion
	if err := s.repo.SaveViewSettings(ctx, vs); err != nil {
		return fmt.Errorf("could not save view settings: %w", err)
	}

	return nil
}
