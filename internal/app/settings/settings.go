package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/slok/planboard/internal/log"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/storage"
)

// ServiceConfig is the configuration for the settings service.
type ServiceConfig struct {
	Repository storage.SettingsRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Settings"})
	return nil
}

// Service gets and sets the board view settings of projects.
type Service struct {
	repo   storage.SettingsRepository
	logger log.Logger
}

// NewService creates a new settings service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Load returns the saved settings of the project or the defaults when it never saved any.
func Load(ctx context.Context, repo storage.SettingsRepository, projectID string) (model.ViewSettings, error) {
	s, err := repo.GetViewSettings(ctx, projectID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.DefaultViewSettings(projectID), nil
		}
		return model.ViewSettings{}, fmt.Errorf("could not get view settings: %w", err)
	}

	return *s, nil
}

// Get returns the view settings of a project.
func (s *Service) Get(ctx context.Context, projectID string) (*model.ViewSettings, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project id is required: %w", model.ErrNotValid)
	}

	vs, err := Load(ctx, s.repo, projectID)
	if err != nil {
		return nil, err
	}

	return &vs, nil
}

// SetRequest contains the settings to change, nil fields are left as they are.
type SetRequest struct {
	ProjectID     string
	DateMode      *model.DateMode
	Granularity   *model.Granularity
	TimelineWidth *int
	HiddenColumns []string // Nil keeps them, empty shows all.
	Region        *string
}

// Set updates and saves the view settings of a project.
func (s *Service) Set(ctx context.Context, req SetRequest) (*model.ViewSettings, error) {
	if req.ProjectID == "" {
		return nil, fmt.Errorf("project id is required: %w", model.ErrNotValid)
	}

	vs, err := Load(ctx, s.repo, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if req.DateMode != nil {
		vs.DateMode = *req.DateMode
	}
	if req.Granularity != nil {
		vs.Granularity = *req.Granularity
	}
	if req.TimelineWidth != nil {
		vs.TimelineWidth = *req.TimelineWidth
	}
	if req.HiddenColumns != nil {
		vs.HiddenColumns = append([]string{}, req.HiddenColumns...)
	}
	if req.Region != nil {
		vs.Region = *req.Region
	}

	if err := vs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	if err := s.repo.SaveViewSettings(ctx, vs); err != nil {
		return nil, fmt.Errorf("could not save view settings: %w", err)
	}

	s.logger.Infof("View settings of project %s saved", req.ProjectID)

	return &vs, nil
}
