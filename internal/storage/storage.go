package storage

import (
	"context"

	"github.com/slok/planboard/internal/model"
)

// TaskRepository is the task store.
type TaskRepository interface {
	CreateTask(ctx context.Context, t model.Task) error
	GetTask(ctx context.Context, id string) (*model.Task, error)
	ListTasks(ctx context.Context, projectID string) ([]model.Task, error)
	// UpdateTaskDates updates only the date pair of the update mode.
	UpdateTaskDates(ctx context.Context, u model.TaskDateUpdate) error
}

// MilestoneRepository knows the milestones of the projects.
type MilestoneRepository interface {
	CreateMilestone(ctx context.Context, m model.Milestone) error
	ListMilestones(ctx context.Context, projectID string) ([]model.Milestone, error)
}

// HolidayProvider returns the holidays of a region for a set of years.
type HolidayProvider interface {
	ListHolidays(ctx context.Context, region string, years []int) ([]model.Holiday, error)
}

// HolidayRepository stores holidays, used as a local holiday source and as cache.
type HolidayRepository interface {
	HolidayProvider
	// SaveHolidays replaces the holidays of a region year.
	SaveHolidays(ctx context.Context, region string, year int, holidays []model.Holiday) error
	// HasHolidayYear returns true when the holidays of a region year have been saved.
	HasHolidayYear(ctx context.Context, region string, year int) (bool, error)
}

// SettingsRepository persists the per project view settings.
type SettingsRepository interface {
	// GetViewSettings returns model.ErrNotFound when the project never saved settings.
	GetViewSettings(ctx context.Context, projectID string) (*model.ViewSettings, error)
	SaveViewSettings(ctx context.Context, s model.ViewSettings) error
}

// Repository is the complete board persistence.
type Repository interface {
	TaskRepository
	MilestoneRepository
	HolidayRepository
	SettingsRepository
}
