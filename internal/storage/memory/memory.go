package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/slok/planboard/internal/log"
	"github.com/slok/planboard/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

type holidayYearKey struct {
	region string
	year   int
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	tasks      map[string]model.Task
	taskOrder  []string
	milestones map[string]model.Milestone
	msOrder    []string
	holidays   map[holidayYearKey][]model.Holiday
	settings   map[string]model.ViewSettings
	mu         sync.RWMutex
	logger     log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		tasks:      make(map[string]model.Task),
		milestones: make(map[string]model.Milestone),
		holidays:   make(map[holidayYearKey][]model.Holiday),
		settings:   make(map[string]model.ViewSettings),
		logger:     cfg.Logger,
	}, nil
}

// CreateTask creates a new task in the repository.
func (r *Repository) CreateTask(ctx context.Context, t model.Task) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[t.ID]; ok {
		return fmt.Errorf("task with id %s: %w", t.ID, model.ErrAlreadyExists)
	}

	r.tasks[t.ID] = t
	r.taskOrder = append(r.taskOrder, t.ID)
	r.logger.Debugf("Created task in repository: %s", t.ID)

	return nil
}

// GetTask retrieves a task by ID.
func (r *Repository) GetTask(ctx context.Context, id string) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}

	return &t, nil
}

// ListTasks returns the tasks of a project in creation order.
func (r *Repository) ListTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]model.Task, 0, len(r.taskOrder))
	for _, id := range r.taskOrder {
		if t := r.tasks[id]; t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}

	return tasks, nil
}

// UpdateTaskDates updates the date pair of the update mode.
func (r *Repository) UpdateTaskDates(ctx context.Context, u model.TaskDateUpdate) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("invalid update: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[u.TaskID]
	if !ok {
		return fmt.Errorf("task %s: %w", u.TaskID, model.ErrNotFound)
	}

	r.tasks[u.TaskID] = t.WithDates(u.Mode, u.Start, u.End)
	r.logger.Debugf("Updated %s dates of task in repository: %s", u.Mode, u.TaskID)

	return nil
}

// CreateMilestone creates a new milestone in the repository.
func (r *Repository) CreateMilestone(ctx context.Context, m model.Milestone) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("invalid milestone: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.milestones[m.ID]; ok {
		return fmt.Errorf("milestone with id %s: %w", m.ID, model.ErrAlreadyExists)
	}

	r.milestones[m.ID] = m
	r.msOrder = append(r.msOrder, m.ID)
	r.logger.Debugf("Created milestone in repository: %s", m.ID)

	return nil
}

// ListMilestones returns the milestones of a project in creation order.
func (r *Repository) ListMilestones(ctx context.Context, projectID string) ([]model.Milestone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ms := make([]model.Milestone, 0, len(r.msOrder))
	for _, id := range r.msOrder {
		if m := r.milestones[id]; m.ProjectID == projectID {
			ms = append(ms, m)
		}
	}

	return ms, nil
}

// SaveHolidays replaces the holidays of a region year.
func (r *Repository) SaveHolidays(ctx context.Context, region string, year int, holidays []model.Holiday) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	hs := make([]model.Holiday, 0, len(holidays))
	for _, h := range holidays {
		if h.Date.Year() != year {
			return fmt.Errorf("holiday %s is not from %d: %w", h.Date, year, model.ErrNotValid)
		}
		h.Region = region
		hs = append(hs, h)
	}

	r.holidays[holidayYearKey{region: region, year: year}] = hs
	r.logger.Debugf("Saved %d holidays of %s %d in repository", len(hs), region, year)

	return nil
}

// HasHolidayYear returns true when the holidays of a region year have been saved.
func (r *Repository) HasHolidayYear(ctx context.Context, region string, year int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.holidays[holidayYearKey{region: region, year: year}]
	return ok, nil
}

// ListHolidays returns the saved holidays of a region for the years, sorted by date.
func (r *Repository) ListHolidays(ctx context.Context, region string, years []int) ([]model.Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var hs []model.Holiday
	for _, y := range years {
		hs = append(hs, r.holidays[holidayYearKey{region: region, year: y}]...)
	}
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].Date.Before(hs[j].Date) })

	return hs, nil
}

// GetViewSettings returns the view settings of a project.
func (r *Repository) GetViewSettings(ctx context.Context, projectID string) (*model.ViewSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.settings[projectID]
	if !ok {
		return nil, fmt.Errorf("settings of project %s: %w", projectID, model.ErrNotFound)
	}

	s.HiddenColumns = append([]string{}, s.HiddenColumns...)
	return &s, nil
}

// SaveViewSettings creates or replaces the view settings of a project.
func (r *Repository) SaveViewSettings(ctx context.Context, s model.ViewSettings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s.HiddenColumns = append([]string{}, s.HiddenColumns...)
	r.settings[s.ProjectID] = s
	r.logger.Debugf("Saved view settings of project in repository: %s", s.ProjectID)

	return nil
}
