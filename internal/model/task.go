package model

import (
	"fmt"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	TaskStatusToDo        TaskStatus = "todo"
	TaskStatusInProgress  TaskStatus = "in_progress"
	TaskStatusUnderReview TaskStatus = "under_review"
	TaskStatusDone        TaskStatus = "done"
	TaskStatusOnHold      TaskStatus = "on_hold"
	TaskStatusCancelled   TaskStatus = "cancelled"
)

// Valid returns true if the status is a known one.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusUnderReview,
		TaskStatusDone, TaskStatusOnHold, TaskStatusCancelled:
		return true
	}
	return false
}

// DateMode selects which start/end pair of a task drives the layout.
type DateMode string

const (
	DateModeEstimated DateMode = "estimated"
	DateModeActual    DateMode = "actual"
)

// Valid returns true if the mode is a known one.
func (m DateMode) Valid() bool {
	return m == DateModeEstimated || m == DateModeActual
}

// Task represents a schedulable unit of work.
type Task struct {
	ID             string
	ProjectID      string
	Name           string
	Status         TaskStatus
	MilestoneID    string // Empty when the task has no milestone.
	EstimatedStart Date
	EstimatedEnd   Date
	ActualStart    Date
	ActualEnd      Date
}

// Dates returns the start and end dates used by the date mode.
func (t Task) Dates(mode DateMode) (start, end Date) {
	if mode == DateModeActual {
		return t.ActualStart, t.ActualEnd
	}
	return t.EstimatedStart, t.EstimatedEnd
}

// WithDates returns a copy of the task with the date mode pair replaced.
func (t Task) WithDates(mode DateMode, start, end Date) Task {
	if mode == DateModeActual {
		t.ActualStart, t.ActualEnd = start, end
		return t
	}
	t.EstimatedStart, t.EstimatedEnd = start, end
	return t
}

// Schedulable returns true when the task has a valid date range for the mode.
// An inverted range counts as invalid dates.
func (t Task) Schedulable(mode DateMode) bool {
	start, end := t.Dates(mode)
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !end.Before(start)
}

// Validate validates the task.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("id is required: %w", ErrNotValid)
	}
	if t.Name == "" {
		return fmt.Errorf("name is required: %w", ErrNotValid)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("unknown status %q: %w", t.Status, ErrNotValid)
	}
	return nil
}

// TaskDateUpdate is the per-task date write sent to the task store.
type TaskDateUpdate struct {
	TaskID string
	Mode   DateMode
	Start  Date
	End    Date
}

// DateUpdateFor returns the date update that persists the mode dates of the task.
func DateUpdateFor(t Task, mode DateMode) TaskDateUpdate {
	start, end := t.Dates(mode)
	return TaskDateUpdate{TaskID: t.ID, Mode: mode, Start: start, End: end}
}

// Validate validates the update.
func (u TaskDateUpdate) Validate() error {
	if u.TaskID == "" {
		return fmt.Errorf("task id is required: %w", ErrNotValid)
	}
	if !u.Mode.Valid() {
		return fmt.Errorf("unknown date mode %q: %w", u.Mode, ErrNotValid)
	}
	if u.Start.IsZero() || u.End.IsZero() {
		return fmt.Errorf("start and end dates are required: %w", ErrNotValid)
	}
	if u.End.Before(u.Start) {
		return fmt.Errorf("end %s is before start %s: %w", u.End, u.Start, ErrNotValid)
	}
	return nil
}
