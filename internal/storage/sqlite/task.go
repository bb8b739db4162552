package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/slok/planboard/internal/model"
)

const taskColumns = `
	id, project_id, name, status, milestone_id,
	estimated_start, estimated_end,
	actual_start, actual_end
`

// CreateTask creates a new task in the repository.
func (r *Repository) CreateTask(ctx context.Context, t model.Task) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(
		ctx,
		query,
		t.ID,
		t.ProjectID,
		t.Name,
		t.Status,
		t.MilestoneID,
		nullDate(t.EstimatedStart),
		nullDate(t.EstimatedEnd),
		nullDate(t.ActualStart),
		nullDate(t.ActualEnd),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: tasks.") {
			return fmt.Errorf("task %s already exists: %w", t.ID, model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert task: %w", err)
	}

	r.logger.Debugf("Created task in repository: %s", t.ID)
	return nil
}

// GetTask retrieves a task by ID.
func (r *Repository) GetTask(ctx context.Context, id string) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query task: %w", err)
	}

	return &t, nil
}

// ListTasks returns the tasks of a project in creation order.
func (r *Repository) ListTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? ORDER BY rowid ASC`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}

// UpdateTaskDates updates the date pair of the update mode.
func (r *Repository) UpdateTaskDates(ctx context.Context, u model.TaskDateUpdate) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("invalid update: %w", err)
	}

	query := `UPDATE tasks SET estimated_start = ?, estimated_end = ? WHERE id = ?`
	if u.Mode == model.DateModeActual {
		query = `UPDATE tasks SET actual_start = ?, actual_end = ? WHERE id = ?`
	}

	result, err := r.db.ExecContext(ctx, query, u.Start.String(), u.End.String(), u.TaskID)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task %s: %w", u.TaskID, model.ErrNotFound)
	}

	r.logger.Debugf("Updated %s dates of task in repository: %s", u.Mode, u.TaskID)
	return nil
}

func scanTask(s scanner) (model.Task, error) {
	var t model.Task
	var estStart, estEnd, actStart, actEnd sql.NullString

	err := s.Scan(
		&t.ID,
		&t.ProjectID,
		&t.Name,
		&t.Status,
		&t.MilestoneID,
		&estStart,
		&estEnd,
		&actStart,
		&actEnd,
	)
	if err != nil {
		return model.Task{}, err
	}

	dates := []struct {
		src sql.NullString
		dst *model.Date
	}{
		{estStart, &t.EstimatedStart},
		{estEnd, &t.EstimatedEnd},
		{actStart, &t.ActualStart},
		{actEnd, &t.ActualEnd},
	}
	for _, d := range dates {
		v, err := dateFromNull(d.src)
		if err != nil {
			return model.Task{}, fmt.Errorf("invalid stored date of task %s: %w", t.ID, err)
		}
		*d.dst = v
	}

	return t, nil
}
