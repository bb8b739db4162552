package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/slok/planboard/internal/model"
)

// CreateMilestone creates a new milestone in the repository.
func (r *Repository) CreateMilestone(ctx context.Context, m model.Milestone) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("invalid milestone: %w", err)
	}

	query := `INSERT INTO milestones (id, project_id, name, active) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.ProjectID, m.Name, m.Active)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: milestones.") {
			return fmt.Errorf("milestone %s already exists: %w", m.ID, model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert milestone: %w", err)
	}

	r.logger.Debugf("Created milestone in repository: %s", m.ID)
	return nil
}

// ListMilestones returns the milestones of a project in creation order.
func (r *Repository) ListMilestones(ctx context.Context, projectID string) ([]model.Milestone, error) {
	query := `
		SELECT id, project_id, name, active
		FROM milestones
		WHERE project_id = ?
		ORDER BY rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("could not query milestones: %w", err)
	}
	defer rows.Close()

	var ms []model.Milestone
	for rows.Next() {
		var m model.Milestone
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Name, &m.Active); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		ms = append(ms, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ms, nil
}
