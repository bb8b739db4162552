package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/slok/planboard/internal/model"
)

// GetViewSettings returns the view settings of a project.
func (r *Repository) GetViewSettings(ctx context.Context, projectID string) (*model.ViewSettings, error) {
	query := `
		SELECT project_id, date_mode, granularity, timeline_width, hidden_columns, region
		FROM view_settings
		WHERE project_id = ?
	`

	var s model.ViewSettings
	var hidden string
	err := r.db.QueryRowContext(ctx, query, projectID).Scan(
		&s.ProjectID,
		&s.DateMode,
		&s.Granularity,
		&s.TimelineWidth,
		&hidden,
		&s.Region,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("settings of project %s: %w", projectID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query settings: %w", err)
	}

	s.HiddenColumns = []string{}
	if hidden != "" {
		s.HiddenColumns = strings.Split(hidden, ",")
	}

	return &s, nil
}

// SaveViewSettings creates or replaces the view settings of a project.
func (r *Repository) SaveViewSettings(ctx context.Context, s model.ViewSettings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	query := `
		INSERT INTO view_settings (project_id, date_mode, granularity, timeline_width, hidden_columns, region)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			date_mode = excluded.date_mode,
			granularity = excluded.granularity,
			timeline_width = excluded.timeline_width,
			hidden_columns = excluded.hidden_columns,
			region = excluded.region
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ProjectID,
		s.DateMode,
		s.Granularity,
		s.TimelineWidth,
		strings.Join(s.HiddenColumns, ","),
		s.Region,
	)
	if err != nil {
		return fmt.Errorf("could not save settings: %w", err)
	}

	r.logger.Debugf("Saved view settings of project in repository: %s", s.ProjectID)
	return nil
}
