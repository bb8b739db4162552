package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/slok/planboard/internal/model"
)

// SaveHolidays replaces the holidays of a region year and marks the year as fetched.
func (r *Repository) SaveHolidays(ctx context.Context, region string, year int, holidays []model.Holiday) error {
	for _, h := range holidays {
		if h.Date.Year() != year {
			return fmt.Errorf("holiday %s is not from %d: %w", h.Date, year, model.ErrNotValid)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `DELETE FROM holidays WHERE region = ? AND year = ?`, region, year)
	if err != nil {
		return fmt.Errorf("could not delete holidays: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM holiday_years WHERE region = ? AND year = ?`, region, year)
	if err != nil {
		return fmt.Errorf("could not delete holiday year: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO holiday_years (region, year, fetched_at) VALUES (?, ?, ?)`,
		region, year, r.timeNow().Unix())
	if err != nil {
		return fmt.Errorf("could not insert holiday year: %w", err)
	}

	for _, h := range holidays {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO holidays (region, year, day, name) VALUES (?, ?, ?, ?)`,
			region, year, h.Date.String(), h.Name)
		if err != nil {
			return fmt.Errorf("could not insert holiday %s: %w", h.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Saved %d holidays of %s %d in repository", len(holidays), region, year)
	return nil
}

// HasHolidayYear returns true when the holidays of a region year have been saved.
func (r *Repository) HasHolidayYear(ctx context.Context, region string, year int) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM holiday_years WHERE region = ? AND year = ?`,
		region, year).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("could not query holiday year: %w", err)
	}

	return count > 0, nil
}

// ListHolidays returns the saved holidays of a region for the years, sorted by date.
func (r *Repository) ListHolidays(ctx context.Context, region string, years []int) ([]model.Holiday, error) {
	if len(years) == 0 {
		return nil, nil
	}

	args := make([]any, 0, len(years)+1)
	args = append(args, region)
	for _, y := range years {
		args = append(args, y)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(years)), ", ")

	query := `
		SELECT day, name
		FROM holidays
		WHERE region = ? AND year IN (` + placeholders + `)
		ORDER BY day ASC, name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query holidays: %w", err)
	}
	defer rows.Close()

	var hs []model.Holiday
	for rows.Next() {
		var day, name string
		if err := rows.Scan(&day, &name); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		d, err := model.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("invalid stored holiday date: %w", err)
		}
		hs = append(hs, model.Holiday{Date: d, Name: name, Region: region})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return hs, nil
}
