package model

import (
	"fmt"
)

// Granularity is the time unit of the timeline header.
type Granularity string

const (
	GranularityYear  Granularity = "year"
	GranularityMonth Granularity = "month"
	GranularityDay   Granularity = "day"
)

// Valid returns true if the granularity is a known one.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityYear, GranularityMonth, GranularityDay:
		return true
	}
	return false
}

// DefaultTimelineWidth is the timeline width in pixels used when none is set.
const DefaultTimelineWidth = 1200

// ViewSettings is the per-project board view configuration.
type ViewSettings struct {
	ProjectID     string
	DateMode      DateMode
	Granularity   Granularity
	TimelineWidth int // Pixels.
	HiddenColumns []string
	Region        string // Holiday calendar region code (e.g. "usa", "spain"), empty disables holidays.
}

// DefaultViewSettings returns the settings of a project that never saved any.
func DefaultViewSettings(projectID string) ViewSettings {
	return ViewSettings{
		ProjectID:     projectID,
		DateMode:      DateModeEstimated,
		Granularity:   GranularityMonth,
		TimelineWidth: DefaultTimelineWidth,
		HiddenColumns: []string{},
	}
}

// ColumnVisible returns true if the column is not hidden.
func (s ViewSettings) ColumnVisible(column string) bool {
	for _, c := range s.HiddenColumns {
		if c == column {
			return false
		}
	}
	return true
}

// Validate validates the settings.
func (s ViewSettings) Validate() error {
	if s.ProjectID == "" {
		return fmt.Errorf("project id is required: %w", ErrNotValid)
	}
	if !s.DateMode.Valid() {
		return fmt.Errorf("unknown date mode %q: %w", s.DateMode, ErrNotValid)
	}
	if !s.Granularity.Valid() {
		return fmt.Errorf("unknown granularity %q: %w", s.Granularity, ErrNotValid)
	}
	if s.TimelineWidth <= 0 {
		return fmt.Errorf("timeline width must be positive: %w", ErrNotValid)
	}
	return nil
}
