package lib

import (
	"errors"

	"github.com/slok/planboard/internal/ledger"
	"github.com/slok/planboard/internal/model"
)

// Domain values are shared with the core, they are plain data.
type (
	Date          = model.Date
	DateMode      = model.DateMode
	Granularity   = model.Granularity
	Task          = model.Task
	TaskStatus    = model.TaskStatus
	Milestone     = model.Milestone
	Holiday       = model.Holiday
	ViewSettings  = model.ViewSettings
	Board         = model.Board
	BoardGroup    = model.BoardGroup
	BoardBar      = model.BoardBar
	HeaderSegment = model.HeaderSegment
	Preview       = model.Preview
	WorkdayCount  = model.WorkdayCount
)

const (
	DateModeEstimated = model.DateModeEstimated
	DateModeActual    = model.DateModeActual

	GranularityYear  = model.GranularityYear
	GranularityMonth = model.GranularityMonth
	GranularityDay   = model.GranularityDay
)

// ParseDate parses an ISO (YYYY-MM-DD) date.
func ParseDate(s string) (Date, error) { return model.ParseDate(s) }

// Errors returned by the SDK, check them with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrNotValid      = errors.New("not valid")
	ErrNoGeometry    = errors.New("no timeline geometry")
	ErrDragActive    = errors.New("drag already in progress")
)

// ImportResult summarizes an imported board file.
type ImportResult struct {
	ProjectID     string
	Milestones    int
	Tasks         int
	Holidays      int
	HolidayRegion string
}

// BoardOpts overrides the project view settings for a single layout.
type BoardOpts struct {
	DateMode    DateMode
	Granularity Granularity
	// Width is the timeline width in pixels.
	Width int
}

// SettingsOpts are the view settings to change, zero values keep the current ones.
type SettingsOpts struct {
	DateMode    DateMode
	Granularity Granularity
	Width       int
	// HiddenColumns replaces the hidden columns when not nil, empty shows all.
	HiddenColumns []string
	// Region replaces the holiday region when not nil, empty disables holidays.
	Region *string
}

// SaveResult is the outcome of saving the pending changes of a session.
type SaveResult struct {
	Saved int
	// Failed maps the task ID of the changes that could not be saved to their error,
	// they are kept pending in the session.
	Failed map[string]error
}

func fromLedgerResults(saved int, failed ledger.Results) SaveResult {
	res := SaveResult{Saved: saved, Failed: map[string]error{}}
	for _, f := range failed {
		res.Failed[f.TaskID] = mapError(f.Err)
	}
	return res
}

// --- Internal conversion helpers ---

func optDateMode(m DateMode) *model.DateMode {
	if m == "" {
		return nil
	}
	return &m
}

func optGranularity(g Granularity) *model.Granularity {
	if g == "" {
		return nil
	}
	return &g
}

func optInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case isInternalError(err, model.ErrNotFound):
		return joinErrors(err, ErrNotFound)
	case isInternalError(err, model.ErrAlreadyExists):
		return joinErrors(err, ErrAlreadyExists)
	case isInternalError(err, model.ErrNotValid):
		return joinErrors(err, ErrNotValid)
	case isInternalError(err, model.ErrNoGeometry):
		return joinErrors(err, ErrNoGeometry)
	case isInternalError(err, model.ErrDragActive):
		return joinErrors(err, ErrDragActive)
	default:
		return err
	}
}

func isInternalError(err, target error) bool {
	return errors.Is(err, target)
}

func joinErrors(original, sentinel error) error {
	return &mappedError{original: original, sentinel: sentinel}
}

type mappedError struct {
	original error
	sentinel error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	return target == e.sentinel
}

func (e *mappedError) Unwrap() error { return e.original }
