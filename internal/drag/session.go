// Package drag turns pointer movement over a task bar into a proposed reschedule.
//
// A Session is a plain value moved through Begin, Update and End. Machine owns
// at most one session at a time and wires it to a pointer event source and to
// the pending change ledger.
package drag

import (
	"fmt"
	"math"

	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/timeline"
)

// Threshold is the pointer distance in pixels a press must travel to be a drag instead of a click.
const Threshold = 5.0

// Button is a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// Position is a proposed date range.
type Position struct {
	Start model.Date
	End   model.Date
}

// Session is an ongoing drag of a task bar.
type Session struct {
	Task model.Task
	Mode model.DateMode
	// AnchorX is the pointer X where the drag started.
	AnchorX float64
	// GrabOffsetX is the pointer distance from the bar left edge, only for rendering continuity.
	GrabOffsetX float64
	DeltaX      float64
	// Moved is set once the pointer travelled beyond Threshold, it never resets.
	Moved bool
	// Temp is the proposed position, nil until the movement amounts to at least one day.
	Temp *Position
}

// Begin starts a session on a primary button press over a schedulable task bar.
func Begin(t model.Task, mode model.DateMode, x, grabOffsetX float64, button Button) (Session, error) {
	if button != ButtonPrimary {
		return Session{}, fmt.Errorf("only the primary button starts a drag: %w", model.ErrNotValid)
	}
	if !t.Schedulable(mode) {
		return Session{}, fmt.Errorf("task %s has no %s dates: %w", t.ID, mode, model.ErrNotValid)
	}

	return Session{
		Task:        t,
		Mode:        mode,
		AnchorX:     x,
		GrabOffsetX: grabOffsetX,
	}, nil
}

// Update returns the session after the pointer moved to x on a timeline of widthPx pixels.
func (s Session) Update(x float64, g *timeline.Geometry, widthPx float64) (Session, error) {
	if g == nil {
		return s, model.ErrNoGeometry
	}

	s.DeltaX = x - s.AnchorX
	if math.Abs(s.DeltaX) > Threshold {
		s.Moved = true
	}

	days, err := g.DaysForPixels(s.DeltaX, widthPx)
	if err != nil {
		return s, fmt.Errorf("could not convert pixels to days: %w", err)
	}

	if days == 0 {
		s.Temp = nil
		return s, nil
	}

	start, end := s.Task.Dates(s.Mode)
	s.Temp = &Position{Start: start.AddDays(days), End: end.AddDays(days)}

	return s, nil
}

// OutcomeKind is how a session ended.
type OutcomeKind int

const (
	// OutcomeNone means the session ended without changes (net movement of zero days).
	OutcomeNone OutcomeKind = iota
	// OutcomeClick means the pointer never passed the threshold, callers open the task editor.
	OutcomeClick
	// OutcomeCommit means the task must be proposed with its new dates.
	OutcomeCommit
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeClick:
		return "click"
	case OutcomeCommit:
		return "commit"
	}
	return "none"
}

// Outcome is the result of ending a session.
type Outcome struct {
	Kind OutcomeKind
	// Task is the proposed task on commit, the dragged task otherwise.
	Task model.Task
}

// End resolves the session on pointer release.
func (s Session) End() Outcome {
	switch {
	case !s.Moved:
		return Outcome{Kind: OutcomeClick, Task: s.Task}
	case s.Temp == nil:
		return Outcome{Kind: OutcomeNone, Task: s.Task}
	}

	return Outcome{
		Kind: OutcomeCommit,
		Task: s.Task.WithDates(s.Mode, s.Temp.Start, s.Temp.End),
	}
}
