// Package timeline derives the proportional layout of tasks over a padded date window.
//
// Everything here is a pure derivation of its inputs, safe to call on every
// change of tasks, date mode or granularity, including while a drag is live.
package timeline

import (
	"fmt"
	"math"

	"github.com/slok/planboard/internal/model"
)

// PaddingDays is the number of calendar days added on each side of the task range.
const PaddingDays = 7

// Bar is a schedulable task placed on the timeline.
type Bar struct {
	Task        model.Task
	Start       model.Date
	End         model.Date
	StartOffset int // Days between the window start and the task start.
	Duration    int // Days, both ends included.
}

// Geometry is the derived timeline window with the task bars.
type Geometry struct {
	Mode      model.DateMode
	MinDate   model.Date
	MaxDate   model.Date
	TotalDays int
	Bars      []Bar
}

// Compute returns the geometry of the schedulable tasks under the date mode.
// Tasks without a valid range for the mode are left out. When no task is
// schedulable it returns false, callers render an empty state.
func Compute(tasks []model.Task, mode model.DateMode) (*Geometry, bool) {
	schedulable := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Schedulable(mode) {
			schedulable = append(schedulable, t)
		}
	}
	if len(schedulable) == 0 {
		return nil, false
	}

	minStart, maxEnd := schedulable[0].Dates(mode)
	for _, t := range schedulable[1:] {
		start, end := t.Dates(mode)
		minStart = model.MinDate(minStart, start)
		maxEnd = model.MaxDate(maxEnd, end)
	}

	g := &Geometry{
		Mode:    mode,
		MinDate: minStart.AddDays(-PaddingDays),
		MaxDate: maxEnd.AddDays(PaddingDays),
		Bars:    make([]Bar, 0, len(schedulable)),
	}
	g.TotalDays = g.MinDate.DaysUntil(g.MaxDate)

	for _, t := range schedulable {
		g.Bars = append(g.Bars, g.barFor(t))
	}

	return g, true
}

func (g *Geometry) barFor(t model.Task) Bar {
	start, end := t.Dates(g.Mode)
	return Bar{
		Task:        t,
		Start:       start,
		End:         end,
		StartOffset: g.MinDate.DaysUntil(start),
		Duration:    start.DaysUntil(end) + 1,
	}
}

// Bar returns the bar of a task id.
func (g *Geometry) Bar(taskID string) (Bar, bool) {
	for _, b := range g.Bars {
		if b.Task.ID == taskID {
			return b, true
		}
	}
	return Bar{}, false
}

// Window returns the view model representation of the window.
func (g *Geometry) Window() *model.Window {
	return &model.Window{MinDate: g.MinDate, MaxDate: g.MaxDate, TotalDays: g.TotalDays}
}

// DaysForPixels converts a horizontal pixel distance into whole days for a timeline
// of widthPx pixels, rounding to the nearest day.
func (g *Geometry) DaysForPixels(deltaPx, widthPx float64) (int, error) {
	if widthPx <= 0 {
		return 0, fmt.Errorf("timeline width must be positive: %w", model.ErrNotValid)
	}
	if g.TotalDays <= 0 {
		return 0, fmt.Errorf("empty timeline window: %w", model.ErrNoGeometry)
	}

	return int(math.Round(deltaPx / widthPx * float64(g.TotalDays))), nil
}

// Fraction returns the share of the window that a number of days takes.
func (g *Geometry) Fraction(days int) float64 {
	if g.TotalDays <= 0 {
		return 0
	}
	return float64(days) / float64(g.TotalDays)
}

// BarPixels returns the left position and the width in pixels of a bar on a
// timeline of widthPx pixels.
func (g *Geometry) BarPixels(b Bar, widthPx float64) (x, w float64) {
	return g.Fraction(b.StartOffset) * widthPx, g.Fraction(b.Duration) * widthPx
}
