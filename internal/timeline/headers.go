package timeline

import (
	"fmt"

	"github.com/slok/planboard/internal/model"
)

// Headers returns the header segments of the geometry window for a granularity.
//
// Segments cover the window start up to (not including) the window end so the
// segment days always add up to the window total days. Year and month segments
// are clipped to the window, a window starting mid month gets a short first month.
func Headers(g *Geometry, granularity model.Granularity) ([]model.HeaderSegment, error) {
	if g == nil {
		return nil, model.ErrNoGeometry
	}

	switch granularity {
	case model.GranularityDay:
		return dayHeaders(g), nil
	case model.GranularityMonth:
		return periodHeaders(g, monthStartAfter, func(d model.Date) string { return d.Format("Jan 2006") }), nil
	case model.GranularityYear:
		return periodHeaders(g, yearStartAfter, func(d model.Date) string { return d.Format("2006") }), nil
	}

	return nil, fmt.Errorf("unknown granularity %q: %w", granularity, model.ErrNotValid)
}

func dayHeaders(g *Geometry) []model.HeaderSegment {
	segments := make([]model.HeaderSegment, 0, g.TotalDays)
	for d := g.MinDate; d.Before(g.MaxDate); d = d.AddDays(1) {
		segments = append(segments, model.HeaderSegment{
			Label: d.Format("Mon 02"),
			Start: d,
			End:   d,
			Days:  1,
		})
	}
	return segments
}

// periodHeaders splits the window using next, that returns the start of the
// period following the one containing a date.
func periodHeaders(g *Geometry, next func(model.Date) model.Date, label func(model.Date) string) []model.HeaderSegment {
	var segments []model.HeaderSegment
	for start := g.MinDate; start.Before(g.MaxDate); {
		end := model.MinDate(next(start), g.MaxDate)
		segments = append(segments, model.HeaderSegment{
			Label: label(start),
			Start: start,
			End:   end.AddDays(-1),
			Days:  start.DaysUntil(end),
		})
		start = end
	}
	return segments
}

func monthStartAfter(d model.Date) model.Date { return d.AddMonths(1) }

func yearStartAfter(d model.Date) model.Date { return model.NewDate(d.Year()+1, 1, 1) }
