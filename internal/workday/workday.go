// Package workday counts business days (man-days) over date ranges.
//
// A business day is any day that is not a Saturday, a Sunday or a holiday.
// A range without business days counts 0, there is no flooring to 1.
package workday

import (
	"github.com/slok/planboard/internal/model"
)

// HolidaySet is a set of holiday dates keyed by ISO day string.
type HolidaySet map[string]struct{}

// NewHolidaySet returns a set with the holidays dates.
func NewHolidaySet(holidays ...model.Holiday) HolidaySet {
	s := make(HolidaySet, len(holidays))
	for _, h := range holidays {
		s.Add(h.Date)
	}
	return s
}

// ParseHolidaySet returns a set from ISO day strings.
func ParseHolidaySet(days ...string) (HolidaySet, error) {
	s := make(HolidaySet, len(days))
	for _, day := range days {
		d, err := model.ParseDate(day)
		if err != nil {
			return nil, err
		}
		s.Add(d)
	}
	return s, nil
}

// Add adds a date to the set.
func (s HolidaySet) Add(d model.Date) { s[d.String()] = struct{}{} }

// Contains returns true if the date is a holiday. A nil set has no holidays.
func (s HolidaySet) Contains(d model.Date) bool {
	_, ok := s[d.String()]
	return ok
}

// IsBusinessDay returns true if the date is neither a weekend day nor a holiday.
func IsBusinessDay(d model.Date, holidays HolidaySet) bool {
	return !d.IsWeekend() && !holidays.Contains(d)
}

// Count returns the business days between start and end, both included.
// Absent dates or an inverted range count 0.
func Count(start, end model.Date, holidays HolidaySet) int {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 0
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDays(1) {
		if IsBusinessDay(d, holidays) {
			count++
		}
	}

	return count
}

// ManDays returns the business days of a task under the date mode, 0 when the task
// is not schedulable.
func ManDays(t model.Task, mode model.DateMode, holidays HolidaySet) int {
	if !t.Schedulable(mode) {
		return 0
	}
	start, end := t.Dates(mode)
	return Count(start, end, holidays)
}

// YearsSpanned returns the calendar years touched by the range, in order.
func YearsSpanned(start, end model.Date) []int {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil
	}

	years := make([]int, 0, end.Year()-start.Year()+1)
	for y := start.Year(); y <= end.Year(); y++ {
		years = append(years, y)
	}
	return years
}
