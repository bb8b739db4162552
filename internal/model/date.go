package model

import (
	"fmt"
	"time"
)

// DateLayout is the ISO day layout used to parse and format dates.
const DateLayout = "2006-01-02"

// Date is a calendar day without time or location.
//
// Date is an immutable value: every operation returns a new Date, so
// iterating over a range never aliases the caller's values.
// The zero value means the date is absent.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate returns the normalized date for the year, month and day
// (e.g. January 32 becomes February 1).
func NewDate(year int, month time.Month, day int) Date {
	return DateFromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateFromTime returns the calendar day of t in its own location.
func DateFromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// ParseDate parses an ISO day string (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, ErrNotValid)
	}
	return DateFromTime(t), nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

// IsZero returns true when the date is absent.
func (d Date) IsZero() bool { return d.year == 0 && d.month == 0 && d.day == 0 }

// Time returns the date as UTC midnight.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns a new date shifted n calendar days.
func (d Date) AddDays(n int) Date {
	return DateFromTime(d.Time().AddDate(0, 0, n))
}

// AddMonths returns the first day of the month n months after d's month.
func (d Date) AddMonths(n int) Date {
	return NewDate(d.year, d.month+time.Month(n), 1)
}

// DaysUntil returns the number of calendar days from d to other (negative if other is before d).
func (d Date) DaysUntil(other Date) int {
	// Both are UTC midnights so the difference is always an exact number of days.
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// IsWeekend returns true for Saturday and Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) Before(other Date) bool { return d.Time().Before(other.Time()) }
func (d Date) After(other Date) bool  { return d.Time().After(other.Time()) }
func (d Date) Equal(other Date) bool  { return d == other }

// String returns the ISO day string, or an empty string for an absent date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateLayout)
}

// Format formats the date with a time layout.
func (d Date) Format(layout string) string { return d.Time().Format(layout) }

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler, an empty text is an absent date.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MinDate returns the earliest of the dates.
func MinDate(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxDate returns the latest of the dates.
func MaxDate(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}
