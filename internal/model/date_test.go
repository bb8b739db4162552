package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/planboard/internal/model"
)

func TestDateArithmetic(t *testing.T) {
	tests := map[string]struct {
		date    model.Date
		add     int
		expDate string
	}{
		"Adding zero days should keep the date.":        {date: model.MustParseDate("2024-01-10"), add: 0, expDate: "2024-01-10"},
		"Adding days should cross month boundaries.":    {date: model.MustParseDate("2024-01-30"), add: 3, expDate: "2024-02-02"},
		"Adding days should handle leap years.":         {date: model.MustParseDate("2024-02-28"), add: 1, expDate: "2024-02-29"},
		"Subtracting days should cross year boundaries": {date: model.MustParseDate("2024-01-03"), add: -7, expDate: "2023-12-27"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expDate, test.date.AddDays(test.add).String())
		})
	}
}

func TestDateIsImmutable(t *testing.T) {
	d := model.MustParseDate("2024-01-08")
	_ = d.AddDays(5)
	assert.Equal(t, "2024-01-08", d.String())
}

func TestDateDaysUntil(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(24, model.MustParseDate("2024-01-03").DaysUntil(model.MustParseDate("2024-01-27")))
	assert.Equal(-2, model.MustParseDate("2024-01-12").DaysUntil(model.MustParseDate("2024-01-10")))
	// DST changes must not affect day counts.
	assert.Equal(31, model.MustParseDate("2024-03-01").DaysUntil(model.MustParseDate("2024-04-01")))
}

func TestDateParse(t *testing.T) {
	require := require.New(t)

	d, err := model.ParseDate("2024-01-08")
	require.NoError(err)
	require.Equal(time.Monday, d.Weekday())

	_, err = model.ParseDate("08/01/2024")
	require.ErrorIs(err, model.ErrNotValid)

	var zero model.Date
	require.NoError(zero.UnmarshalText([]byte("")))
	require.True(zero.IsZero())
	require.Equal("", zero.String())
}

func TestTaskSchedulable(t *testing.T) {
	tests := map[string]struct {
		task   model.Task
		mode   model.DateMode
		expSch bool
	}{
		"Task with estimated dates should be schedulable in estimated mode.": {
			task:   model.Task{EstimatedStart: model.MustParseDate("2024-01-10"), EstimatedEnd: model.MustParseDate("2024-01-12")},
			mode:   model.DateModeEstimated,
			expSch: true,
		},
		"Task with estimated dates should not be schedulable in actual mode.": {
			task:   model.Task{EstimatedStart: model.MustParseDate("2024-01-10"), EstimatedEnd: model.MustParseDate("2024-01-12")},
			mode:   model.DateModeActual,
			expSch: false,
		},
		"Task missing the end date should not be schedulable.": {
			task:   model.Task{ActualStart: model.MustParseDate("2024-01-10")},
			mode:   model.DateModeActual,
			expSch: false,
		},
		"Task with an inverted range should not be schedulable.": {
			task:   model.Task{EstimatedStart: model.MustParseDate("2024-01-12"), EstimatedEnd: model.MustParseDate("2024-01-10")},
			mode:   model.DateModeEstimated,
			expSch: false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expSch, test.task.Schedulable(test.mode))
		})
	}
}

func TestTaskWithDatesOnlyChangesModePair(t *testing.T) {
	task := model.Task{
		ID:             "t1",
		EstimatedStart: model.MustParseDate("2024-01-10"),
		EstimatedEnd:   model.MustParseDate("2024-01-12"),
		ActualStart:    model.MustParseDate("2024-01-11"),
		ActualEnd:      model.MustParseDate("2024-01-15"),
	}

	got := task.WithDates(model.DateModeEstimated, model.MustParseDate("2024-01-12"), model.MustParseDate("2024-01-14"))

	assert.Equal(t, "2024-01-12", got.EstimatedStart.String())
	assert.Equal(t, "2024-01-14", got.EstimatedEnd.String())
	assert.Equal(t, task.ActualStart, got.ActualStart)
	assert.Equal(t, task.ActualEnd, got.ActualEnd)
	assert.Equal(t, "2024-01-10", task.EstimatedStart.String())
}
