package workday_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/workday"
)

func TestCount(t *testing.T) {
	tests := map[string]struct {
		start    string
		end      string
		holidays []string
		exp      int
	}{
		"A full working week without holidays should count 5.": {
			start: "2024-01-08", end: "2024-01-12", exp: 5,
		},
		"A full working week with a holiday should count 4.": {
			start: "2024-01-08", end: "2024-01-12", holidays: []string{"2024-01-10"}, exp: 4,
		},
		"A weekend only range should count 0.": {
			start: "2024-01-13", end: "2024-01-14", exp: 0,
		},
		"A single holiday on a weekday should count 0.": {
			start: "2024-01-10", end: "2024-01-10", holidays: []string{"2024-01-10"}, exp: 0,
		},
		"Holidays on weekends should not be discounted twice.": {
			start: "2024-01-08", end: "2024-01-14", holidays: []string{"2024-01-13"}, exp: 5,
		},
		"An inverted range should count 0.": {
			start: "2024-01-12", end: "2024-01-08", exp: 0,
		},
		"Ranges crossing years should count both years.": {
			start: "2023-12-29", end: "2024-01-02", holidays: []string{"2024-01-01"}, exp: 2,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			holidays, err := workday.ParseHolidaySet(test.holidays...)
			require.NoError(err)

			got := workday.Count(model.MustParseDate(test.start), model.MustParseDate(test.end), holidays)
			assert.Equal(t, test.exp, got)
		})
	}
}

func TestCountDoesNotMutateInputs(t *testing.T) {
	start := model.MustParseDate("2024-01-08")
	end := model.MustParseDate("2024-01-12")

	_ = workday.Count(start, end, nil)

	assert.Equal(t, "2024-01-08", start.String())
	assert.Equal(t, "2024-01-12", end.String())
}

func TestManDays(t *testing.T) {
	task := model.Task{
		EstimatedStart: model.MustParseDate("2024-01-08"),
		EstimatedEnd:   model.MustParseDate("2024-01-19"),
	}
	holidays := workday.NewHolidaySet(model.Holiday{Date: model.MustParseDate("2024-01-15")})

	assert.Equal(t, 9, workday.ManDays(task, model.DateModeEstimated, holidays))
	assert.Equal(t, 0, workday.ManDays(task, model.DateModeActual, holidays))
}

func TestYearsSpanned(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]int{2023, 2024, 2025}, workday.YearsSpanned(model.MustParseDate("2023-12-01"), model.MustParseDate("2025-01-01")))
	assert.Equal([]int{2024}, workday.YearsSpanned(model.MustParseDate("2024-01-01"), model.MustParseDate("2024-12-31")))
	assert.Nil(workday.YearsSpanned(model.Date{}, model.MustParseDate("2024-01-01")))
}
