package workdays_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/planboard/internal/app/workdays"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/storage/storagemock"
)

func d(s string) model.Date { return model.MustParseDate(s) }

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		mock    func(m *storagemock.MockRepository)
		req     workdays.Request
		expResp *model.WorkdayCount
		expErr  bool
	}{
		"A work week should have five business days.": {
			mock: func(m *storagemock.MockRepository) {},
			req:  workdays.Request{From: d("2024-01-08"), To: d("2024-01-12")},
			expResp: &model.WorkdayCount{
				From:         d("2024-01-08"),
				To:           d("2024-01-12"),
				BusinessDays: 5,
				CalendarDays: 5,
			},
		},

		"Weekends and weekday holidays should be discounted.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListHolidays", mock.Anything, "usa", []int{2024}).Once().Return([]model.Holiday{
					{Date: d("2024-01-01"), Name: "New Year", Region: "usa"},
					{Date: d("2024-01-10"), Name: "Local", Region: "usa"},
					{Date: d("2024-01-13"), Name: "Saturday holiday", Region: "usa"},
				}, nil)
			},
			req: workdays.Request{From: d("2024-01-08"), To: d("2024-01-14"), Region: "usa"},
			expResp: &model.WorkdayCount{
				From:         d("2024-01-08"),
				To:           d("2024-01-14"),
				Region:       "usa",
				BusinessDays: 4,
				CalendarDays: 7,
				WeekendDays:  2,
				Holidays: []model.Holiday{
					{Date: d("2024-01-10"), Name: "Local", Region: "usa"},
				},
			},
		},

		"A range across years should ask the holidays of both years.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListHolidays", mock.Anything, "usa", []int{2024, 2025}).Once().Return([]model.Holiday{
					{Date: d("2025-01-01"), Name: "New Year", Region: "usa"},
				}, nil)
			},
			req: workdays.Request{From: d("2024-12-30"), To: d("2025-01-03"), Region: "usa"},
			expResp: &model.WorkdayCount{
				From:         d("2024-12-30"),
				To:           d("2025-01-03"),
				Region:       "usa",
				BusinessDays: 4,
				CalendarDays: 5,
				Holidays: []model.Holiday{
					{Date: d("2025-01-01"), Name: "New Year", Region: "usa"},
				},
			},
		},

		"An inverted range should count zero days.": {
			mock:    func(m *storagemock.MockRepository) {},
			req:     workdays.Request{From: d("2024-01-12"), To: d("2024-01-08"), Region: "usa"},
			expResp: &model.WorkdayCount{From: d("2024-01-12"), To: d("2024-01-08"), Region: "usa"},
		},

		"Missing dates should fail.": {
			mock:   func(m *storagemock.MockRepository) {},
			req:    workdays.Request{From: d("2024-01-12")},
			expErr: true,
		},

		"A holiday provider error should fail.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListHolidays", mock.Anything, "usa", []int{2024}).Once().Return(nil, errors.New("whatever"))
			},
			req:    workdays.Request{From: d("2024-01-08"), To: d("2024-01-12"), Region: "usa"},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			mRepo := storagemock.NewMockRepository(t)
			test.mock(mRepo)

			svc, err := workdays.NewService(workdays.ServiceConfig{Holidays: mRepo})
			require.NoError(t, err)

			got, err := svc.Run(context.Background(), test.req)
			if test.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expResp, got)
		})
	}
}
