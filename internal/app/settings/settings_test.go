package settings_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/planboard/internal/app/settings"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/storage/storagemock"
)

func ptr[T any](v T) *T { return &v }

func TestServiceGet(t *testing.T) {
	tests := map[string]struct {
		mock        func(m *storagemock.MockRepository)
		projectID   string
		expSettings *model.ViewSettings
		expErr      bool
	}{
		"Saved settings should be returned.": {
			mock: func(m *storagemock.MockRepository) {
				s := model.DefaultViewSettings("p1")
				s.Granularity = model.GranularityDay
				m.On("GetViewSettings", mock.Anything, "p1").Once().Return(&s, nil)
			},
			projectID: "p1",
			expSettings: func() *model.ViewSettings {
				s := model.DefaultViewSettings("p1")
				s.Granularity = model.GranularityDay
				return &s
			}(),
		},

		"Missing settings should return the defaults.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetViewSettings", mock.Anything, "p1").Once().Return(nil, fmt.Errorf("nope: %w", model.ErrNotFound))
			},
			projectID:   "p1",
			expSettings: ptr(model.DefaultViewSettings("p1")),
		},

		"A repository error should fail.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetViewSettings", mock.Anything, "p1").Once().Return(nil, errors.New("whatever"))
			},
			projectID: "p1",
			expErr:    true,
		},

		"A missing project should fail.": {
			mock:   func(m *storagemock.MockRepository) {},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			mRepo := storagemock.NewMockRepository(t)
			test.mock(mRepo)

			svc, err := settings.NewService(settings.ServiceConfig{Repository: mRepo})
			require.NoError(t, err)

			got, err := svc.Get(context.Background(), test.projectID)
			if test.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expSettings, got)
		})
	}
}

func TestServiceSet(t *testing.T) {
	tests := map[string]struct {
		mock        func(m *storagemock.MockRepository)
		req         settings.SetRequest
		expSettings *model.ViewSettings
		expErr      bool
	}{
		"Only the requested fields should change.": {
			mock: func(m *storagemock.MockRepository) {
				s := model.DefaultViewSettings("p1")
				s.Region = "spain"
				m.On("GetViewSettings", mock.Anything, "p1").Once().Return(&s, nil)

				exp := model.DefaultViewSettings("p1")
				exp.Region = "spain"
				exp.Granularity = model.GranularityYear
				exp.HiddenColumns = []string{"status"}
				m.On("SaveViewSettings", mock.Anything, exp).Once().Return(nil)
			},
			req: settings.SetRequest{
				ProjectID:     "p1",
				Granularity:   ptr(model.GranularityYear),
				HiddenColumns: []string{"status"},
			},
			expSettings: func() *model.ViewSettings {
				s := model.DefaultViewSettings("p1")
				s.Region = "spain"
				s.Granularity = model.GranularityYear
				s.HiddenColumns = []string{"status"}
				return &s
			}(),
		},

		"Setting from the defaults should save them.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetViewSettings", mock.Anything, "p1").Once().Return(nil, model.ErrNotFound)

				exp := model.DefaultViewSettings("p1")
				exp.DateMode = model.DateModeActual
				exp.TimelineWidth = 600
				m.On("SaveViewSettings", mock.Anything, exp).Once().Return(nil)
			},
			req: settings.SetRequest{
				ProjectID:     "p1",
				DateMode:      ptr(model.DateModeActual),
				TimelineWidth: ptr(600),
			},
			expSettings: func() *model.ViewSettings {
				s := model.DefaultViewSettings("p1")
				s.DateMode = model.DateModeActual
				s.TimelineWidth = 600
				return &s
			}(),
		},

		"Invalid settings should not be saved.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetViewSettings", mock.Anything, "p1").Once().Return(nil, model.ErrNotFound)
			},
			req: settings.SetRequest{
				ProjectID:     "p1",
				TimelineWidth: ptr(-10),
			},
			expErr: true,
		},

		"A save error should fail.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetViewSettings", mock.Anything, "p1").Once().Return(nil, model.ErrNotFound)
				m.On("SaveViewSettings", mock.Anything, mock.Anything).Once().Return(errors.New("whatever"))
			},
			req:    settings.SetRequest{ProjectID: "p1", Region: ptr("usa")},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			mRepo := storagemock.NewMockRepository(t)
			test.mock(mRepo)

			svc, err := settings.NewService(settings.ServiceConfig{Repository: mRepo})
			require.NoError(t, err)

			got, err := svc.Set(context.Background(), test.req)
			if test.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expSettings, got)
		})
	}
}

func TestNewServiceRequiresRepository(t *testing.T) {
	_, err := settings.NewService(settings.ServiceConfig{})
	assert.Error(t, err)
}
