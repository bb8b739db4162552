package save_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/planboard/internal/app/save"
	"github.com/slok/planboard/internal/ledger"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/storage/storagemock"
)

func moved(id, start, end string) model.Task {
	return model.Task{
		ID:             id,
		ProjectID:      "p1",
		Name:           id,
		Status:         model.TaskStatusToDo,
		EstimatedStart: model.MustParseDate(start),
		EstimatedEnd:   model.MustParseDate(end),
	}
}

func update(id, start, end string) model.TaskDateUpdate {
	return model.TaskDateUpdate{
		TaskID: id,
		Mode:   model.DateModeEstimated,
		Start:  model.MustParseDate(start),
		End:    model.MustParseDate(end),
	}
}

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		proposals    []model.Task
		retainFailed bool
		mock         func(m *storagemock.MockRepository)
		expSaved     int
		expFailed    int
		expPending   []string
	}{
		"Every pending change should be saved once.": {
			proposals: []model.Task{
				moved("t1", "2024-01-12", "2024-01-22"),
				moved("t2", "2024-02-01", "2024-02-03"),
			},
			mock: func(m *storagemock.MockRepository) {
				m.On("UpdateTaskDates", mock.Anything, update("t1", "2024-01-12", "2024-01-22")).Once().Return(nil)
				m.On("UpdateTaskDates", mock.Anything, update("t2", "2024-02-01", "2024-02-03")).Once().Return(nil)
			},
			expSaved: 2,
		},

		"A partial failure should be reported and retained.": {
			proposals: []model.Task{
				moved("t1", "2024-01-12", "2024-01-22"),
				moved("t2", "2024-02-01", "2024-02-03"),
			},
			retainFailed: true,
			mock: func(m *storagemock.MockRepository) {
				m.On("UpdateTaskDates", mock.Anything, update("t1", "2024-01-12", "2024-01-22")).Once().Return(nil)
				m.On("UpdateTaskDates", mock.Anything, update("t2", "2024-02-01", "2024-02-03")).Once().Return(errors.New("whatever"))
			},
			expSaved:   1,
			expFailed:  1,
			expPending: []string{"t2"},
		},

		"A partial failure without retaining should leave the ledger empty.": {
			proposals: []model.Task{
				moved("t1", "2024-01-12", "2024-01-22"),
				moved("t2", "2024-02-01", "2024-02-03"),
			},
			mock: func(m *storagemock.MockRepository) {
				m.On("UpdateTaskDates", mock.Anything, mock.Anything).Twice().Return(errors.New("whatever"))
			},
			expFailed: 2,
		},

		"An empty ledger should not write anything.": {
			mock: func(m *storagemock.MockRepository) {},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			mRepo := storagemock.NewMockRepository(t)
			test.mock(mRepo)

			l, err := ledger.New(ledger.Config{})
			require.NoError(t, err)
			for _, p := range test.proposals {
				require.NoError(t, l.Propose(p, model.DateModeEstimated))
			}

			svc, err := save.NewService(save.ServiceConfig{Repository: mRepo})
			require.NoError(t, err)

			resp, err := svc.Run(context.Background(), save.Request{Ledger: l, RetainFailed: test.retainFailed})
			require.NoError(t, err)

			assert.Equal(t, test.expSaved, resp.Saved)
			assert.Equal(t, test.expFailed, resp.Failed)
			assert.Len(t, resp.Results, len(test.proposals))

			var pending []string
			for _, e := range l.Entries() {
				pending = append(pending, e.Task.ID)
			}
			assert.Equal(t, test.expPending, pending)
		})
	}
}

func TestServiceRunRequiresLedger(t *testing.T) {
	svc, err := save.NewService(save.ServiceConfig{Repository: storagemock.NewMockRepository(t)})
	require.NoError(t, err)

	_, err = svc.Run(context.Background(), save.Request{})
	assert.ErrorIs(t, err, model.ErrNotValid)
}
