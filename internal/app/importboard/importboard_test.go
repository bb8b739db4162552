package importboard_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/planboard/internal/app/importboard"
	"github.com/slok/planboard/internal/model"
	storageio "github.com/slok/planboard/internal/storage/io"
	"github.com/slok/planboard/internal/storage/memory"
	"github.com/slok/planboard/internal/storage/storagemock"
)

const boardYAML = `
project: apollo
milestones:
  - id: m1
    name: Alpha
tasks:
  - id: t1
    name: Design
    milestone: Alpha
    estimated: {start: 2024-01-10, end: 2024-01-20}
  - id: t2
    name: Build
    estimated: {start: 2024-01-21, end: 2024-02-10}
holidays:
  region: spain
  days:
    - date: 2024-12-25
      name: Christmas
    - date: 2025-01-01
      name: New year
`

func newService(t *testing.T, repo *memory.Repository) *importboard.Service {
	t.Helper()
	fs := fstest.MapFS{"board.yaml": &fstest.MapFile{Data: []byte(boardYAML)}}
	svc, err := importboard.NewService(importboard.ServiceConfig{
		Loader:     storageio.NewBoardYAMLRepository(fs),
		Repository: repo,
	})
	require.NoError(t, err)
	return svc
}

func TestServiceRun(t *testing.T) {
	ctx := context.Background()
	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)

	resp, err := newService(t, repo).Run(ctx, importboard.Request{Path: "board.yaml"})
	require.NoError(t, err)
	assert.Equal(t, &importboard.Response{
		ProjectID:     "apollo",
		Milestones:    1,
		Tasks:         2,
		Holidays:      2,
		HolidayRegion: "spain",
	}, resp)

	tasks, err := repo.ListTasks(ctx, "apollo")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "m1", tasks[0].MilestoneID)
	assert.Equal(t, model.TaskStatusToDo, tasks[1].Status)

	for _, y := range []int{2024, 2025} {
		ok, err := repo.HasHolidayYear(ctx, "spain", y)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	vs, err := repo.GetViewSettings(ctx, "apollo")
	require.NoError(t, err)
	assert.Equal(t, "spain", vs.Region)
	assert.Equal(t, model.GranularityMonth, vs.Granularity)

	// Importing twice should fail on the existing records.
	_, err = newService(t, repo).Run(ctx, importboard.Request{Path: "board.yaml"})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
}

func TestServiceRunKeepsSavedSettings(t *testing.T) {
	ctx := context.Background()
	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)

	vs := model.DefaultViewSettings("apollo")
	vs.Region = "usa"
	require.NoError(t, repo.SaveViewSettings(ctx, vs))

	_, err = newService(t, repo).Run(ctx, importboard.Request{Path: "board.yaml"})
	require.NoError(t, err)

	got, err := repo.GetViewSettings(ctx, "apollo")
	require.NoError(t, err)
	assert.Equal(t, "usa", got.Region)
}

func TestServiceRunErrors(t *testing.T) {
	tests := map[string]struct {
		path string
		mock func(m *storagemock.MockRepository)
	}{
		"A missing file should fail.": {
			path: "missing.yaml",
			mock: func(m *storagemock.MockRepository) {},
		},

		"A task store error should fail.": {
			path: "board.yaml",
			mock: func(m *storagemock.MockRepository) {
				m.On("CreateMilestone", mock.Anything, mock.Anything).Once().Return(nil)
				m.On("CreateTask", mock.Anything, mock.Anything).Once().Return(errors.New("whatever"))
			},
		},

		"A holiday store error should fail.": {
			path: "board.yaml",
			mock: func(m *storagemock.MockRepository) {
				m.On("CreateMilestone", mock.Anything, mock.Anything).Once().Return(nil)
				m.On("CreateTask", mock.Anything, mock.Anything).Twice().Return(nil)
				m.On("SaveHolidays", mock.Anything, "spain", 2024, mock.Anything).Once().Return(errors.New("whatever"))
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			mRepo := storagemock.NewMockRepository(t)
			test.mock(mRepo)

			fs := fstest.MapFS{"board.yaml": &fstest.MapFile{Data: []byte(boardYAML)}}
			svc, err := importboard.NewService(importboard.ServiceConfig{
				Loader:     storageio.NewBoardYAMLRepository(fs),
				Repository: mRepo,
			})
			require.NoError(t, err)

			_, err = svc.Run(context.Background(), importboard.Request{Path: test.path})
			assert.Error(t, err)
		})
	}
}
