package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/storage/sqlite"
)

func taskFixture(id, project string) model.Task {
	return model.Task{
		ID:             id,
		ProjectID:      project,
		Name:           "task " + id,
		Status:         model.TaskStatusInProgress,
		MilestoneID:    "m1",
		EstimatedStart: model.MustParseDate("2024-01-10"),
		EstimatedEnd:   model.MustParseDate("2024-01-20"),
	}
}

func TestTasks(t *testing.T) {
	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error
		expErr  error
	}{
		"Creating and getting a task should keep the missing dates as zero.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error {
				require.NoError(t, repo.CreateTask(ctx, taskFixture("t1", "p1")))

				got, err := repo.GetTask(ctx, "t1")
				require.NoError(t, err)
				assert.Equal(t, taskFixture("t1", "p1"), *got)
				assert.True(t, got.ActualStart.IsZero())
				return nil
			},
		},

		"Creating a duplicated task should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error {
				require.NoError(t, repo.CreateTask(ctx, taskFixture("t1", "p1")))
				return repo.CreateTask(ctx, taskFixture("t1", "p1"))
			},
			expErr: model.ErrAlreadyExists,
		},

		"Creating a task without name should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error {
				tk := taskFixture("t1", "p1")
				tk.Name = ""
				return repo.CreateTask(ctx, tk)
			},
			expErr: model.ErrNotValid,
		},

		"Getting a missing task should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error {
				_, err := repo.GetTask(ctx, "missing")
				return err
			},
			expErr: model.ErrNotFound,
		},

		"Listing tasks should return only the project tasks in creation order.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error {
				require.NoError(t, repo.CreateTask(ctx, taskFixture("b", "p1")))
				require.NoError(t, repo.CreateTask(ctx, taskFixture("a", "p1")))
				require.NoError(t, repo.CreateTask(ctx, taskFixture("c", "p2")))

				got, err := repo.ListTasks(ctx, "p1")
				require.NoError(t, err)
				require.Len(t, got, 2)
				assert.Equal(t, "b", got[0].ID)
				assert.Equal(t, "a", got[1].ID)
				return nil
			},
		},

		"Updating the estimated dates should persist them.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error {
				require.NoError(t, repo.CreateTask(ctx, taskFixture("t1", "p1")))
				err := repo.UpdateTaskDates(ctx, model.TaskDateUpdate{
					TaskID: "t1",
					Mode:   model.DateModeEstimated,
					Start:  model.MustParseDate("2024-01-12"),
					End:    model.MustParseDate("2024-01-22"),
				})
				require.NoError(t, err)

				got, err := repo.GetTask(ctx, "t1")
				require.NoError(t, err)
				assert.Equal(t, model.MustParseDate("2024-01-12"), got.EstimatedStart)
				assert.Equal(t, model.MustParseDate("2024-01-22"), got.EstimatedEnd)
				assert.True(t, got.ActualStart.IsZero())
				return nil
			},
		},

		"Updating the actual dates should not touch the estimated ones.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error {
				require.NoError(t, repo.CreateTask(ctx, taskFixture("t1", "p1")))
				err := repo.UpdateTaskDates(ctx, model.TaskDateUpdate{
					TaskID: "t1",
					Mode:   model.DateModeActual,
					Start:  model.MustParseDate("2024-01-11"),
					End:    model.MustParseDate("2024-01-15"),
				})
				require.NoError(t, err)

				got, err := repo.GetTask(ctx, "t1")
				require.NoError(t, err)
				assert.Equal(t, model.MustParseDate("2024-01-10"), got.EstimatedStart)
				assert.Equal(t, model.MustParseDate("2024-01-11"), got.ActualStart)
				assert.Equal(t, model.MustParseDate("2024-01-15"), got.ActualEnd)
				return nil
			},
		},

		"Updating a missing task should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error {
				return repo.UpdateTaskDates(ctx, model.TaskDateUpdate{
					TaskID: "missing",
					Mode:   model.DateModeEstimated,
					Start:  model.MustParseDate("2024-01-12"),
					End:    model.MustParseDate("2024-01-22"),
				})
			},
			expErr: model.ErrNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			err := test.actions(context.Background(), t, repo)
			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
