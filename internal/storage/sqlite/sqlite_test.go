package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/planboard/internal/log"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/storage/sqlite"
	"github.com/slok/planboard/internal/storage/sqlite/migrations"
)

func newRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{
		DBPath:      filepath.Join(t.TempDir(), "test.db"),
		Logger:      log.Noop,
		TimeNowFunc: func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestNewRepositoryRequiresPath(t *testing.T) {
	_, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{})
	assert.Error(t, err)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "test.db")

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{DBPath: path})
	require.NoError(t, err)
	require.NoError(t, repo.CreateTask(ctx, taskFixture("t1", "p1")))
	require.NoError(t, repo.Close())

	repo, err = sqlite.NewRepository(ctx, sqlite.RepositoryConfig{DBPath: path})
	require.NoError(t, err)
	defer repo.Close()

	got, err := repo.GetTask(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "task t1", got.Name)
}

func TestMigrationsDownAndUp(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m, err := migrations.NewMigrator(migrations.MigratorConfig{DB: db, Logger: log.Noop})
	require.NoError(t, err)

	v, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(0), v)

	require.NoError(t, m.Up(ctx))
	// Running twice is a no-op.
	require.NoError(t, m.Up(ctx))
	v, err = m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)

	require.NoError(t, m.Down(ctx))

	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'tasks'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMilestones(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.CreateMilestone(ctx, model.Milestone{ID: "m2", ProjectID: "p1", Name: "Beta", Active: true}))
	require.NoError(t, repo.CreateMilestone(ctx, model.Milestone{ID: "m1", ProjectID: "p1", Name: "Alpha"}))
	require.NoError(t, repo.CreateMilestone(ctx, model.Milestone{ID: "m3", ProjectID: "p2", Name: "Other", Active: true}))

	err := repo.CreateMilestone(ctx, model.Milestone{ID: "m1", ProjectID: "p1", Name: "Again"})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	err = repo.CreateMilestone(ctx, model.Milestone{ID: "m4", ProjectID: "p1"})
	assert.ErrorIs(t, err, model.ErrNotValid)

	got, err := repo.ListMilestones(ctx, "p1")
	require.NoError(t, err)
	exp := []model.Milestone{
		{ID: "m2", ProjectID: "p1", Name: "Beta", Active: true},
		{ID: "m1", ProjectID: "p1", Name: "Alpha"},
	}
	assert.Equal(t, exp, got)
}

func TestHolidays(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	ok, err := repo.HasHolidayYear(ctx, "spain", 2024)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SaveHolidays(ctx, "spain", 2024, []model.Holiday{
		{Date: model.MustParseDate("2024-12-25"), Name: "Christmas"},
		{Date: model.MustParseDate("2024-01-06"), Name: "Epiphany"},
		{Date: model.MustParseDate("2024-01-06"), Name: "Epiphany"},
	}))
	require.NoError(t, repo.SaveHolidays(ctx, "spain", 2025, nil))
	require.NoError(t, repo.SaveHolidays(ctx, "usa", 2024, []model.Holiday{
		{Date: model.MustParseDate("2024-07-04"), Name: "Independence Day"},
	}))

	ok, err = repo.HasHolidayYear(ctx, "spain", 2025)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.ListHolidays(ctx, "spain", []int{2024, 2025})
	require.NoError(t, err)
	exp := []model.Holiday{
		{Date: model.MustParseDate("2024-01-06"), Name: "Epiphany", Region: "spain"},
		{Date: model.MustParseDate("2024-12-25"), Name: "Christmas", Region: "spain"},
	}
	assert.Equal(t, exp, got)

	// Saving again replaces the year.
	require.NoError(t, repo.SaveHolidays(ctx, "spain", 2024, []model.Holiday{
		{Date: model.MustParseDate("2024-05-01"), Name: "Labour Day"},
	}))
	got, err = repo.ListHolidays(ctx, "spain", []int{2024})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Labour Day", got[0].Name)

	got, err = repo.ListHolidays(ctx, "spain", nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	err = repo.SaveHolidays(ctx, "spain", 2023, []model.Holiday{{Date: model.MustParseDate("2024-01-01")}})
	assert.ErrorIs(t, err, model.ErrNotValid)
}

func TestViewSettings(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	_, err := repo.GetViewSettings(ctx, "p1")
	assert.ErrorIs(t, err, model.ErrNotFound)

	s := model.DefaultViewSettings("p1")
	require.NoError(t, repo.SaveViewSettings(ctx, s))

	got, err := repo.GetViewSettings(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, s, *got)

	s.DateMode = model.DateModeActual
	s.Granularity = model.GranularityYear
	s.TimelineWidth = 800
	s.HiddenColumns = []string{"status", "man_days"}
	s.Region = "usa"
	require.NoError(t, repo.SaveViewSettings(ctx, s))

	got, err = repo.GetViewSettings(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, s, *got)

	s.Granularity = "week"
	assert.ErrorIs(t, repo.SaveViewSettings(ctx, s), model.ErrNotValid)
}
