package lib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slok/planboard/internal/app/importboard"
	"github.com/slok/planboard/internal/app/layout"
	"github.com/slok/planboard/internal/app/settings"
	"github.com/slok/planboard/internal/app/workdays"
	"github.com/slok/planboard/internal/conventions"
	"github.com/slok/planboard/internal/holiday"
	"github.com/slok/planboard/internal/holiday/google"
	"github.com/slok/planboard/internal/log"
	"github.com/slok/planboard/internal/storage"
	storageio "github.com/slok/planboard/internal/storage/io"
	"github.com/slok/planboard/internal/storage/memory"
	"github.com/slok/planboard/internal/storage/sqlite"
)

// Config configures the SDK client.
//
// All fields are optional. An empty Config{} uses ~/.planboard/planboard.db
// for storage and only the imported holidays.
type Config struct {
	// DBPath is the SQLite database path.
	// Default: ~/.planboard/planboard.db.
	DBPath string

	// InMemory stores everything in memory, DBPath is ignored.
	InMemory bool

	// GoogleAPIKey enables the Google public holiday calendars.
	GoogleAPIKey string

	// HolidayLanguage is the language of the Google holiday calendars.
	// Default: "en".
	HolidayLanguage string

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.DBPath == "" && !c.InMemory {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get user home dir: %w", err)
		}
		c.DBPath = conventions.DBPath(home)
	}

	if c.HolidayLanguage == "" {
		c.HolidayLanguage = "en"
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Client is the main SDK entry point.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use, the sessions it creates are not.
type Client struct {
	repo     storage.Repository
	holidays storage.HolidayProvider
	logger   log.Logger
	closeFn  func() error
}

// New creates a new SDK client.
//
// The caller must call [Client.Close] when done to release the database
// connection.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Client{logger: cfg.Logger}
	if cfg.InMemory {
		repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: cfg.Logger})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}
		c.repo = repo
	} else {
		repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: cfg.DBPath,
			Logger: cfg.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}
		c.repo = repo
		c.closeFn = repo.Close
	}

	var remote storage.HolidayProvider
	if cfg.GoogleAPIKey != "" {
		p, err := google.NewProvider(ctx, google.ProviderConfig{
			APIKey:   cfg.GoogleAPIKey,
			Language: cfg.HolidayLanguage,
			Logger:   cfg.Logger,
		})
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("could not create google holiday provider: %w", err)
		}
		remote = p
	}

	holidays, err := holiday.NewCachedProvider(holiday.CachedProviderConfig{
		Remote: remote,
		Cache:  c.repo,
		Logger: cfg.Logger,
	})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("could not create holiday provider: %w", err)
	}
	c.holidays = holidays

	return c, nil
}

// Close releases resources held by the client, including the database connection.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}

// Import loads a board YAML file into the store.
//
// Returns [ErrNotValid] if the file is malformed, or [ErrAlreadyExists] if a
// task or milestone ID is already stored.
func (c *Client) Import(ctx context.Context, path string) (*ImportResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve board file path: %w", err)
	}

	svc, err := importboard.NewService(importboard.ServiceConfig{
		Loader:     storageio.NewBoardYAMLRepository(os.DirFS(filepath.Dir(abs))),
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create import service: %w", err)
	}

	resp, err := svc.Run(ctx, importboard.Request{Path: filepath.Base(abs)})
	if err != nil {
		return nil, mapError(err)
	}

	return &ImportResult{
		ProjectID:     resp.ProjectID,
		Milestones:    resp.Milestones,
		Tasks:         resp.Tasks,
		Holidays:      resp.Holidays,
		HolidayRegion: resp.HolidayRegion,
	}, nil
}

// Board lays out the project board with the stored view settings, opts
// overrides them for this call only (can be nil).
//
// A project without tasks to lay out returns a board with a nil Window.
func (c *Client) Board(ctx context.Context, projectID string, opts *BoardOpts) (*Board, error) {
	return c.board(ctx, projectID, opts, nil, nil)
}

func (c *Client) board(ctx context.Context, projectID string, opts *BoardOpts, pending layout.PendingChanges, preview *Preview) (*Board, error) {
	svc, err := layout.NewService(layout.ServiceConfig{
		Repository: c.repo,
		Holidays:   c.holidays,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create layout service: %w", err)
	}

	req := layout.Request{ProjectID: projectID, Pending: pending, Preview: preview}
	if opts != nil {
		req.DateMode = optDateMode(opts.DateMode)
		req.Granularity = optGranularity(opts.Granularity)
		req.Width = optInt(opts.Width)
	}

	b, err := svc.Run(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

// Workdays counts the business days from one date to another, both included.
// An empty region only skips weekends.
func (c *Client) Workdays(ctx context.Context, from, to Date, region string) (*WorkdayCount, error) {
	svc, err := workdays.NewService(workdays.ServiceConfig{Holidays: c.holidays, Logger: c.logger})
	if err != nil {
		return nil, fmt.Errorf("could not create workdays service: %w", err)
	}

	count, err := svc.Run(ctx, workdays.Request{From: from, To: to, Region: region})
	if err != nil {
		return nil, mapError(err)
	}
	return count, nil
}

// Settings returns the view settings of a project, the defaults when never saved.
func (c *Client) Settings(ctx context.Context, projectID string) (*ViewSettings, error) {
	svc, err := c.settingsService()
	if err != nil {
		return nil, err
	}

	vs, err := svc.Get(ctx, projectID)
	if err != nil {
		return nil, mapError(err)
	}
	return vs, nil
}

// SetSettings changes and saves the view settings of a project.
func (c *Client) SetSettings(ctx context.Context, projectID string, opts SettingsOpts) (*ViewSettings, error) {
	svc, err := c.settingsService()
	if err != nil {
		return nil, err
	}

	vs, err := svc.Set(ctx, settings.SetRequest{
		ProjectID:     projectID,
		DateMode:      optDateMode(opts.DateMode),
		Granularity:   optGranularity(opts.Granularity),
		TimelineWidth: optInt(opts.Width),
		HiddenColumns: opts.HiddenColumns,
		Region:        opts.Region,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return vs, nil
}

func (c *Client) settingsService() (*settings.Service, error) {
	svc, err := settings.NewService(settings.ServiceConfig{Repository: c.repo, Logger: c.logger})
	if err != nil {
		return nil, fmt.Errorf("could not create settings service: %w", err)
	}
	return svc, nil
}
