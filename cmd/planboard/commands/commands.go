package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/planboard/internal/conventions"
	"github.com/slok/planboard/internal/holiday"
	"github.com/slok/planboard/internal/holiday/google"
	"github.com/slok/planboard/internal/ledger"
	"github.com/slok/planboard/internal/log"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/printer"
	"github.com/slok/planboard/internal/storage"
	"github.com/slok/planboard/internal/storage/sqlite"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

const (
	formatTable = "table"
	formatGantt = "gantt"
	formatJSON  = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug        bool
	NoLog        bool
	NoColor      bool
	LoggerType   string
	DBPath       string
	GoogleAPIKey string
	HolidayLang  string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger and output color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	defaultDBPath := conventions.DBPath(homedir.HomeDir())
	app.Flag("db-path", "Path to the SQLite database file.").Envar(conventions.EnvPrefix + "_DB_PATH").Default(defaultDBPath).StringVar(&c.DBPath)
	app.Flag("google-api-key", "Google Calendar API key used to fetch public holidays, holidays come only from imports when missing.").Envar(conventions.EnvPrefix + "_GOOGLE_API_KEY").StringVar(&c.GoogleAPIKey)
	app.Flag("holiday-lang", "Language of the Google public holiday calendars.").Default("en").StringVar(&c.HolidayLang)

	return c
}

func (r *RootCommand) newRepository(ctx context.Context) (*sqlite.Repository, error) {
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: r.DBPath,
		Logger: r.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}
	return repo, nil
}

// newHolidayProvider returns the holiday source of the layouts. Without an API key
// the repository holidays (imported ones) are used.
func (r *RootCommand) newHolidayProvider(ctx context.Context, repo storage.HolidayRepository) (storage.HolidayProvider, error) {
	var remote storage.HolidayProvider
	if r.GoogleAPIKey != "" {
		p, err := google.NewProvider(ctx, google.ProviderConfig{
			APIKey:   r.GoogleAPIKey,
			Language: r.HolidayLang,
			Logger:   r.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create google holiday provider: %w", err)
		}
		remote = p
	}

	p, err := holiday.NewCachedProvider(holiday.CachedProviderConfig{
		Remote: remote,
		Cache:  repo,
		Logger: r.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create holiday provider: %w", err)
	}
	return p, nil
}

func (r *RootCommand) newLedger() (*ledger.Ledger, error) {
	l, err := ledger.New(ledger.Config{Logger: r.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create ledger: %w", err)
	}
	return l, nil
}

func (r *RootCommand) newPrinter(format string, ganttColumns int) printer.Printer {
	switch format {
	case formatJSON:
		return printer.NewJSONPrinter(r.Stdout)
	case formatGantt:
		return printer.NewGanttPrinter(r.Stdout, ganttColumns)
	default:
		return printer.NewTablePrinter(r.Stdout)
	}
}

func formatFlag(cmd *kingpin.CmdClause, format *string) {
	cmd.Flag("format", "Output format (table, gantt, json).").Default(formatTable).EnumVar(format, formatTable, formatGantt, formatJSON)
}

func dateModeFlag(cmd *kingpin.CmdClause, mode *string) {
	cmd.Flag("mode", "Date pair that drives the timeline (estimated, actual), the project setting when missing.").
		EnumVar(mode, string(model.DateModeEstimated), string(model.DateModeActual))
}

func optDateMode(s string) *model.DateMode {
	if s == "" {
		return nil
	}
	m := model.DateMode(s)
	return &m
}

func optInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
