package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/planboard/internal/app/settings"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/printer"
)

// NewSettingsCommand returns the settings parent command.
func NewSettingsCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("settings", "Manage the project view settings.")
}

// SettingsGetCommand prints the view settings of a project.
type SettingsGetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID string
	format    string
}

// NewSettingsGetCommand returns the settings get command.
func NewSettingsGetCommand(rootCmd *RootCommand, settingsCmd *kingpin.CmdClause) *SettingsGetCommand {
	c := &SettingsGetCommand{rootCmd: rootCmd}

	c.Cmd = settingsCmd.Command("get", "Show the view settings of a project.")
	c.Cmd.Flag("project", "Project ID.").Short('p').Required().StringVar(&c.projectID)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c SettingsGetCommand) Name() string { return c.Cmd.FullCommand() }

func (c SettingsGetCommand) Run(ctx context.Context) error {
	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := settings.NewService(settings.ServiceConfig{Repository: repo, Logger: c.rootCmd.Logger})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	vs, err := svc.Get(ctx, c.projectID)
	if err != nil {
		return fmt.Errorf("could not get settings: %w", err)
	}

	return c.rootCmd.newPrinter(c.format, 0).PrintSettings(*vs)
}

// SettingsSetCommand changes the view settings of a project.
type SettingsSetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID   string
	mode        string
	granularity string
	width       int
	hidden      string
	region      string
	format      string
}

// NewSettingsSetCommand returns the settings set command.
func NewSettingsSetCommand(rootCmd *RootCommand, settingsCmd *kingpin.CmdClause) *SettingsSetCommand {
	c := &SettingsSetCommand{rootCmd: rootCmd}

	c.Cmd = settingsCmd.Command("set", "Change the view settings of a project, missing flags keep their value.")
	c.Cmd.Flag("project", "Project ID.").Short('p').Required().StringVar(&c.projectID)
	dateModeFlag(c.Cmd, &c.mode)
	c.Cmd.Flag("granularity", "Timeline header unit (year, month, day).").
		EnumVar(&c.granularity, string(model.GranularityYear), string(model.GranularityMonth), string(model.GranularityDay))
	c.Cmd.Flag("width", "Timeline width in pixels.").IntVar(&c.width)
	c.Cmd.Flag("hidden", fmt.Sprintf("Comma separated hidden columns (%s), 'none' shows all.", strings.Join(printer.Columns, ", "))).StringVar(&c.hidden)
	c.Cmd.Flag("region", "Holiday region, 'none' disables holidays.").StringVar(&c.region)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c SettingsSetCommand) Name() string { return c.Cmd.FullCommand() }

func (c SettingsSetCommand) Run(ctx context.Context) error {
	req := settings.SetRequest{
		ProjectID:     c.projectID,
		DateMode:      optDateMode(c.mode),
		TimelineWidth: optInt(c.width),
	}
	if c.granularity != "" {
		g := model.Granularity(c.granularity)
		req.Granularity = &g
	}
	if c.region != "" {
		region := c.region
		if region == "none" {
			region = ""
		}
		req.Region = &region
	}
	if c.hidden != "" {
		hidden, err := parseColumns(c.hidden)
		if err != nil {
			return err
		}
		req.HiddenColumns = hidden
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := settings.NewService(settings.ServiceConfig{Repository: repo, Logger: c.rootCmd.Logger})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	vs, err := svc.Set(ctx, req)
	if err != nil {
		return fmt.Errorf("could not set settings: %w", err)
	}

	return c.rootCmd.newPrinter(c.format, 0).PrintSettings(*vs)
}

// parseColumns parses a comma separated column list, "none" is an empty list.
func parseColumns(s string) ([]string, error) {
	columns := []string{}
	if s == "none" {
		return columns, nil
	}

	known := map[string]bool{}
	for _, c := range printer.Columns {
		known[c] = true
	}
	for _, c := range strings.Split(s, ",") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if !known[c] {
			return nil, fmt.Errorf("unknown column %q: %w", c, model.ErrNotValid)
		}
		columns = append(columns, c)
	}
	return columns, nil
}
