package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/planboard/internal/app/layout"
	"github.com/slok/planboard/internal/model"
)

// BoardCommand prints the project timeline.
type BoardCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID    string
	mode         string
	granularity  string
	width        int
	format       string
	ganttColumns int
}

// NewBoardCommand returns the board command.
func NewBoardCommand(rootCmd *RootCommand, app *kingpin.Application) *BoardCommand {
	c := &BoardCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("board", "Show the project timeline grouped by milestone.")
	c.Cmd.Flag("project", "Project ID.").Short('p').Required().StringVar(&c.projectID)
	dateModeFlag(c.Cmd, &c.mode)
	c.Cmd.Flag("granularity", "Timeline header unit (year, month, day), the project setting when missing.").
		EnumVar(&c.granularity, string(model.GranularityYear), string(model.GranularityMonth), string(model.GranularityDay))
	c.Cmd.Flag("width", "Timeline width in pixels, the project setting when missing.").IntVar(&c.width)
	c.Cmd.Flag("columns", "Timeline characters of the gantt format.").Default("80").IntVar(&c.ganttColumns)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c BoardCommand) Name() string { return c.Cmd.FullCommand() }

func (c BoardCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	holidays, err := c.rootCmd.newHolidayProvider(ctx, repo)
	if err != nil {
		return err
	}

	svc, err := layout.NewService(layout.ServiceConfig{
		Repository: repo,
		Holidays:   holidays,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	req := layout.Request{
		ProjectID: c.projectID,
		DateMode:  optDateMode(c.mode),
		Width:     optInt(c.width),
	}
	if c.granularity != "" {
		g := model.Granularity(c.granularity)
		req.Granularity = &g
	}

	board, err := svc.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("could not layout board: %w", err)
	}

	if err := c.rootCmd.newPrinter(c.format, c.ganttColumns).PrintBoard(*board); err != nil {
		return fmt.Errorf("could not print board: %w", err)
	}

	return nil
}
