package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/planboard/internal/app/workdays"
	"github.com/slok/planboard/internal/model"
)

// WorkdaysCommand counts the business days of a date range.
type WorkdaysCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	from   string
	to     string
	region string
	format string
}

// NewWorkdaysCommand returns the workdays command.
func NewWorkdaysCommand(rootCmd *RootCommand, app *kingpin.Application) *WorkdaysCommand {
	c := &WorkdaysCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("workdays", "Count the business days between two dates, both included.")
	c.Cmd.Flag("from", "Range start (YYYY-MM-DD).").Required().StringVar(&c.from)
	c.Cmd.Flag("to", "Range end (YYYY-MM-DD).").Required().StringVar(&c.to)
	c.Cmd.Flag("region", "Holiday region, only weekends are skipped when missing.").StringVar(&c.region)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c WorkdaysCommand) Name() string { return c.Cmd.FullCommand() }

func (c WorkdaysCommand) Run(ctx context.Context) error {
	from, err := model.ParseDate(c.from)
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}
	to, err := model.ParseDate(c.to)
	if err != nil {
		return fmt.Errorf("invalid --to: %w", err)
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	holidays, err := c.rootCmd.newHolidayProvider(ctx, repo)
	if err != nil {
		return err
	}

	svc, err := workdays.NewService(workdays.ServiceConfig{
		Holidays: holidays,
		Logger:   c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	count, err := svc.Run(ctx, workdays.Request{From: from, To: to, Region: c.region})
	if err != nil {
		return fmt.Errorf("could not count business days: %w", err)
	}

	if err := c.rootCmd.newPrinter(c.format, 0).PrintWorkdays(*count); err != nil {
		return fmt.Errorf("could not print business days: %w", err)
	}

	return nil
}
