package commands

import (
	"context"

	"github.com/alecthomas/kingpin/v2"
)

// ResizeCommand sets the duration of a task keeping its start date.
type ResizeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID string
	taskID    string
	days      string
	mode      string
	dryRun    bool
	format    string
}

// NewResizeCommand returns the resize command.
func NewResizeCommand(rootCmd *RootCommand, app *kingpin.Application) *ResizeCommand {
	c := &ResizeCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("resize", "Set the duration in days of a task, the end date moves.")
	c.Cmd.Flag("project", "Project ID.").Short('p').Required().StringVar(&c.projectID)
	c.Cmd.Flag("task", "Task ID.").Short('t').Required().StringVar(&c.taskID)
	c.Cmd.Flag("days", "New duration in days, both ends included.").Required().StringVar(&c.days)
	dateModeFlag(c.Cmd, &c.mode)
	c.Cmd.Flag("dry-run", "Show the board with the change without saving it.").BoolVar(&c.dryRun)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c ResizeCommand) Name() string { return c.Cmd.FullCommand() }

func (c ResizeCommand) Run(ctx context.Context) error {
	s, err := c.rootCmd.newBoardSession(ctx, c.projectID, c.rootCmd.newPrinter(c.format, 0))
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.resize(ctx, c.taskID, c.days, c.mode); err != nil {
		return err
	}

	if c.dryRun {
		return s.printBoard(ctx, c.mode, 0, nil)
	}

	return s.save(ctx, false)
}
