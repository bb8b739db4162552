package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
)

// MoveCommand reschedules a task dragging its bar on the timeline.
type MoveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID string
	taskID    string
	fromX     string
	toX       float64
	steps     int
	mode      string
	width     int
	dryRun    bool
	format    string
}

// NewMoveCommand returns the move command.
func NewMoveCommand(rootCmd *RootCommand, app *kingpin.Application) *MoveCommand {
	c := &MoveCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("move", "Drag a task bar to a new timeline position.")
	c.Cmd.Flag("project", "Project ID.").Short('p').Required().StringVar(&c.projectID)
	c.Cmd.Flag("task", "Task ID.").Short('t').Required().StringVar(&c.taskID)
	c.Cmd.Flag("from-x", "Pointer press position in pixels, the bar middle when missing.").StringVar(&c.fromX)
	c.Cmd.Flag("to-x", "Pointer release position in pixels.").Required().Float64Var(&c.toX)
	c.Cmd.Flag("steps", "Pointer move events sent between press and release.").Default("1").IntVar(&c.steps)
	dateModeFlag(c.Cmd, &c.mode)
	c.Cmd.Flag("width", "Timeline width in pixels, the project setting when missing.").IntVar(&c.width)
	c.Cmd.Flag("dry-run", "Show the board with the change without saving it.").BoolVar(&c.dryRun)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c MoveCommand) Name() string { return c.Cmd.FullCommand() }

func (c MoveCommand) Run(ctx context.Context) error {
	req := moveRequest{
		taskID: c.taskID,
		toX:    c.toX,
		steps:  c.steps,
		mode:   c.mode,
		width:  c.width,
	}
	if c.fromX != "" {
		x, err := strconv.ParseFloat(c.fromX, 64)
		if err != nil {
			return fmt.Errorf("invalid --from-x: %w", err)
		}
		req.fromX = &x
	}

	s, err := c.rootCmd.newBoardSession(ctx, c.projectID, c.rootCmd.newPrinter(c.format, 0))
	if err != nil {
		return err
	}
	defer s.Close()

	resp, err := s.move(ctx, req)
	if err != nil {
		return err
	}

	if c.dryRun {
		return s.printBoard(ctx, c.mode, c.width, resp.LastPreview)
	}

	return s.save(ctx, false)
}
