package commands

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/planboard/internal/printer"
)

const editUsage = `Commands:
  move TASK TO_X [FROM_X]  drag a task bar to a pixel position
  resize TASK DAYS         set the task duration
  board                    show the board with the unsaved changes
  pending                  list the unsaved changes
  save                     save the unsaved changes
  discard                  drop the unsaved changes
  quit                     exit, unsaved changes are lost`

// EditCommand is an interactive rescheduling session, the changes are kept
// pending until they are saved.
type EditCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID    string
	mode         string
	width        int
	format       string
	ganttColumns int
}

// NewEditCommand returns the edit command.
func NewEditCommand(rootCmd *RootCommand, app *kingpin.Application) *EditCommand {
	c := &EditCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("edit", "Reschedule several tasks reading commands from stdin and save them at once.")
	c.Cmd.Flag("project", "Project ID.").Short('p').Required().StringVar(&c.projectID)
	dateModeFlag(c.Cmd, &c.mode)
	c.Cmd.Flag("width", "Timeline width in pixels, the project setting when missing.").IntVar(&c.width)
	c.Cmd.Flag("columns", "Timeline characters of the gantt format.").Default("80").IntVar(&c.ganttColumns)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c EditCommand) Name() string { return c.Cmd.FullCommand() }

func (c EditCommand) Run(ctx context.Context) error {
	s, err := c.rootCmd.newBoardSession(ctx, c.projectID, c.rootCmd.newPrinter(c.format, c.ganttColumns))
	if err != nil {
		return err
	}
	defer s.Close()

	// Stops the stdin reader when the session ends before the input does.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.rootCmd.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			break
		}

		cmd, err := parseEditLine(line)
		if err != nil {
			_ = s.printer.PrintMessage(err.Error())
			continue
		}
		if cmd.kind == editQuit {
			break
		}
		if err := c.exec(ctx, s, cmd); err != nil {
			// Errors never end the session, the ledger keeps the changes.
			_ = s.printer.PrintMessage(fmt.Sprintf("Error: %s", err))
		}
	}

	if n := s.ledger.Len(); n > 0 {
		c.rootCmd.Logger.Warningf("%d unsaved changes discarded", n)
	}

	return nil
}

func (c EditCommand) exec(ctx context.Context, s *boardSession, cmd editCmd) error {
	switch cmd.kind {
	case editMove:
		_, err := s.move(ctx, moveRequest{
			taskID: cmd.taskID,
			fromX:  cmd.fromX,
			toX:    cmd.toX,
			mode:   c.mode,
			width:  c.width,
		})
		return err
	case editResize:
		_, err := s.resize(ctx, cmd.taskID, cmd.days, c.mode)
		return err
	case editBoard:
		return s.printBoard(ctx, c.mode, c.width, nil)
	case editPending:
		entries := s.ledger.Entries()
		if len(entries) == 0 {
			return s.printer.PrintMessage("No unsaved changes")
		}
		for _, e := range entries {
			start, end := e.Task.Dates(e.Mode)
			if err := s.printer.PrintMessage(fmt.Sprintf("%s %s (%s)", e.Task.ID, printer.FormatRange(start, end), e.Mode)); err != nil {
				return err
			}
		}
		return nil
	case editSave:
		return s.save(ctx, true)
	case editDiscard:
		return s.discard()
	case editHelp:
		return s.printer.PrintMessage(editUsage)
	}
	return nil
}

type editKind int

const (
	editMove editKind = iota
	editResize
	editBoard
	editPending
	editSave
	editDiscard
	editHelp
	editQuit
	editNoop
)

type editCmd struct {
	kind   editKind
	taskID string
	toX    float64
	fromX  *float64
	days   string
}

func parseEditLine(line string) (editCmd, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return editCmd{kind: editNoop}, nil
	}

	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "move", "mv":
		if len(args) < 2 || len(args) > 3 {
			return editCmd{}, fmt.Errorf("usage: move TASK TO_X [FROM_X]")
		}
		cmd := editCmd{kind: editMove, taskID: args[0]}
		x, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return editCmd{}, fmt.Errorf("invalid TO_X %q", args[1])
		}
		cmd.toX = x
		if len(args) == 3 {
			from, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return editCmd{}, fmt.Errorf("invalid FROM_X %q", args[2])
			}
			cmd.fromX = &from
		}
		return cmd, nil
	case "resize":
		if len(args) != 2 {
			return editCmd{}, fmt.Errorf("usage: resize TASK DAYS")
		}
		// Days are validated by the resize service.
		return editCmd{kind: editResize, taskID: args[0], days: args[1]}, nil
	case "board", "show":
		return editCmd{kind: editBoard}, nil
	case "pending":
		return editCmd{kind: editPending}, nil
	case "save":
		return editCmd{kind: editSave}, nil
	case "discard":
		return editCmd{kind: editDiscard}, nil
	case "help", "?":
		return editCmd{kind: editHelp}, nil
	case "quit", "exit", "q":
		return editCmd{kind: editQuit}, nil
	}

	return editCmd{}, fmt.Errorf("unknown command %q, type help", fields[0])
}
