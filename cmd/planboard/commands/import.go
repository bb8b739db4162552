package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/planboard/internal/app/importboard"
	storageio "github.com/slok/planboard/internal/storage/io"
)

// ImportCommand loads a board file into the database.
type ImportCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	file string
}

// NewImportCommand returns the import command.
func NewImportCommand(rootCmd *RootCommand, app *kingpin.Application) *ImportCommand {
	c := &ImportCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("import", "Import a project board YAML file.")
	c.Cmd.Arg("file", "Board file path.").Required().StringVar(&c.file)

	return c
}

func (c ImportCommand) Name() string { return c.Cmd.FullCommand() }

func (c ImportCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	path, err := filepath.Abs(c.file)
	if err != nil {
		return fmt.Errorf("could not resolve board file path: %w", err)
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := importboard.NewService(importboard.ServiceConfig{
		Loader:     storageio.NewBoardYAMLRepository(os.DirFS("/")),
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// The loader reads from the root filesystem, paths are relative to it.
	resp, err := svc.Run(ctx, importboard.Request{Path: path[1:]})
	if err != nil {
		return fmt.Errorf("could not import board: %w", err)
	}

	msg := fmt.Sprintf("Imported project %s: %d milestones, %d tasks", resp.ProjectID, resp.Milestones, resp.Tasks)
	if resp.Holidays > 0 {
		msg += fmt.Sprintf(", %d %s holidays", resp.Holidays, resp.HolidayRegion)
	}

	return c.rootCmd.newPrinter(formatTable, 0).PrintMessage(msg)
}
