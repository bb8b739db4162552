package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/slok/planboard/cmd/planboard/commands"
	"github.com/slok/planboard/internal/log"
	loglogrus "github.com/slok/planboard/internal/log/logrus"
)

// Version is the application version (set via ldflags).
var Version = "dev"

// quietCommands print boards or settings on stdout and run without logs by default.
var quietCommands = map[string]bool{
	"board":        true,
	"workdays":     true,
	"settings get": true,
}

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	app := kingpin.New("planboard", "Project scheduling board: milestone timelines, drag rescheduling and business days.")
	app.DefaultEnvars()
	rootCmd := commands.NewRootCommand(app)

	importCmd := commands.NewImportCommand(rootCmd, app)
	boardCmd := commands.NewBoardCommand(rootCmd, app)
	moveCmd := commands.NewMoveCommand(rootCmd, app)
	resizeCmd := commands.NewResizeCommand(rootCmd, app)
	editCmd := commands.NewEditCommand(rootCmd, app)
	workdaysCmd := commands.NewWorkdaysCommand(rootCmd, app)

	// Settings subcommands share a parent command.
	settingsCmd := commands.NewSettingsCommand(app)
	settingsGetCmd := commands.NewSettingsGetCommand(rootCmd, settingsCmd)
	settingsSetCmd := commands.NewSettingsSetCommand(rootCmd, settingsCmd)

	cmds := map[string]commands.Command{
		importCmd.Name():      importCmd,
		boardCmd.Name():       boardCmd,
		moveCmd.Name():        moveCmd,
		resizeCmd.Name():      resizeCmd,
		editCmd.Name():        editCmd,
		workdaysCmd.Name():    workdaysCmd,
		settingsGetCmd.Name(): settingsGetCmd,
		settingsSetCmd.Name(): settingsSetCmd,
	}

	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	if rootCmd.NoColor {
		color.NoColor = true
	}

	// Output commands keep the terminal clean unless debugging.
	if quietCommands[cmdName] && !rootCmd.Debug {
		rootCmd.NoLog = true
	}

	// Set logger.
	rootCmd.Logger = getLogger(ctx, *rootCmd)

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmds[cmdName].Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger.
func getLogger(ctx context.Context, config commands.RootCommand) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	// If logger not disabled use logrus logger.
	logrusLog := logrus.New()
	logrusLog.Out = config.Stderr // By default logger goes to stderr (so it can split stdout prints).
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	// Log format.
	switch config.LoggerType {
	case commands.LoggerTypeDefault:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !config.NoColor,
			DisableColors: config.NoColor,
		})
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})

	logger.Debugf("Debug level is enabled") // Will log only when debug enabled.

	return logger
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
