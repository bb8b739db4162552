package commands

import (
	"context"
	"fmt"

	"github.com/slok/planboard/internal/app/layout"
	"github.com/slok/planboard/internal/app/move"
	"github.com/slok/planboard/internal/app/resize"
	"github.com/slok/planboard/internal/app/save"
	"github.com/slok/planboard/internal/app/settings"
	"github.com/slok/planboard/internal/drag"
	"github.com/slok/planboard/internal/ledger"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/printer"
	"github.com/slok/planboard/internal/storage/sqlite"
)

// boardSession is the editing state shared by the rescheduling commands: one
// ledger collects the changes until they are saved or discarded.
type boardSession struct {
	projectID string
	repo      *sqlite.Repository
	ledger    *ledger.Ledger
	printer   printer.Printer

	layoutSvc *layout.Service
	moveSvc   *move.Service
	resizeSvc *resize.Service
	saveSvc   *save.Service
}

func (r *RootCommand) newBoardSession(ctx context.Context, projectID string, p printer.Printer) (*boardSession, error) {
	repo, err := r.newRepository(ctx)
	if err != nil {
		return nil, err
	}

	s, err := r.newBoardSessionWithRepo(ctx, projectID, repo, p)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	return s, nil
}

func (r *RootCommand) newBoardSessionWithRepo(ctx context.Context, projectID string, repo *sqlite.Repository, p printer.Printer) (*boardSession, error) {
	l, err := r.newLedger()
	if err != nil {
		return nil, err
	}

	holidays, err := r.newHolidayProvider(ctx, repo)
	if err != nil {
		return nil, err
	}

	layoutSvc, err := layout.NewService(layout.ServiceConfig{Repository: repo, Holidays: holidays, Logger: r.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create layout service: %w", err)
	}
	moveSvc, err := move.NewService(move.ServiceConfig{Repository: repo, Logger: r.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create move service: %w", err)
	}
	resizeSvc, err := resize.NewService(resize.ServiceConfig{Repository: repo, Logger: r.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create resize service: %w", err)
	}
	saveSvc, err := save.NewService(save.ServiceConfig{Repository: repo, Logger: r.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create save service: %w", err)
	}

	return &boardSession{
		projectID: projectID,
		repo:      repo,
		ledger:    l,
		printer:   p,
		layoutSvc: layoutSvc,
		moveSvc:   moveSvc,
		resizeSvc: resizeSvc,
		saveSvc:   saveSvc,
	}, nil
}

func (s *boardSession) Close() error { return s.repo.Close() }

// dateMode returns the mode or the project one when empty.
func (s *boardSession) dateMode(ctx context.Context, mode string) (model.DateMode, error) {
	if mode != "" {
		return model.DateMode(mode), nil
	}
	vs, err := settings.Load(ctx, s.repo, s.projectID)
	if err != nil {
		return "", err
	}
	return vs.DateMode, nil
}

type moveRequest struct {
	taskID string
	fromX  *float64
	toX    float64
	steps  int
	mode   string
	width  int
}

func (s *boardSession) move(ctx context.Context, req moveRequest) (*move.Response, error) {
	resp, err := s.moveSvc.Run(ctx, move.Request{
		ProjectID: s.projectID,
		TaskID:    req.taskID,
		FromX:     req.fromX,
		ToX:       req.toX,
		Steps:     req.steps,
		DateMode:  optDateMode(req.mode),
		Width:     optInt(req.width),
		Ledger:    s.ledger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not move task: %w", err)
	}

	var msg string
	switch resp.Outcome {
	case drag.OutcomeCommit:
		msg = fmt.Sprintf("Task %s moved %s", resp.Task.ID, FormatShift(resp.Days))
	case drag.OutcomeClick:
		msg = fmt.Sprintf("Task %s clicked, pointer didn't pass the drag threshold", resp.Task.ID)
	default:
		msg = fmt.Sprintf("Task %s dropped where it was", resp.Task.ID)
	}
	if err := s.printer.PrintMessage(msg); err != nil {
		return nil, fmt.Errorf("could not print message: %w", err)
	}

	return resp, nil
}

func (s *boardSession) resize(ctx context.Context, taskID, days, mode string) (*model.Task, error) {
	m, err := s.dateMode(ctx, mode)
	if err != nil {
		return nil, err
	}

	t, err := s.resizeSvc.Run(ctx, resize.Request{
		TaskID:   taskID,
		Mode:     m,
		Duration: days,
		Ledger:   s.ledger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not resize task: %w", err)
	}

	start, end := t.Dates(m)
	msg := fmt.Sprintf("Task %s resized to %s", t.ID, printer.FormatRange(start, end))
	if err := s.printer.PrintMessage(msg); err != nil {
		return nil, fmt.Errorf("could not print message: %w", err)
	}

	return t, nil
}

// printBoard draws the board in the mode and width the changes were made with,
// empty values use the project settings.
func (s *boardSession) printBoard(ctx context.Context, mode string, width int, preview *model.Preview) error {
	board, err := s.layoutSvc.Run(ctx, layout.Request{
		ProjectID: s.projectID,
		DateMode:  optDateMode(mode),
		Width:     optInt(width),
		Pending:   s.ledger,
		Preview:   preview,
	})
	if err != nil {
		return fmt.Errorf("could not layout board: %w", err)
	}

	if err := s.printer.PrintBoard(*board); err != nil {
		return fmt.Errorf("could not print board: %w", err)
	}
	return nil
}

// save writes the pending changes, failed ones are returned as an error.
func (s *boardSession) save(ctx context.Context, retainFailed bool) error {
	resp, err := s.saveSvc.Run(ctx, save.Request{Ledger: s.ledger, RetainFailed: retainFailed})
	if err != nil {
		return fmt.Errorf("could not save changes: %w", err)
	}

	if err := s.printer.PrintMessage(fmt.Sprintf("Saved %d changes", resp.Saved)); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}
	if resp.Failed == 0 {
		return nil
	}

	for _, r := range resp.Results.Failed() {
		_ = s.printer.PrintMessage(fmt.Sprintf("Change of task %s failed: %s", r.TaskID, r.Err))
	}
	return fmt.Errorf("%d of %d changes could not be saved", resp.Failed, len(resp.Results))
}

func (s *boardSession) discard() error {
	n := s.ledger.Len()
	s.ledger.DiscardAll()
	return s.printer.PrintMessage(fmt.Sprintf("Discarded %d changes", n))
}

// FormatShift returns a signed human-readable day shift.
func FormatShift(days int) string {
	if days > 0 {
		return "+" + printer.FormatDays(days)
	}
	return printer.FormatDays(days)
}
