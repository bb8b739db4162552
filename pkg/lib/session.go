package lib

import (
	"context"
	"fmt"

	"github.com/slok/planboard/internal/app/resize"
	"github.com/slok/planboard/internal/app/save"
	"github.com/slok/planboard/internal/app/settings"
	"github.com/slok/planboard/internal/drag"
	"github.com/slok/planboard/internal/ledger"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/timeline"
)

// DragOutcome is how a drag ended.
type DragOutcome string

const (
	// DragOutcomeNone means nothing changed, the pointer came back to the same day.
	DragOutcomeNone DragOutcome = "none"
	// DragOutcomeClick means the pointer never moved past the drag threshold.
	DragOutcomeClick DragOutcome = "click"
	// DragOutcomeCommit means the task new dates are pending.
	DragOutcomeCommit DragOutcome = "commit"
)

// SessionOpts configures an editing session.
type SessionOpts struct {
	// DateMode is the date pair being edited, the project setting when empty.
	DateMode DateMode
	// Width is the timeline width in pixels, the project setting when zero.
	Width int
	// OnClick receives the task when a press ends up being a click.
	OnClick func(Task)
}

// Session is an editing session of a project board.
//
// Changes are kept pending until [Session.Save] and are shown by [Session.Board].
// A Session is driven from a single event loop, it is not safe for concurrent use.
type Session struct {
	client    *Client
	projectID string
	mode      DateMode
	width     int
	ledger    *ledger.Ledger
	events    *drag.Dispatcher
	machine   *drag.Machine
	resizeSvc *resize.Service
	saveSvc   *save.Service
}

// NewSession starts an editing session of a project, opts can be nil.
func (c *Client) NewSession(ctx context.Context, projectID string, opts *SessionOpts) (*Session, error) {
	if opts == nil {
		opts = &SessionOpts{}
	}

	vs, err := settings.Load(ctx, c.repo, projectID)
	if err != nil {
		return nil, mapError(err)
	}
	if opts.DateMode != "" {
		vs.DateMode = opts.DateMode
	}
	if opts.Width != 0 {
		vs.TimelineWidth = opts.Width
	}
	if err := vs.Validate(); err != nil {
		return nil, mapError(fmt.Errorf("invalid session options: %w", err))
	}

	l, err := ledger.New(ledger.Config{Logger: c.logger})
	if err != nil {
		return nil, fmt.Errorf("could not create ledger: %w", err)
	}

	events := drag.NewDispatcher()
	m, err := drag.NewMachine(drag.MachineConfig{
		Proposer: l,
		Source:   events,
		OnEdit:   opts.OnClick,
		Logger:   c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create drag machine: %w", err)
	}

	resizeSvc, err := resize.NewService(resize.ServiceConfig{Repository: c.repo, Logger: c.logger})
	if err != nil {
		return nil, fmt.Errorf("could not create resize service: %w", err)
	}
	saveSvc, err := save.NewService(save.ServiceConfig{Repository: c.repo, Logger: c.logger})
	if err != nil {
		return nil, fmt.Errorf("could not create save service: %w", err)
	}

	return &Session{
		client:    c,
		projectID: projectID,
		mode:      vs.DateMode,
		width:     vs.TimelineWidth,
		ledger:    l,
		events:    events,
		machine:   m,
		resizeSvc: resizeSvc,
		saveSvc:   saveSvc,
	}, nil
}

// geometry lays out the project tasks with the pending changes applied.
func (s *Session) geometry(ctx context.Context) (*timeline.Geometry, error) {
	tasks, err := s.client.repo.ListTasks(ctx, s.projectID)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}
	for i, t := range tasks {
		tasks[i], _ = s.ledger.Effective(t)
	}

	g, ok := timeline.Compute(tasks, s.mode)
	if !ok {
		return nil, fmt.Errorf("project %s: %w", s.projectID, model.ErrNoGeometry)
	}
	return g, nil
}

// PointerDown presses the bar of a task at the x pixel of the timeline.
//
// Returns [ErrDragActive] while another drag is in progress, [ErrNotFound] if the
// task is not on the timeline, or [ErrNotValid] if x is not on the task bar.
func (s *Session) PointerDown(ctx context.Context, taskID string, x float64) error {
	if s.machine.State() == drag.StateDragging {
		return mapError(fmt.Errorf("could not drag task %s: %w", taskID, model.ErrDragActive))
	}

	g, err := s.geometry(ctx)
	if err != nil {
		return mapError(err)
	}

	bar, ok := g.Bar(taskID)
	if !ok {
		return mapError(fmt.Errorf("task %s is not on the %s timeline: %w", taskID, s.mode, model.ErrNotFound))
	}

	width := float64(s.width)
	barX, barW := g.BarPixels(bar, width)
	if x < barX || x > barX+barW {
		return mapError(fmt.Errorf("x=%.1f is not on the task bar: %w", x, model.ErrNotValid))
	}

	s.machine.SetLayout(g, width)
	return mapError(s.machine.PointerDown(bar.Task, s.mode, x, x-barX, drag.ButtonPrimary))
}

// PointerMove moves the pointer of the active drag, it's ignored when there is none.
func (s *Session) PointerMove(x float64) {
	s.events.Dispatch(drag.PointerEvent{Kind: drag.EventMove, X: x})
}

// PointerUp releases the pointer ending the active drag.
func (s *Session) PointerUp() (DragOutcome, error) {
	out, err := s.machine.PointerUp()
	if err != nil {
		return DragOutcomeNone, mapError(err)
	}

	switch out.Kind {
	case drag.OutcomeClick:
		return DragOutcomeClick, nil
	case drag.OutcomeCommit:
		return DragOutcomeCommit, nil
	}
	return DragOutcomeNone, nil
}

// CancelDrag drops the active drag without changes.
func (s *Session) CancelDrag() { s.machine.Abort() }

// Dragging returns true while a drag is in progress.
func (s *Session) Dragging() bool { return s.machine.State() == drag.StateDragging }

// Preview returns the live position of the dragged task, nil when there is none.
func (s *Session) Preview() *Preview { return s.machine.Preview() }

// Board lays out the board with the pending changes and the live drag preview.
func (s *Session) Board(ctx context.Context) (*Board, error) {
	return s.client.board(ctx, s.projectID, &BoardOpts{DateMode: s.mode, Width: s.width}, s.ledger, s.machine.Preview())
}

// Resize sets the duration in days of a task as typed by the user, the end
// date moves. Returns [ErrNotValid] for non positive or non numeric durations.
func (s *Session) Resize(ctx context.Context, taskID, days string) (*Task, error) {
	t, err := s.resizeSvc.Run(ctx, resize.Request{
		TaskID:   taskID,
		Mode:     s.mode,
		Duration: days,
		Ledger:   s.ledger,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

// Pending returns the tasks with unsaved changes in the order they were changed.
func (s *Session) Pending() []Task {
	entries := s.ledger.Entries()
	tasks := make([]Task, 0, len(entries))
	for _, e := range entries {
		tasks = append(tasks, e.Task)
	}
	return tasks
}

// Save stores the pending changes. The changes that fail stay pending so they
// can be saved again.
func (s *Session) Save(ctx context.Context) (*SaveResult, error) {
	resp, err := s.saveSvc.Run(ctx, save.Request{Ledger: s.ledger, RetainFailed: true})
	if err != nil {
		return nil, mapError(err)
	}

	res := fromLedgerResults(resp.Saved, resp.Results.Failed())
	return &res, nil
}

// Discard drops the pending changes.
func (s *Session) Discard() { s.ledger.DiscardAll() }
