package drag

import (
	"fmt"

	"github.com/slok/planboard/internal/log"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/timeline"
)

// EventKind is the kind of a pointer event received while dragging.
type EventKind int

const (
	EventMove EventKind = iota
	EventUp
)

// PointerEvent is a pointer event delivered by an EventSource.
type PointerEvent struct {
	Kind EventKind
	X    float64
}

// EventSource delivers pointer events globally (not only over the bar) while subscribed.
type EventSource interface {
	// Subscribe registers the handler and returns the function that removes it.
	Subscribe(handler func(PointerEvent)) (unsubscribe func())
}

// Proposer receives committed drags.
type Proposer interface {
	Propose(t model.Task, mode model.DateMode) error
}

// State is the machine state.
type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// MachineConfig is the configuration of the drag machine.
type MachineConfig struct {
	Proposer Proposer
	// Source is optional, without it the caller feeds moves and releases directly.
	Source EventSource
	// OnEdit is called with the task when a press ends up being a click.
	OnEdit func(model.Task)
	Logger log.Logger
}

func (c *MachineConfig) defaults() error {
	if c.Proposer == nil {
		return fmt.Errorf("proposer is required")
	}
	if c.OnEdit == nil {
		c.OnEdit = func(model.Task) {}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "drag.Machine"})
	return nil
}

// Machine runs drag sessions, one at a time. It is meant to be driven from a
// single event loop and is not safe for concurrent use.
type Machine struct {
	proposer    Proposer
	source      EventSource
	onEdit      func(model.Task)
	logger      log.Logger
	geometry    *timeline.Geometry
	widthPx     float64
	session     *Session
	unsubscribe func()
}

// NewMachine returns an idle machine.
func NewMachine(cfg MachineConfig) (*Machine, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Machine{
		proposer: cfg.Proposer,
		source:   cfg.Source,
		onEdit:   cfg.OnEdit,
		logger:   cfg.Logger,
	}, nil
}

// SetLayout sets the geometry and the timeline width used to convert pixels to days.
// A nil geometry makes any active drag abort on the next move.
func (m *Machine) SetLayout(g *timeline.Geometry, widthPx float64) {
	m.geometry = g
	m.widthPx = widthPx
}

// State returns the machine state.
func (m *Machine) State() State {
	if m.session != nil {
		return StateDragging
	}
	return StateIdle
}

// Session returns a copy of the active session.
func (m *Machine) Session() (Session, bool) {
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// Preview returns the live position of the dragged task, nil when there is none.
func (m *Machine) Preview() *model.Preview {
	if m.session == nil || m.session.Temp == nil {
		return nil
	}
	return &model.Preview{
		TaskID: m.session.Task.ID,
		Start:  m.session.Temp.Start,
		End:    m.session.Temp.End,
	}
}

// PointerDown starts dragging the task. Presses while a drag is active are rejected
// with model.ErrDragActive and leave the active drag untouched.
func (m *Machine) PointerDown(t model.Task, mode model.DateMode, x, grabOffsetX float64, button Button) error {
	if m.session != nil {
		return fmt.Errorf("could not drag task %s: %w", t.ID, model.ErrDragActive)
	}

	s, err := Begin(t, mode, x, grabOffsetX, button)
	if err != nil {
		return err
	}

	m.session = &s
	if m.source != nil {
		m.unsubscribe = m.source.Subscribe(m.handle)
	}
	m.logger.Debugf("Drag started on task %s at x=%.1f", t.ID, x)

	return nil
}

// PointerMove updates the active drag. Errors abort the drag without touching the ledger.
func (m *Machine) PointerMove(x float64) error {
	if m.session == nil {
		return nil
	}

	s, err := m.session.Update(x, m.geometry, m.widthPx)
	if err != nil {
		m.logger.Warningf("Aborting drag on task %s: %s", m.session.Task.ID, err)
		m.Abort()
		return fmt.Errorf("drag aborted: %w", err)
	}
	m.session = &s

	return nil
}

// PointerUp ends the active drag. A click calls the edit callback, a committed drag
// is proposed to the ledger. The session is always destroyed.
func (m *Machine) PointerUp() (Outcome, error) {
	if m.session == nil {
		return Outcome{Kind: OutcomeNone}, nil
	}

	s := *m.session
	m.Abort()

	out := s.End()
	switch out.Kind {
	case OutcomeClick:
		m.logger.Debugf("Task %s clicked", s.Task.ID)
		m.onEdit(out.Task)
	case OutcomeCommit:
		if err := m.proposer.Propose(out.Task, s.Mode); err != nil {
			return Outcome{Kind: OutcomeNone, Task: s.Task}, fmt.Errorf("could not propose change: %w", err)
		}
		m.logger.Debugf("Task %s proposed for %s", s.Task.ID, s.Mode)
	}

	return out, nil
}

// Abort drops the active drag, if any, and detaches from the event source.
func (m *Machine) Abort() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.session = nil
}

func (m *Machine) handle(ev PointerEvent) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorf("Drag handler panic, aborting drag: %v", r)
			m.Abort()
		}
	}()

	switch ev.Kind {
	case EventMove:
		_ = m.PointerMove(ev.X)
	case EventUp:
		if _, err := m.PointerUp(); err != nil {
			m.logger.Errorf("Could not end drag: %s", err)
		}
	}
}
