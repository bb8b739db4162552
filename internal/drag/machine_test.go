package drag_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/planboard/internal/drag"
	"github.com/slok/planboard/internal/ledger"
	"github.com/slok/planboard/internal/log"
	"github.com/slok/planboard/internal/model"
)

type failingProposer struct{}

func (failingProposer) Propose(model.Task, model.DateMode) error { return fmt.Errorf("something") }

type machineTest struct {
	machine    *drag.Machine
	ledger     *ledger.Ledger
	dispatcher *drag.Dispatcher
	edited     []string
}

func newMachineTest(t *testing.T) *machineTest {
	t.Helper()

	mt := &machineTest{dispatcher: drag.NewDispatcher()}

	l, err := ledger.New(ledger.Config{Logger: log.Noop})
	require.NoError(t, err)
	mt.ledger = l

	m, err := drag.NewMachine(drag.MachineConfig{
		Proposer: l,
		Source:   mt.dispatcher,
		OnEdit:   func(t model.Task) { mt.edited = append(mt.edited, t.ID) },
		Logger:   log.Noop,
	})
	require.NoError(t, err)
	m.SetLayout(testGeometry(t), testWidth)
	mt.machine = m

	return mt
}

func TestNewMachine(t *testing.T) {
	_, err := drag.NewMachine(drag.MachineConfig{})
	assert.Error(t, err)

	m, err := drag.NewMachine(drag.MachineConfig{Proposer: failingProposer{}})
	assert.NoError(t, err)
	assert.Equal(t, drag.StateIdle, m.State())
}

func TestMachineClickBelowThreshold(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	mt := newMachineTest(t)

	require.NoError(mt.machine.PointerDown(testTask(), model.DateModeEstimated, 100, 10, drag.ButtonPrimary))
	require.NoError(mt.machine.PointerMove(103))
	out, err := mt.machine.PointerUp()
	require.NoError(err)

	assert.Equal(drag.OutcomeClick, out.Kind)
	assert.Equal([]string{"t1"}, mt.edited)
	assert.Equal(0, mt.ledger.Len())
	assert.Equal(drag.StateIdle, mt.machine.State())
}

func TestMachineCommit(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	mt := newMachineTest(t)

	require.NoError(mt.machine.PointerDown(testTask(), model.DateModeEstimated, 100, 10, drag.ButtonPrimary))
	require.NoError(mt.machine.PointerMove(120))

	// Live preview without touching the ledger.
	preview := mt.machine.Preview()
	require.NotNil(preview)
	assert.Equal("2024-01-12", preview.Start.String())
	assert.Equal("2024-01-22", preview.End.String())
	assert.Equal(0, mt.ledger.Len())

	out, err := mt.machine.PointerUp()
	require.NoError(err)
	assert.Equal(drag.OutcomeCommit, out.Kind)
	assert.Empty(mt.edited)
	assert.Nil(mt.machine.Preview())

	entry, ok := mt.ledger.Pending("t1")
	require.True(ok)
	assert.Equal("2024-01-12", entry.Task.EstimatedStart.String())
	assert.Equal("2024-01-22", entry.Task.EstimatedEnd.String())
	assert.Equal(model.DateModeEstimated, entry.Mode)
}

func TestMachineDragSameTaskTwiceReplaces(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	mt := newMachineTest(t)

	require.NoError(mt.machine.PointerDown(testTask(), model.DateModeEstimated, 100, 0, drag.ButtonPrimary))
	require.NoError(mt.machine.PointerMove(120))
	_, err := mt.machine.PointerUp()
	require.NoError(err)

	effective, _ := mt.ledger.Effective(testTask())
	require.NoError(mt.machine.PointerDown(effective, model.DateModeEstimated, 100, 0, drag.ButtonPrimary))
	require.NoError(mt.machine.PointerMove(110))
	_, err = mt.machine.PointerUp()
	require.NoError(err)

	assert.Equal(1, mt.ledger.Len())
	entry, _ := mt.ledger.Pending("t1")
	assert.Equal("2024-01-13", entry.Task.EstimatedStart.String())
	assert.Equal("2024-01-23", entry.Task.EstimatedEnd.String())
}

func TestMachineNetZeroMovement(t *testing.T) {
	require := require.New(t)
	mt := newMachineTest(t)

	require.NoError(mt.machine.PointerDown(testTask(), model.DateModeEstimated, 100, 0, drag.ButtonPrimary))
	require.NoError(mt.machine.PointerMove(130))
	require.NoError(mt.machine.PointerMove(101))
	out, err := mt.machine.PointerUp()
	require.NoError(err)

	assert.Equal(t, drag.OutcomeNone, out.Kind)
	assert.Empty(t, mt.edited)
	assert.Equal(t, 0, mt.ledger.Len())
}

func TestMachineRejectsSecondPointerDown(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	mt := newMachineTest(t)

	other := testTask()
	other.ID = "t2"

	require.NoError(mt.machine.PointerDown(testTask(), model.DateModeEstimated, 100, 0, drag.ButtonPrimary))
	err := mt.machine.PointerDown(other, model.DateModeEstimated, 50, 0, drag.ButtonPrimary)
	assert.ErrorIs(err, model.ErrDragActive)
	assert.Equal(1, mt.dispatcher.Subscribers())

	s, ok := mt.machine.Session()
	require.True(ok)
	assert.Equal("t1", s.Task.ID)
	assert.Equal(100.0, s.AnchorX)
}

func TestMachineAbortsWithoutGeometry(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	mt := newMachineTest(t)

	require.NoError(mt.machine.PointerDown(testTask(), model.DateModeEstimated, 100, 0, drag.ButtonPrimary))
	require.NoError(mt.machine.PointerMove(120))

	mt.machine.SetLayout(nil, testWidth)
	err := mt.machine.PointerMove(140)
	assert.ErrorIs(err, model.ErrNoGeometry)
	assert.Equal(drag.StateIdle, mt.machine.State())
	assert.Equal(0, mt.dispatcher.Subscribers())

	out, err := mt.machine.PointerUp()
	require.NoError(err)
	assert.Equal(drag.OutcomeNone, out.Kind)
	assert.Equal(0, mt.ledger.Len())
}

func TestMachineProposeFailure(t *testing.T) {
	m, err := drag.NewMachine(drag.MachineConfig{Proposer: failingProposer{}})
	require.NoError(t, err)
	m.SetLayout(testGeometry(t), testWidth)

	require.NoError(t, m.PointerDown(testTask(), model.DateModeEstimated, 100, 0, drag.ButtonPrimary))
	require.NoError(t, m.PointerMove(120))
	out, err := m.PointerUp()

	assert.Error(t, err)
	assert.Equal(t, drag.OutcomeNone, out.Kind)
	assert.Equal(t, drag.StateIdle, m.State())
}

func TestMachineEventSourceSubscription(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	mt := newMachineTest(t)

	assert.Equal(0, mt.dispatcher.Subscribers())

	require.NoError(mt.machine.PointerDown(testTask(), model.DateModeEstimated, 100, 0, drag.ButtonPrimary))
	assert.Equal(1, mt.dispatcher.Subscribers())
	assert.Equal(drag.StateDragging, mt.machine.State())

	mt.dispatcher.Dispatch(drag.PointerEvent{Kind: drag.EventMove, X: 110})
	mt.dispatcher.Dispatch(drag.PointerEvent{Kind: drag.EventMove, X: 130})
	mt.dispatcher.Dispatch(drag.PointerEvent{Kind: drag.EventUp, X: 130})

	assert.Equal(0, mt.dispatcher.Subscribers())
	assert.Equal(drag.StateIdle, mt.machine.State())

	entry, ok := mt.ledger.Pending("t1")
	require.True(ok)
	assert.Equal("2024-01-13", entry.Task.EstimatedStart.String())

	// Events after the release are not handled by anyone.
	mt.dispatcher.Dispatch(drag.PointerEvent{Kind: drag.EventMove, X: 300})
	entry, _ = mt.ledger.Pending("t1")
	assert.Equal("2024-01-13", entry.Task.EstimatedStart.String())
}

func TestMachinePanicInHandlerAborts(t *testing.T) {
	dispatcher := drag.NewDispatcher()
	l, err := ledger.New(ledger.Config{})
	require.NoError(t, err)

	m, err := drag.NewMachine(drag.MachineConfig{
		Proposer: l,
		Source:   dispatcher,
		OnEdit:   func(model.Task) { panic("editor crashed") },
	})
	require.NoError(t, err)
	m.SetLayout(testGeometry(t), testWidth)

	require.NoError(t, m.PointerDown(testTask(), model.DateModeEstimated, 100, 0, drag.ButtonPrimary))
	assert.NotPanics(t, func() { dispatcher.Dispatch(drag.PointerEvent{Kind: drag.EventUp, X: 100}) })

	assert.Equal(t, drag.StateIdle, m.State())
	assert.Equal(t, 0, dispatcher.Subscribers())
	assert.Equal(t, 0, l.Len())
}
