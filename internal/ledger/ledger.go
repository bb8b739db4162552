// Package ledger buffers proposed task reschedules until they are saved or discarded,
// so the task store is written once per changed task instead of once per pointer move.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/slok/planboard/internal/log"
	"github.com/slok/planboard/internal/model"
)

// Writer persists task date updates.
type Writer interface {
	UpdateTaskDates(ctx context.Context, u model.TaskDateUpdate) error
}

// Entry is a proposed task snapshot.
type Entry struct {
	Task model.Task
	Mode model.DateMode
}

// Result is the outcome of saving one entry.
type Result struct {
	TaskID string
	Entry  Entry
	Err    error
}

// Results is the per task outcome of a save.
type Results []Result

// Failed returns the results that could not be saved.
func (r Results) Failed() Results {
	var failed Results
	for _, res := range r {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Config is the configuration for the ledger.
type Config struct {
	// SaveConcurrency is the maximum number of updates in flight while saving.
	SaveConcurrency int
	Logger          log.Logger
}

func (c *Config) defaults() error {
	if c.SaveConcurrency == 0 {
		c.SaveConcurrency = 4
	}
	if c.SaveConcurrency < 0 {
		return fmt.Errorf("save concurrency can't be negative")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "ledger.Ledger"})
	return nil
}

// Ledger holds at most one full task snapshot per task id.
type Ledger struct {
	entries     map[string]Entry
	order       []string
	concurrency int
	mu          sync.Mutex
	logger      log.Logger
}

// New returns an empty ledger.
func New(cfg Config) (*Ledger, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Ledger{
		entries:     map[string]Entry{},
		concurrency: cfg.SaveConcurrency,
		logger:      cfg.Logger,
	}, nil
}

// Propose stores the proposed task, replacing any previous proposal for the same id.
// The snapshot is stored as is, fields are never merged. A task pending in one date
// mode can't be proposed in the other until it is saved or discarded, the save only
// writes the dates of the entry mode.
func (l *Ledger) Propose(t model.Task, mode model.DateMode) error {
	if t.ID == "" {
		return fmt.Errorf("task id is required: %w", model.ErrNotValid)
	}
	if !mode.Valid() {
		return fmt.Errorf("unknown date mode %q: %w", mode, model.ErrNotValid)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	prev, ok := l.entries[t.ID]
	if !ok {
		l.order = append(l.order, t.ID)
	}
	if ok && prev.Mode != mode {
		return fmt.Errorf("task %s has pending %s dates, can't propose %s dates: %w", t.ID, prev.Mode, mode, model.ErrNotValid)
	}
	l.entries[t.ID] = Entry{Task: t, Mode: mode}
	l.logger.Debugf("Proposed change for task %s", t.ID)

	return nil
}

// Effective returns the pending snapshot of the task if any, otherwise the committed task.
// Renderers must always go through here so previews and stored state never diverge.
func (l *Ledger) Effective(committed model.Task) (model.Task, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[committed.ID]; ok {
		return e.Task, true
	}
	return committed, false
}

// Pending returns the pending entry of a task id.
func (l *Ledger) Pending(taskID string) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[taskID]
	return e, ok
}

// Len returns the number of pending entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

// Entries returns the pending entries in proposal order.
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.entriesLocked()
}

func (l *Ledger) entriesLocked() []Entry {
	entries := make([]Entry, 0, len(l.order))
	for _, id := range l.order {
		entries = append(entries, l.entries[id])
	}
	return entries
}

// DiscardAll drops every pending entry without writing anything.
func (l *Ledger) DiscardAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.Debugf("Discarding %d pending changes", len(l.entries))
	l.reset()
}

func (l *Ledger) reset() {
	l.entries = map[string]Entry{}
	l.order = nil
}

// SaveAll sends one update per pending entry and empties the ledger.
//
// Updates are issued independently: there is no transaction and no ordering
// between tasks, a failure on one task doesn't stop the others. The ledger is
// empty afterwards whatever the outcome, the returned results (in proposal
// order) tell the caller which tasks need to be proposed again.
func (l *Ledger) SaveAll(ctx context.Context, w Writer) Results {
	l.mu.Lock()
	entries := l.entriesLocked()
	l.reset()
	l.mu.Unlock()

	results := make(Results, len(entries))

	var g errgroup.Group
	g.SetLimit(l.concurrency)
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			err := w.UpdateTaskDates(ctx, model.DateUpdateFor(e.Task, e.Mode))
			if err != nil {
				l.logger.Warningf("Could not save task %s: %s", e.Task.ID, err)
				err = fmt.Errorf("could not update task %s: %w", e.Task.ID, err)
			}
			results[i] = Result{TaskID: e.Task.ID, Entry: e, Err: err}

			// Errors are reported per task, never abort the rest.
			return nil
		})
	}
	_ = g.Wait()

	l.logger.Debugf("Saved %d pending changes (%d failed)", len(results), len(results.Failed()))
	return results
}
