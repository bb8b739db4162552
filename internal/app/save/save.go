package save

import (
	"context"
	"fmt"

	"github.com/slok/planboard/internal/ledger"
	"github.com/slok/planboard/internal/log"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/storage"
)

// Ledger is the pending change ledger to save.
type Ledger interface {
	Len() int
	Propose(t model.Task, mode model.DateMode) error
	SaveAll(ctx context.Context, w ledger.Writer) ledger.Results
}

// ServiceConfig is the configuration for the save service.
type ServiceConfig struct {
	Repository storage.TaskRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Save"})
	return nil
}

// Service writes the pending changes of a ledger to the task store.
type Service struct {
	repo   storage.TaskRepository
	logger log.Logger
}

// NewService creates a new save service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the save request parameters.
type Request struct {
	Ledger Ledger
	// RetainFailed proposes again the changes that could not be saved so they can be retried.
	RetainFailed bool
}

// Response is the result of a save.
type Response struct {
	Results ledger.Results
	Saved   int
	Failed  int
}

// Run saves every pending change, one update per task. A partial failure is not an
// error, it's reported per task in the response.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	if req.Ledger == nil {
		return nil, fmt.Errorf("ledger is required: %w", model.ErrNotValid)
	}

	if req.Ledger.Len() == 0 {
		s.logger.Debugf("Nothing to save")
		return &Response{}, nil
	}

	results := req.Ledger.SaveAll(ctx, s.repo)
	failed := results.Failed()

	for _, f := range failed {
		if !req.RetainFailed {
			break
		}
		if err := req.Ledger.Propose(f.Entry.Task, f.Entry.Mode); err != nil {
			return nil, fmt.Errorf("could not retain failed change of task %s: %w", f.TaskID, err)
		}
	}

	s.logger.Infof("Saved %d of %d changes", len(results)-len(failed), len(results))

	return &Response{
		Results: results,
		Saved:   len(results) - len(failed),
		Failed:  len(failed),
	}, nil
}
