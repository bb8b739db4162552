package workdays

import (
	"context"
	"fmt"

	"github.com/slok/planboard/internal/log"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/storage"
	"github.com/slok/planboard/internal/workday"
)

// ServiceConfig is the configuration for the workdays service.
type ServiceConfig struct {
	Holidays storage.HolidayProvider
	Logger   log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Holidays == nil {
		return fmt.Errorf("holiday provider is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Workdays"})
	return nil
}

// Service counts business days between dates.
type Service struct {
	holidays storage.HolidayProvider
	logger   log.Logger
}

// NewService creates a new workdays service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		holidays: cfg.Holidays,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the workdays request parameters.
type Request struct {
	From model.Date
	To   model.Date
	// Region of the holidays, empty only discounts weekends.
	Region string
}

// Run counts the business days of the range, both ends included. An inverted range
// counts zero days.
func (s *Service) Run(ctx context.Context, req Request) (*model.WorkdayCount, error) {
	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("from and to dates are required: %w", model.ErrNotValid)
	}

	resp := &model.WorkdayCount{From: req.From, To: req.To, Region: req.Region}
	if req.To.Before(req.From) {
		return resp, nil
	}

	var hs []model.Holiday
	if req.Region != "" {
		var err error
		hs, err = s.holidays.ListHolidays(ctx, req.Region, workday.YearsSpanned(req.From, req.To))
		if err != nil {
			return nil, fmt.Errorf("could not get holidays: %w", err)
		}
	}
	set := workday.NewHolidaySet(hs...)

	resp.BusinessDays = workday.Count(req.From, req.To, set)
	resp.CalendarDays = req.From.DaysUntil(req.To) + 1
	for d := req.From; !d.After(req.To); d = d.AddDays(1) {
		if d.IsWeekend() {
			resp.WeekendDays++
		}
	}

	seen := map[string]bool{}
	for _, h := range hs {
		if h.Date.Before(req.From) || h.Date.After(req.To) || h.Date.IsWeekend() || seen[h.Date.String()] {
			continue
		}
		seen[h.Date.String()] = true
		resp.Holidays = append(resp.Holidays, h)
	}

	s.logger.Debugf("%d business days between %s and %s", resp.BusinessDays, req.From, req.To)

	return resp, nil
}
