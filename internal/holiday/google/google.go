package google

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/slok/planboard/internal/log"
	"github.com/slok/planboard/internal/model"
)

const calendarIDFmt = "%s.%s#holiday@group.v.calendar.google.com"

// ProviderConfig is the configuration of the Google public holiday calendar provider.
type ProviderConfig struct {
	// APIKey is the Google API key, public holiday calendars don't need OAuth.
	APIKey string
	// Language of the calendar, used to build the calendar id (e.g. `en.usa#holiday@...`).
	Language string
	// IncludeObservances keeps the observance events (not days off) of the calendar.
	IncludeObservances bool
	// ClientOptions are extra client options, mainly for tests.
	ClientOptions []option.ClientOption
	Logger        log.Logger
}

func (c *ProviderConfig) defaults() error {
	if c.APIKey == "" && len(c.ClientOptions) == 0 {
		return fmt.Errorf("api key is required")
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "holiday.Google"})
	return nil
}

// Provider lists the holidays of a region from the Google public holiday calendars.
type Provider struct {
	srv                *calendar.Service
	language           string
	includeObservances bool
	logger             log.Logger
}

// NewProvider returns a new Google holiday provider.
func NewProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := cfg.ClientOptions
	if cfg.APIKey != "" {
		opts = append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	}

	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create calendar service: %w", err)
	}

	return &Provider{
		srv:                srv,
		language:           cfg.Language,
		includeObservances: cfg.IncludeObservances,
		logger:             cfg.Logger,
	}, nil
}

// CalendarID returns the calendar id of a region. Regions that already are
// a calendar id are returned as they are.
func (p *Provider) CalendarID(region string) string {
	if strings.Contains(region, "@") {
		return region
	}
	return fmt.Sprintf(calendarIDFmt, p.language, strings.ToLower(region))
}

// ListHolidays returns the holidays of the region for the years sorted by date.
// Multi-day holiday events are expanded to one holiday per day.
func (p *Provider) ListHolidays(ctx context.Context, region string, years []int) ([]model.Holiday, error) {
	if region == "" || len(years) == 0 {
		return nil, nil
	}

	calID := p.CalendarID(region)
	var holidays []model.Holiday
	for _, year := range years {
		timeMin := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		timeMax := timeMin.AddDate(1, 0, 0)

		call := p.srv.Events.List(calID).
			SingleEvents(true).
			OrderBy("startTime").
			TimeMin(timeMin.Format(time.RFC3339)).
			TimeMax(timeMax.Format(time.RFC3339))

		err := call.Pages(ctx, func(events *calendar.Events) error {
			for _, ev := range events.Items {
				hs, err := p.eventHolidays(ev, region, year)
				if err != nil {
					return err
				}
				holidays = append(holidays, hs...)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("could not list %s %d holidays from calendar %s: %w", region, year, calID, err)
		}
	}

	p.logger.Debugf("Retrieved %d holidays of %s for %v", len(holidays), region, years)

	return holidays, nil
}

func (p *Provider) eventHolidays(ev *calendar.Event, region string, year int) ([]model.Holiday, error) {
	if ev.Start == nil || ev.Start.Date == "" {
		// Timed events are not days off.
		return nil, nil
	}
	if !p.includeObservances && strings.HasPrefix(ev.Description, "Observance") {
		return nil, nil
	}

	start, err := model.ParseDate(ev.Start.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid event %q start: %w", ev.Id, err)
	}

	// All day event ends are exclusive.
	end := start.AddDays(1)
	if ev.End != nil && ev.End.Date != "" {
		end, err = model.ParseDate(ev.End.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid event %q end: %w", ev.Id, err)
		}
	}

	var hs []model.Holiday
	for d := start; d.Before(end); d = d.AddDays(1) {
		if d.Year() != year {
			continue
		}
		hs = append(hs, model.Holiday{Date: d, Name: ev.Summary, Region: region})
	}

	return hs, nil
}
