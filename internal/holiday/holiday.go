package holiday

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/slok/planboard/internal/log"
	"github.com/slok/planboard/internal/model"
	"github.com/slok/planboard/internal/storage"
)

// CachedProviderConfig is the configuration of the cached holiday provider.
type CachedProviderConfig struct {
	// Remote is the source of the holidays of the years not cached yet.
	// When missing only the cached holidays are returned.
	Remote storage.HolidayProvider
	Cache  storage.HolidayRepository
	Logger log.Logger
}

func (c *CachedProviderConfig) defaults() error {
	if c.Cache == nil {
		return fmt.Errorf("cache repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "holiday.CachedProvider"})
	return nil
}

// CachedProvider stores the holidays fetched from a remote provider per region and year
// so every year is fetched only once.
type CachedProvider struct {
	remote storage.HolidayProvider
	cache  storage.HolidayRepository
	// fetches dedups concurrent remote fetches of the same region years.
	fetches *singleflight.Group
	logger  log.Logger
}

// NewCachedProvider returns a new cached holiday provider.
func NewCachedProvider(cfg CachedProviderConfig) (*CachedProvider, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &CachedProvider{
		remote:  cfg.Remote,
		cache:   cfg.Cache,
		fetches: &singleflight.Group{},
		logger:  cfg.Logger,
	}, nil
}

// ListHolidays returns the holidays of the region for the years.
func (c *CachedProvider) ListHolidays(ctx context.Context, region string, years []int) ([]model.Holiday, error) {
	if region == "" {
		return nil, nil
	}

	if c.remote != nil {
		var missing []int
		for _, y := range years {
			ok, err := c.cache.HasHolidayYear(ctx, region, y)
			if err != nil {
				return nil, fmt.Errorf("could not check cached holidays: %w", err)
			}
			if !ok {
				missing = append(missing, y)
			}
		}

		if len(missing) > 0 {
			key := fmt.Sprintf("%s/%v", region, missing)
			_, err, _ := c.fetches.Do(key, func() (any, error) {
				return nil, c.fetch(ctx, region, missing)
			})
			if err != nil {
				return nil, err
			}
		}
	}

	hs, err := c.cache.ListHolidays(ctx, region, years)
	if err != nil {
		return nil, fmt.Errorf("could not list cached holidays: %w", err)
	}

	return hs, nil
}

func (c *CachedProvider) fetch(ctx context.Context, region string, years []int) error {
	hs, err := c.remote.ListHolidays(ctx, region, years)
	if err != nil {
		return fmt.Errorf("could not fetch holidays: %w", err)
	}

	byYear := make(map[int][]model.Holiday, len(years))
	for _, h := range hs {
		byYear[h.Date.Year()] = append(byYear[h.Date.Year()], h)
	}

	// Years without holidays are stored too, so they are not fetched again.
	for _, y := range years {
		if err := c.cache.SaveHolidays(ctx, region, y, byYear[y]); err != nil {
			return fmt.Errorf("could not cache %s %d holidays: %w", region, y, err)
		}
	}

	c.logger.Infof("Fetched and cached %d holidays of %s for %v", len(hs), region, years)

	return nil
}
