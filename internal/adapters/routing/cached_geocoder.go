package routing

import (
	"context"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/platform/logging"
	"eld-trip-service/internal/ports"
	"errors"
	"time"

	"github.com/maypok86/otter/v2"
)

// CachedGeocoder layers an in-memory cache and an optional persistent
// cache in front of an upstream geocoder. Cache failures are logged and
// never fail a lookup.
type CachedGeocoder struct {
	upstream ports.Geocoder
	store    ports.GeocodeCache
	mem      *otter.Cache[string, domain.Coordinates]
}

func NewCachedGeocoder(upstream ports.Geocoder, store ports.GeocodeCache, ttl time.Duration) (*CachedGeocoder, error) {
	if upstream == nil {
		return nil, errors.New("cached geocoder: upstream is nil")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	mem, err := otter.New(&otter.Options[string, domain.Coordinates]{
		MaximumSize:      10_000,
		ExpiryCalculator: otter.ExpiryWriting[string, domain.Coordinates](ttl),
	})
	if err != nil {
		return nil, err
	}

	return &CachedGeocoder{upstream: upstream, store: store, mem: mem}, nil
}

func (c *CachedGeocoder) Geocode(ctx context.Context, query string) (domain.Coordinates, error) {
	key := cacheKey(query)
	logger := logging.FromContext(ctx)

	if coords, ok := c.mem.GetIfPresent(key); ok {
		return coords, nil
	}

	if c.store != nil {
		hits, err := c.store.GetMany(ctx, []string{key})
		if err != nil {
			logger.Warn("geocode cache read failed", "query", key, "error", err)
		} else if coords, ok := hits[key]; ok {
			c.mem.Set(key, coords)
			return coords, nil
		}
	}

	coords, err := c.upstream.Geocode(ctx, query)
	if err != nil {
		return domain.Coordinates{}, err
	}

	c.mem.Set(key, coords)
	if c.store != nil {
		if err := c.store.PutMany(ctx, map[string]domain.Coordinates{key: coords}); err != nil {
			logger.Warn("geocode cache write failed", "query", key, "error", err)
		}
	}

	return coords, nil
}
