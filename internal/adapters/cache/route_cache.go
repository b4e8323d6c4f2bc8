package cache

import (
	"context"
	"database/sql"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Dialect selects placeholder and upsert syntax for the route cache.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// SQLRouteCache stores resolved routes keyed by normalized trip legs.
// Paths are stored as encoded polylines, so cached coordinates carry
// five decimal places.
type SQLRouteCache struct {
	DB      *sql.DB
	dialect Dialect
}

func NewSqliteRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db, dialect: DialectSQLite}
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db, dialect: DialectPostgres}
}

func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ domain.RouteInfo, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return domain.RouteInfo{}, false, errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return domain.RouteInfo{}, false, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT distance_miles, duration_hours, encoded_path, waypoints
	FROM route_cache
	WHERE route_key = ?;
	`
	if s.dialect == DialectPostgres {
		q = strings.Replace(q, "?", "$1", 1)
	}

	var (
		route     domain.RouteInfo
		encoded   string
		waypoints string
	)
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&route.DistanceMiles, &route.DurationHours, &encoded, &waypoints)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RouteInfo{}, false, nil
	}
	if err != nil {
		return domain.RouteInfo{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	route.Path, err = domain.DecodePath(encoded)
	if err != nil {
		return domain.RouteInfo{}, false, fmt.Errorf("get route cache: decode path: %w", err)
	}
	if err := json.Unmarshal([]byte(waypoints), &route.Waypoints); err != nil {
		return domain.RouteInfo{}, false, fmt.Errorf("get route cache: decode waypoints: %w", err)
	}

	return route, true, nil
}

// Put stores a routed (non-fallback) result. Fallback estimates are skipped
// so the next request tries the routing service again.
func (s *SQLRouteCache) Put(ctx context.Context, key string, route domain.RouteInfo) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert route cache: key must not be empty")
	}
	if route.Fallback {
		return nil
	}

	waypoints, err := json.Marshal(route.Waypoints)
	if err != nil {
		return fmt.Errorf("insert route cache: encode waypoints: %w", err)
	}

	q := `
	INSERT OR REPLACE INTO route_cache (route_key, distance_miles, duration_hours, encoded_path, waypoints)
	VALUES (?, ?, ?, ?, ?);
	`
	if s.dialect == DialectPostgres {
		q = `
	INSERT INTO route_cache (route_key, distance_miles, duration_hours, encoded_path, waypoints)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (route_key) DO UPDATE
	SET distance_miles = EXCLUDED.distance_miles,
		duration_hours = EXCLUDED.duration_hours,
		encoded_path = EXCLUDED.encoded_path,
		waypoints = EXCLUDED.waypoints;
	`
	}

	if _, err := s.DB.ExecContext(ctx, q, key, route.DistanceMiles, route.DurationHours, route.EncodedPolyline(), string(waypoints)); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
