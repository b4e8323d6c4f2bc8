package ports

import (
	"context"
	"eld-trip-service/internal/domain"
)

// Persistent query -> coordinates cache.
type GeocodeCache interface {
	GetMany(ctx context.Context, queries []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

// Persistent cache of resolved routes keyed by the normalized trip legs.
type RouteCache interface {
	Get(ctx context.Context, key string) (domain.RouteInfo, bool, error)
	Put(ctx context.Context, key string, route domain.RouteInfo) error
}
