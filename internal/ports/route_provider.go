package ports

import (
	"context"
	"eld-trip-service/internal/domain"
)

// Contract for resolving a three-leg trip (current -> pickup -> dropoff)
// into distance, duration and a drawable path.
type RouteProvider interface {
	// Implementations degrade to an estimate rather than failing when only
	// the routing service is unavailable; unknown locations are an error.
	CalculateRoute(ctx context.Context, start, pickup, dropoff string) (domain.RouteInfo, error)
}
