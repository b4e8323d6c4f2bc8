package ports

import (
	"context"
	"eld-trip-service/internal/domain"
)

// Contract for turning free-text locations into coordinates.
type Geocoder interface {
	// Return domain.ErrLocationNotFound (wrapped) when nothing matches.
	Geocode(ctx context.Context, query string) (domain.Coordinates, error)
}
