package ports

import (
	"context"
	"eld-trip-service/internal/domain"
)

// Port: a boundary for storing trips and their computed plans.
type TripRepository interface {
	CreateTrip(ctx context.Context, trip *domain.Trip) error
	// Return domain.ErrTripNotFound when the id is unknown.
	GetTrip(ctx context.Context, id string) (*domain.Trip, error)
	// Most recent first.
	ListTrips(ctx context.Context, limit int) ([]*domain.Trip, error)
	SavePlan(ctx context.Context, plan *domain.TripPlan) error
	GetPlan(ctx context.Context, tripID string) (*domain.TripPlan, error)
	Ping(ctx context.Context) error
}
