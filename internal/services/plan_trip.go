package services

import (
	"context"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/hos"
	"eld-trip-service/internal/platform/logging"
	"eld-trip-service/internal/platform/obs"
	"eld-trip-service/internal/ports"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidTrip is wrapped by every request validation failure.
var ErrInvalidTrip = errors.New("invalid trip")

type PlanTripRequest struct {
	CurrentLocation       string
	PickupLocation        string
	DropoffLocation       string
	CurrentCycleUsedHours float64

	// Insert the single fuel stop when the route proposes any marker.
	EnableFuelStop bool

	// Optional; a random UUID and the current UTC time are used when zero.
	ID        string
	CreatedAt time.Time
}

// Validate trims the locations in place and checks the cycle hours
// against the engine's cycle cap.
func (r *PlanTripRequest) Validate(maxCycleHours float64) error {
	r.CurrentLocation = strings.TrimSpace(r.CurrentLocation)
	r.PickupLocation = strings.TrimSpace(r.PickupLocation)
	r.DropoffLocation = strings.TrimSpace(r.DropoffLocation)

	switch {
	case r.CurrentLocation == "":
		return fmt.Errorf("%w: current_location is required", ErrInvalidTrip)
	case r.PickupLocation == "":
		return fmt.Errorf("%w: pickup_location is required", ErrInvalidTrip)
	case r.DropoffLocation == "":
		return fmt.Errorf("%w: dropoff_location is required", ErrInvalidTrip)
	case r.CurrentCycleUsedHours < 0 || r.CurrentCycleUsedHours > maxCycleHours:
		return fmt.Errorf("%w: current_cycle_used_hours must be between 0 and %g", ErrInvalidTrip, maxCycleHours)
	}

	return nil
}

// PlanTrip stores the trip, routes it, simulates the HOS schedule and
// stores the enriched plan. The trip record is kept even when routing
// fails, so a failed plan can be retried later by id.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	repo ports.TripRepository,
	router ports.RouteProvider,
	engine *hos.Engine,
) (_ *domain.Trip, _ *domain.TripPlan, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	rules := engine.Rules()
	if err := req.Validate(rules.MaxCycleHours); err != nil {
		return nil, nil, err
	}

	trip := &domain.Trip{
		ID:                    req.ID,
		CurrentLocation:       req.CurrentLocation,
		PickupLocation:        req.PickupLocation,
		DropoffLocation:       req.DropoffLocation,
		CurrentCycleUsedHours: req.CurrentCycleUsedHours,
		CreatedAt:             req.CreatedAt,
	}
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = time.Now().UTC()
	}

	if err := repo.CreateTrip(ctx, trip); err != nil {
		return nil, nil, fmt.Errorf("plan trip: %w", err)
	}

	plan, err := buildPlan(ctx, trip, req.EnableFuelStop, router, engine)
	if err != nil {
		return trip, nil, fmt.Errorf("plan trip id=%s: %w", trip.ID, err)
	}

	if err := repo.SavePlan(ctx, plan); err != nil {
		return trip, nil, fmt.Errorf("plan trip id=%s: %w", trip.ID, err)
	}

	return trip, plan, nil
}

func buildPlan(
	ctx context.Context,
	trip *domain.Trip,
	enableFuelStop bool,
	router ports.RouteProvider,
	engine *hos.Engine,
) (*domain.TripPlan, error) {
	route, err := router.CalculateRoute(ctx, trip.CurrentLocation, trip.PickupLocation, trip.DropoffLocation)
	if err != nil {
		return nil, fmt.Errorf("calculate route: %w", err)
	}

	logger := logging.FromContext(ctx)
	if route.Fallback {
		logger.Warn("routing service unavailable, using straight-line estimate",
			slog.String("trip_id", trip.ID),
			slog.Float64("distance_miles", route.DistanceMiles),
		)
	}

	markers := FuelStopMarkers(route.DistanceMiles)
	result := engine.SimulateDetailed(hos.Input{
		TotalTripHours:        route.DurationHours,
		TotalDistanceMiles:    route.DistanceMiles,
		CurrentCycleUsedHours: trip.CurrentCycleUsedHours,
		FuelStops:             enableFuelStop && len(markers) > 0,
	})
	if result.Truncated {
		logger.Warn("schedule reached the day limit before the trip completed",
			slog.String("trip_id", trip.ID),
			slog.Int("days", len(result.Days)),
			slog.Float64("remaining_trip_hours", result.RemainingTripHours),
		)
	}

	logs, rests := EnrichLogs(trip, result.Days, result.AverageSpeedMPH)

	return &domain.TripPlan{
		TripID:            trip.ID,
		DistanceMiles:     route.DistanceMiles,
		DurationHours:     route.DurationHours,
		Path:              nonNilPairs(route.Path),
		EncodedPath:       route.EncodedPolyline(),
		Waypoints:         nonNilPairs(route.Waypoints),
		RouteFallback:     route.Fallback,
		FuelStops:         markers,
		RestStops:         rests,
		Logs:              logs,
		TotalHOSHours:     hos.TotalRegulatedHours(result.Days),
		TotalMiles:        hos.TotalMiles(result.Days),
		ScheduleTruncated: result.Truncated,
	}, nil
}

// GetTripPlan loads a trip together with its stored plan.
func GetTripPlan(ctx context.Context, id string, repo ports.TripRepository) (*domain.Trip, *domain.TripPlan, error) {
	trip, err := repo.GetTrip(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get trip plan: %w", err)
	}

	plan, err := repo.GetPlan(ctx, id)
	if err != nil {
		return trip, nil, fmt.Errorf("get trip plan: %w", err)
	}

	return trip, plan, nil
}

// ListTrips returns up to limit stored trips, newest first.
func ListTrips(ctx context.Context, repo ports.TripRepository, limit int) ([]*domain.Trip, error) {
	trips, err := repo.ListTrips(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return trips, nil
}

// SimulateSchedule runs the engine alone, without routing or persistence.
func SimulateSchedule(engine *hos.Engine, in hos.Input) hos.Result {
	return engine.SimulateDetailed(in)
}

func nonNilPairs(p [][]float64) [][]float64 {
	if p == nil {
		return [][]float64{}
	}
	return p
}
