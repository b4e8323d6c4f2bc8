package repositories

import (
	"context"
	"eld-trip-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres-backed implementation of the TripRepository port using pgx natively.
type PostgresTripRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresTripRepository(pool *pgxpool.Pool) *PostgresTripRepository {
	return &PostgresTripRepository{pool: pool}
}

func (r *PostgresTripRepository) Ping(ctx context.Context) error {
	if r.pool == nil {
		return errors.New("postgres trip repository: pool is nil")
	}
	return r.pool.Ping(ctx)
}

func (r *PostgresTripRepository) CreateTrip(ctx context.Context, t *domain.Trip) error {
	if t == nil || t.ID == "" {
		return errors.New("create trip: trip id must be non-empty")
	}

	query := `
		INSERT INTO trips (
			id,
			current_location,
			pickup_location,
			dropoff_location,
			current_cycle_used_hours,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.CurrentLocation,
		t.PickupLocation,
		t.DropoffLocation,
		t.CurrentCycleUsedHours,
		t.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("create trip: insert id=%s: %w", t.ID, err)
	}

	return nil
}

func (r *PostgresTripRepository) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	query := `
		SELECT
			id,
			current_location,
			pickup_location,
			dropoff_location,
			current_cycle_used_hours,
			created_at
		FROM trips
		WHERE id = $1
	`

	var t domain.Trip
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.CurrentLocation,
		&t.PickupLocation,
		&t.DropoffLocation,
		&t.CurrentCycleUsedHours,
		&t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get trip id=%s: %w", id, domain.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip id=%s: %w", id, err)
	}

	return &t, nil
}

func (r *PostgresTripRepository) ListTrips(ctx context.Context, limit int) ([]*domain.Trip, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT
			id,
			current_location,
			pickup_location,
			dropoff_location,
			current_cycle_used_hours,
			created_at
		FROM trips
		ORDER BY created_at DESC, id
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, limit)
	for rows.Next() {
		var t domain.Trip
		if err := rows.Scan(
			&t.ID,
			&t.CurrentLocation,
			&t.PickupLocation,
			&t.DropoffLocation,
			&t.CurrentCycleUsedHours,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}
		trips = append(trips, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}

func (r *PostgresTripRepository) SavePlan(ctx context.Context, plan *domain.TripPlan) error {
	if plan == nil || plan.TripID == "" {
		return errors.New("save plan: trip id must be non-empty")
	}

	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("save plan: encode trip_id=%s: %w", plan.TripID, err)
	}

	query := `
		INSERT INTO trip_plans (trip_id, plan, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (trip_id) DO UPDATE
		SET plan = EXCLUDED.plan,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := r.pool.Exec(ctx, query, plan.TripID, payload); err != nil {
		return fmt.Errorf("save plan: insert trip_id=%s: %w", plan.TripID, err)
	}

	return nil
}

func (r *PostgresTripRepository) GetPlan(ctx context.Context, tripID string) (*domain.TripPlan, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx, `SELECT plan FROM trip_plans WHERE trip_id = $1`, tripID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get plan trip_id=%s: %w", tripID, domain.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan trip_id=%s: %w", tripID, err)
	}

	var plan domain.TripPlan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return nil, fmt.Errorf("get plan trip_id=%s: decode: %w", tripID, err)
	}

	return &plan, nil
}
