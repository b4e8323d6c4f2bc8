package repositories

import (
	"context"
	"database/sql"
	"eld-trip-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Fixed-width UTC timestamps keep text ordering chronological.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite-backed implementation of the TripRepository port.
type SqliteTripRepository struct{ DB *sql.DB }

func NewSqliteTripRepository(db *sql.DB) *SqliteTripRepository {
	return &SqliteTripRepository{DB: db}
}

func (s *SqliteTripRepository) Ping(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}
	return s.DB.PingContext(ctx)
}

func (s *SqliteTripRepository) CreateTrip(ctx context.Context, t *domain.Trip) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}
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
	VALUES (?, ?, ?, ?, ?, ?);
	`
	_, err := s.DB.ExecContext(ctx, query,
		t.ID,
		t.CurrentLocation,
		t.PickupLocation,
		t.DropoffLocation,
		t.CurrentCycleUsedHours,
		t.CreatedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("create trip: insert id=%s: %w", t.ID, err)
	}

	return nil
}

func (s *SqliteTripRepository) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
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
	WHERE id = ?;
	`
	t, err := scanTrip(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get trip id=%s: %w", id, domain.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip id=%s: %w", id, err)
	}

	return t, nil
}

// Return the most recent trips first.
func (s *SqliteTripRepository) ListTrips(ctx context.Context, limit int) ([]*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}
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
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, limit)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}
		trips = append(trips, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}

func (s *SqliteTripRepository) SavePlan(ctx context.Context, plan *domain.TripPlan) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}
	if plan == nil || plan.TripID == "" {
		return errors.New("save plan: trip id must be non-empty")
	}

	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("save plan: encode trip_id=%s: %w", plan.TripID, err)
	}

	query := `
	INSERT OR REPLACE INTO trip_plans (
		trip_id,
		plan,
		updated_at
	)
	VALUES (?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query, plan.TripID, string(payload), time.Now().UTC().Format(sqliteTimeLayout)); err != nil {
		return fmt.Errorf("save plan: insert trip_id=%s: %w", plan.TripID, err)
	}

	return nil
}

func (s *SqliteTripRepository) GetPlan(ctx context.Context, tripID string) (*domain.TripPlan, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}

	var payload string
	err := s.DB.QueryRowContext(ctx, `SELECT plan FROM trip_plans WHERE trip_id = ?;`, tripID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan trip_id=%s: %w", tripID, domain.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan trip_id=%s: %w", tripID, err)
	}

	var plan domain.TripPlan
	if err := json.Unmarshal([]byte(payload), &plan); err != nil {
		return nil, fmt.Errorf("get plan trip_id=%s: decode: %w", tripID, err)
	}

	return &plan, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var (
		t         domain.Trip
		createdAt string
	)
	if err := row.Scan(
		&t.ID,
		&t.CurrentLocation,
		&t.PickupLocation,
		&t.DropoffLocation,
		&t.CurrentCycleUsedHours,
		&createdAt,
	); err != nil {
		return nil, err
	}

	ts, err := time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	t.CreatedAt = ts

	return &t, nil
}
