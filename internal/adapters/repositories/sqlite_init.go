package repositories

import (
	"context"
	"database/sql"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	return execSchema(db, []string{
		`
	CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		current_location TEXT NOT NULL,
		pickup_location TEXT NOT NULL,
		dropoff_location TEXT NOT NULL,
		current_cycle_used_hours REAL NOT NULL,
		created_at TEXT NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS trip_plans (
		trip_id TEXT PRIMARY KEY REFERENCES trips(id) ON DELETE CASCADE,
		plan TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		query TEXT PRIMARY KEY,
		lat REAL NOT NULL,
		lon REAL NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS route_cache (
		route_key TEXT PRIMARY KEY,
		distance_miles REAL NOT NULL,
		duration_hours REAL NOT NULL,
		encoded_path TEXT NOT NULL,
		waypoints TEXT NOT NULL
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_trips_created_at
	ON trips(created_at);
	`,
	})
}

// Initialize the Postgres database schema.
func InitPostgresSchema(db *sql.DB) error {
	return execSchema(db, []string{
		`
	CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		current_location TEXT NOT NULL,
		pickup_location TEXT NOT NULL,
		dropoff_location TEXT NOT NULL,
		current_cycle_used_hours DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS trip_plans (
		trip_id TEXT PRIMARY KEY REFERENCES trips(id) ON DELETE CASCADE,
		plan JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		query TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS route_cache (
		route_key TEXT PRIMARY KEY,
		distance_miles DOUBLE PRECISION NOT NULL,
		duration_hours DOUBLE PRECISION NOT NULL,
		encoded_path TEXT NOT NULL,
		waypoints TEXT NOT NULL
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_trips_created_at
	ON trips(created_at DESC);
	`,
	})
}

func execSchema(db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type TripSeed struct {
	ID                    string  `json:"id"`
	CurrentLocation       string  `json:"current_location"`
	PickupLocation        string  `json:"pickup_location"`
	DropoffLocation       string  `json:"dropoff_location"`
	CurrentCycleUsedHours float64 `json:"current_cycle_used_hours"`
}

// Populate the repository with demo trips from a JSON file.
// Seeds without an id get a fresh UUID; existing ids are skipped.
func SeedFromJSON(ctx context.Context, repo ports.TripRepository, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed trips: read %q: %w", jsonPath, err)
	}

	var data []TripSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed trips: parse json: %w", err)
	}

	trips := make([]*domain.Trip, 0, len(data))
	for i, item := range data {
		t := &domain.Trip{
			ID:                    strings.TrimSpace(item.ID),
			CurrentLocation:       strings.TrimSpace(item.CurrentLocation),
			PickupLocation:        strings.TrimSpace(item.PickupLocation),
			DropoffLocation:       strings.TrimSpace(item.DropoffLocation),
			CurrentCycleUsedHours: item.CurrentCycleUsedHours,
			CreatedAt:             time.Now().UTC(),
		}
		if t.CurrentLocation == "" || t.PickupLocation == "" || t.DropoffLocation == "" {
			return 0, fmt.Errorf("seed trips: item at index %d: locations cannot be empty", i+1)
		}
		if t.CurrentCycleUsedHours < 0 {
			return 0, fmt.Errorf("seed trips: item at index %d: negative cycle hours", i+1)
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		trips = append(trips, t)
	}

	created := 0
	for _, t := range trips {
		if _, err := repo.GetTrip(ctx, t.ID); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrTripNotFound) {
			return created, fmt.Errorf("seed trips: lookup id=%s: %w", t.ID, err)
		}

		if err := repo.CreateTrip(ctx, t); err != nil {
			return created, fmt.Errorf("seed trips: insert id=%s: %w", t.ID, err)
		}
		created++
	}

	return created, nil
}
