package domain

import (
	"errors"
	"time"
)

var (
	ErrTripNotFound     = errors.New("trip not found")
	ErrLocationNotFound = errors.New("location not found")
)

// Trip is the driver-supplied request for a planned haul.
// CurrentCycleUsedHours is the amount of the rolling 70-hour cycle
// already consumed before the trip starts.
type Trip struct {
	ID                    string
	CurrentLocation       string
	PickupLocation        string
	DropoffLocation       string
	CurrentCycleUsedHours float64
	CreatedAt             time.Time
}

// A rest event extracted from the daily logs, located by mile marker.
type RestStop struct {
	Day        int        `json:"day"`
	Type       DutyStatus `json:"type"`
	Start      float64    `json:"start"`
	Duration   float64    `json:"duration"`
	MileMarker float64    `json:"mile_marker"`
}

// DailyLogSheet is a DayLog enriched for presentation: calendar date,
// from/to labels and per-status totals recomputed from the segments.
type DailyLogSheet struct {
	DayLog
	Date   string                 `json:"date"`
	From   string                 `json:"from"`
	To     string                 `json:"to"`
	Totals map[DutyStatus]float64 `json:"totals"`
}

// TripPlan is the full planning output stored alongside a trip.
type TripPlan struct {
	TripID            string          `json:"trip_id"`
	DistanceMiles     float64         `json:"total_distance_miles"`
	DurationHours     float64         `json:"total_duration_hours"`
	Path              [][]float64     `json:"path"`
	EncodedPath       string          `json:"encoded_path"`
	Waypoints         [][]float64     `json:"waypoints"`
	RouteFallback     bool            `json:"route_fallback"`
	FuelStops         []FuelStop      `json:"fuel_stops"`
	RestStops         []RestStop      `json:"rest_stops"`
	Logs              []DailyLogSheet `json:"hos_logs"`
	TotalHOSHours     float64         `json:"total_hos_hours"`
	TotalMiles        float64         `json:"total_miles"`
	ScheduleTruncated bool            `json:"schedule_truncated"`
}
