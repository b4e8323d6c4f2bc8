package dto

import (
	"eld-trip-service/internal/domain"
	"time"
)

// CreateTripRequest mirrors the trip form. Cycle hours are a pointer so a
// missing value can be told apart from zero.
type CreateTripRequest struct {
	CurrentLocation       string   `json:"current_location"`
	PickupLocation        string   `json:"pickup_location"`
	DropoffLocation       string   `json:"dropoff_location"`
	CurrentCycleUsedHours *float64 `json:"current_cycle_used_hours"`
}

type TripResponse struct {
	ID                    string    `json:"id"`
	CurrentLocation       string    `json:"current_location"`
	PickupLocation        string    `json:"pickup_location"`
	DropoffLocation       string    `json:"dropoff_location"`
	CurrentCycleUsedHours float64   `json:"current_cycle_used_hours"`
	CreatedAt             time.Time `json:"created_at"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}

type RouteInfoResponse struct {
	TotalDistanceMiles float64           `json:"total_distance_miles"`
	TotalDurationHours float64           `json:"total_duration_hours"`
	FuelStops          []domain.FuelStop `json:"fuel_stops"`
	Path               [][]float64       `json:"path"`
	EncodedPath        string            `json:"encoded_path"`
	Waypoints          [][]float64       `json:"waypoints"`
	RestStops          []domain.RestStop `json:"rest_stops"`
	Fallback           bool              `json:"fallback"`
}

// DailyLogResponse is one printable log sheet.
type DailyLogResponse struct {
	Day                    int                           `json:"day"`
	Date                   string                        `json:"date"`
	From                   string                        `json:"from"`
	To                     string                        `json:"to"`
	TotalMilesDrivingToday float64                       `json:"total_miles_driving_today"`
	TotalHours             float64                       `json:"total_hours"`
	DrivingHours           float64                       `json:"driving_hours"`
	OnDutyHours            float64                       `json:"on_duty_hours"`
	OffDutyHours           float64                       `json:"off_duty_hours"`
	SleeperHours           float64                       `json:"sleeper_hours"`
	Totals                 map[domain.DutyStatus]float64 `json:"totals"`
	Activities             []domain.Activity             `json:"activities"`
}

type TripPlanResponse struct {
	Message           string             `json:"message,omitempty"`
	Trip              TripResponse       `json:"trip"`
	RouteInfo         RouteInfoResponse  `json:"route_info"`
	HOSLogs           []DailyLogResponse `json:"hos_logs"`
	TotalHOSHours     float64            `json:"total_hos_hours"`
	TotalMiles        float64            `json:"total_miles"`
	ScheduleTruncated bool               `json:"schedule_truncated"`
}
