package dto

import "eld-trip-service/internal/domain"

type SimulateRequest struct {
	TotalTripHours        float64 `json:"total_trip_hours"`
	TotalDistanceMiles    float64 `json:"total_distance_miles"`
	CurrentCycleUsedHours float64 `json:"current_cycle_used_hours"`
	FuelStops             bool    `json:"fuel_stops"`
}

type SimulateResponse struct {
	Days                []domain.DayLog `json:"days"`
	AverageSpeedMPH     float64         `json:"average_speed_mph"`
	RemainingTripHours  float64         `json:"remaining_trip_hours"`
	RemainingCycleHours float64         `json:"remaining_cycle_hours"`
	Truncated           bool            `json:"truncated"`
	TotalHOSHours       float64         `json:"total_hos_hours"`
	TotalMiles          float64         `json:"total_miles"`
}
