package handlers

import (
	"eld-trip-service/internal/api/dto"
	"eld-trip-service/internal/hos"
	"eld-trip-service/internal/services"
	"net/http"
)

// HOSHandler runs the schedule engine on raw trip totals.
type HOSHandler struct {
	Engine *hos.Engine
}

func (h *HOSHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req dto.SimulateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.TotalTripHours < 0 || req.TotalDistanceMiles < 0 {
		writeError(w, r, http.StatusBadRequest, "total_trip_hours and total_distance_miles must not be negative")
		return
	}

	res := services.SimulateSchedule(h.Engine, hos.Input{
		TotalTripHours:        req.TotalTripHours,
		TotalDistanceMiles:    req.TotalDistanceMiles,
		CurrentCycleUsedHours: req.CurrentCycleUsedHours,
		FuelStops:             req.FuelStops,
	})

	writeJSON(w, r, http.StatusOK, dto.SimulateResponse{
		Days:                res.Days,
		AverageSpeedMPH:     res.AverageSpeedMPH,
		RemainingTripHours:  res.RemainingTripHours,
		RemainingCycleHours: res.RemainingCycleHours,
		Truncated:           res.Truncated,
		TotalHOSHours:       hos.TotalRegulatedHours(res.Days),
		TotalMiles:          hos.TotalMiles(res.Days),
	})
}
