package handlers

import (
	"eld-trip-service/internal/api/dto"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/hos"
	"eld-trip-service/internal/ports"
	"eld-trip-service/internal/services"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type TripHandler struct {
	Repo           ports.TripRepository
	Router         ports.RouteProvider
	Engine         *hos.Engine
	EnableFuelStop bool
}

// Create plans a new trip: route, HOS schedule and enriched daily logs.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CurrentCycleUsedHours == nil {
		writeError(w, r, http.StatusBadRequest, "current_cycle_used_hours is required")
		return
	}

	trip, plan, err := services.PlanTrip(r.Context(), services.PlanTripRequest{
		CurrentLocation:       req.CurrentLocation,
		PickupLocation:        req.PickupLocation,
		DropoffLocation:       req.DropoffLocation,
		CurrentCycleUsedHours: *req.CurrentCycleUsedHours,
		EnableFuelStop:        h.EnableFuelStop,
	}, h.Repo, h.Router, h.Engine)
	if err != nil {
		writeServiceError(w, r, "plan trip", err)
		return
	}

	res := toPlanResponse(trip, plan)
	res.Message = "Trip created successfully"
	writeJSON(w, r, http.StatusCreated, res)
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(maxListLimit))
			return
		}
		limit = n
	}

	trips, err := services.ListTrips(r.Context(), h.Repo, limit)
	if err != nil {
		writeServiceError(w, r, "list trips", err)
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, toTripResponse(t))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns a stored trip together with its plan.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	trip, plan, err := services.GetTripPlan(r.Context(), id, h.Repo)
	if err != nil {
		writeServiceError(w, r, "get trip", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(trip, plan))
}

func toTripResponse(t *domain.Trip) dto.TripResponse {
	return dto.TripResponse{
		ID:                    t.ID,
		CurrentLocation:       t.CurrentLocation,
		PickupLocation:        t.PickupLocation,
		DropoffLocation:       t.DropoffLocation,
		CurrentCycleUsedHours: t.CurrentCycleUsedHours,
		CreatedAt:             t.CreatedAt,
	}
}

func toPlanResponse(t *domain.Trip, p *domain.TripPlan) dto.TripPlanResponse {
	logs := make([]dto.DailyLogResponse, 0, len(p.Logs))
	for _, l := range p.Logs {
		logs = append(logs, dto.DailyLogResponse{
			Day:                    l.Day,
			Date:                   l.Date,
			From:                   l.From,
			To:                     l.To,
			TotalMilesDrivingToday: l.MilesDriven,
			TotalHours:             l.TotalHours,
			DrivingHours:           l.DrivingHours,
			OnDutyHours:            l.OnDutyHours,
			OffDutyHours:           l.OffDutyHours,
			SleeperHours:           l.SleeperHours,
			Totals:                 l.Totals,
			Activities:             l.Activities,
		})
	}

	return dto.TripPlanResponse{
		Trip: toTripResponse(t),
		RouteInfo: dto.RouteInfoResponse{
			TotalDistanceMiles: p.DistanceMiles,
			TotalDurationHours: p.DurationHours,
			FuelStops:          p.FuelStops,
			Path:               p.Path,
			EncodedPath:        p.EncodedPath,
			Waypoints:          p.Waypoints,
			RestStops:          p.RestStops,
			Fallback:           p.RouteFallback,
		},
		HOSLogs:           logs,
		TotalHOSHours:     p.TotalHOSHours,
		TotalMiles:        p.TotalMiles,
		ScheduleTruncated: p.ScheduleTruncated,
	}
}
