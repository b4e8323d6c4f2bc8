package services

import (
	"context"
	"eld-trip-service/internal/adapters/repositories"
	"eld-trip-service/internal/adapters/routing"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/hos"
	"eld-trip-service/internal/platform/db"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dallas = "Dallas, TX"
	okc    = "Oklahoma City, OK"
	denver = "Denver, CO"
)

func newTestRepo(t *testing.T) *repositories.SqliteTripRepository {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitSchema(conn))

	return repositories.NewSqliteTripRepository(conn)
}

func countFuelStops(logs []domain.DailyLogSheet) int {
	n := 0
	for _, l := range logs {
		for _, a := range l.Activities {
			if a.Reason == domain.ReasonFuelStop {
				n++
			}
		}
	}
	return n
}

func TestFuelStopMarkers(t *testing.T) {
	tests := []struct {
		miles float64
		want  []float64
	}{
		{0, nil},
		{-5, nil},
		{999.99, nil},
		{1000, nil},
		{1000.01, []float64{1000}},
		{2200, []float64{1000, 2000}},
		{3000, []float64{1000, 2000}},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%g", tc.miles), func(t *testing.T) {
			got := FuelStopMarkers(tc.miles)
			require.Len(t, got, len(tc.want))
			for i, m := range tc.want {
				assert.Equal(t, m, got[i].MileMarker)
				assert.Equal(t, domain.ReasonFuelStop, got[i].Reason)
			}
		})
	}
}

func TestEnrichLogsLabelsAndDates(t *testing.T) {
	trip := &domain.Trip{
		CurrentLocation: dallas,
		PickupLocation:  okc,
		DropoffLocation: denver,
		CreatedAt:       time.Date(2026, 1, 31, 18, 0, 0, 0, time.UTC),
	}
	days := []domain.DayLog{
		{Day: 1, MilesDriven: 0},
		{Day: 2, MilesDriven: 300},
		{Day: 3, MilesDriven: 120},
	}

	sheets, _ := EnrichLogs(trip, days, 55)
	require.Len(t, sheets, 3)

	assert.Equal(t, []string{"2026-01-31", "2026-02-01", "2026-02-02"},
		[]string{sheets[0].Date, sheets[1].Date, sheets[2].Date})
	assert.Equal(t, []string{dallas, EnrouteLabel, EnrouteLabel},
		[]string{sheets[0].From, sheets[1].From, sheets[2].From})
	assert.Equal(t, []string{okc, EnrouteLabel, denver},
		[]string{sheets[0].To, sheets[1].To, sheets[2].To})

	// A single-day trip ends at the dropoff even with no miles.
	single, _ := EnrichLogs(trip, []domain.DayLog{{Day: 1}}, 55)
	assert.Equal(t, denver, single[0].To)
}

func TestEnrichLogsRestStops(t *testing.T) {
	trip := &domain.Trip{CurrentLocation: dallas, PickupLocation: okc, DropoffLocation: denver}
	days := []domain.DayLog{
		{
			Day: 1,
			Activities: []domain.Activity{
				{Type: domain.DutyDriving, Start: 0, End: 2, Duration: 2},
				{Type: domain.DutyOffDuty, Start: 2, End: 3, Duration: 1},
				{Type: domain.DutyOnDuty, Start: 3, End: 24, Duration: 21},
			},
			MilesDriven: 100,
		},
		{
			Day: 2,
			Activities: []domain.Activity{
				{Type: domain.DutyOffDuty, Start: 0, End: 0.4, Duration: 0.4},
				{Type: domain.DutySleeperBerth, Start: 0.4, End: 1, Duration: 0.6},
				{Type: domain.DutyDriving, Start: 1, End: 2.5, Duration: 1.5},
				{Type: domain.DutyOffDuty, Start: 2.5, End: 24, Duration: 21.5},
			},
			MilesDriven: 75,
		},
	}

	sheets, rests := EnrichLogs(trip, days, 50)

	require.Len(t, rests, 3)
	assert.Equal(t, domain.RestStop{Day: 1, Type: domain.DutyOffDuty, Start: 2, Duration: 1, MileMarker: 100}, rests[0])
	assert.Equal(t, domain.RestStop{Day: 2, Type: domain.DutySleeperBerth, Start: 0.4, Duration: 0.6, MileMarker: 100}, rests[1])
	assert.Equal(t, domain.RestStop{Day: 2, Type: domain.DutyOffDuty, Start: 2.5, Duration: 21.5, MileMarker: 175}, rests[2])

	assert.Equal(t, 21.9, sheets[1].Totals[domain.DutyOffDuty])
	assert.Equal(t, 0.6, sheets[1].Totals[domain.DutySleeperBerth])
	assert.Equal(t, 0.0, sheets[1].Totals[domain.DutyOnDuty])
}

func TestEnrichLogsMileMarkerRoundsHalfToEven(t *testing.T) {
	trip := &domain.Trip{CurrentLocation: dallas, PickupLocation: okc, DropoffLocation: denver}
	days := []domain.DayLog{{
		Day: 1,
		Activities: []domain.Activity{
			{Type: domain.DutyDriving, Start: 0, End: 1.25, Duration: 1.25},
			{Type: domain.DutyOffDuty, Start: 1.25, End: 24, Duration: 22.75},
		},
		MilesDriven: 65.62,
	}}

	_, rests := EnrichLogs(trip, days, 52.5)
	require.Len(t, rests, 1)
	assert.Equal(t, 65.62, rests[0].MileMarker)
}

func TestPlanTripShortHaul(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	router := routing.NewMockRouteProvider().Add(dallas, okc, denver, domain.RouteInfo{
		DistanceMiles: 110,
		DurationHours: 2,
		Path:          [][]float64{{32.7767, -96.797}, {39.7392, -104.9903}},
	})

	created := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	trip, plan, err := PlanTrip(ctx, PlanTripRequest{
		CurrentLocation:       "  " + dallas,
		PickupLocation:        okc,
		DropoffLocation:       denver + " ",
		CurrentCycleUsedHours: 0,
		EnableFuelStop:        true,
		CreatedAt:             created,
	}, repo, router, hos.NewDefaultEngine())
	require.NoError(t, err)

	assert.NotEmpty(t, trip.ID)
	assert.Equal(t, dallas, trip.CurrentLocation)
	assert.Equal(t, trip.ID, plan.TripID)
	assert.Empty(t, plan.FuelStops)
	assert.NotEmpty(t, plan.EncodedPath)
	assert.Equal(t, [][]float64{}, plan.Waypoints)

	require.Len(t, plan.Logs, 1)
	day := plan.Logs[0]
	assert.Equal(t, "2026-03-14", day.Date)
	assert.Equal(t, dallas, day.From)
	assert.Equal(t, denver, day.To)
	assert.Equal(t, 2.0, day.Totals[domain.DutyDriving])
	assert.Equal(t, 11.25, day.Totals[domain.DutyOnDuty])
	assert.Equal(t, 9.0, day.Totals[domain.DutyOffDuty])
	assert.Equal(t, 1.75, day.Totals[domain.DutySleeperBerth])
	assert.Equal(t, 110.0, day.MilesDriven)

	assert.Equal(t, 13.25, plan.TotalHOSHours)
	assert.Equal(t, 110.0, plan.TotalMiles)
	assert.False(t, plan.ScheduleTruncated)

	markers := make([]float64, 0, len(plan.RestStops))
	for _, r := range plan.RestStops {
		markers = append(markers, r.MileMarker)
	}
	assert.Equal(t, []float64{0, 110, 110, 110}, markers)

	stored, storedPlan, err := GetTripPlan(ctx, trip.ID, repo)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, stored.ID)
	assert.Equal(t, plan.Logs[0].Activities, storedPlan.Logs[0].Activities)
	assert.Equal(t, plan.RestStops, storedPlan.RestStops)
}

func TestPlanTripLongHaulFuelStop(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	router := routing.NewMockRouteProvider().Add(dallas, okc, denver, domain.RouteInfo{
		DistanceMiles: 2200,
		DurationHours: 40,
	})

	_, plan, err := PlanTrip(ctx, PlanTripRequest{
		CurrentLocation: dallas,
		PickupLocation:  okc,
		DropoffLocation: denver,
		EnableFuelStop:  true,
		ID:              "trip-42",
	}, repo, router, hos.NewDefaultEngine())
	require.NoError(t, err)

	assert.Equal(t, "trip-42", plan.TripID)
	assert.Len(t, plan.FuelStops, 2)
	assert.Equal(t, 1, countFuelStops(plan.Logs))
	assert.Len(t, plan.Logs, 6)
	assert.Equal(t, 2200.0, plan.TotalMiles)
	assert.Equal(t, denver, plan.Logs[5].To)
	for _, l := range plan.Logs[1:5] {
		assert.Equal(t, EnrouteLabel, l.From)
		assert.Equal(t, EnrouteLabel, l.To)
	}
}

func TestPlanTripFuelStopDisabled(t *testing.T) {
	router := routing.NewMockRouteProvider().Add(dallas, okc, denver, domain.RouteInfo{
		DistanceMiles: 2200,
		DurationHours: 40,
	})

	_, plan, err := PlanTrip(context.Background(), PlanTripRequest{
		CurrentLocation: dallas,
		PickupLocation:  okc,
		DropoffLocation: denver,
	}, newTestRepo(t), router, hos.NewDefaultEngine())
	require.NoError(t, err)

	assert.Len(t, plan.FuelStops, 2, "markers are still proposed")
	assert.Zero(t, countFuelStops(plan.Logs))
}

func TestPlanTripTruncatedSchedule(t *testing.T) {
	rules := hos.DefaultRules()
	rules.MaxDays = 2
	engine, err := hos.NewEngine(rules)
	require.NoError(t, err)

	router := routing.NewMockRouteProvider().Add(dallas, okc, denver, domain.RouteInfo{
		DistanceMiles: 2200,
		DurationHours: 40,
		Fallback:      true,
	})

	_, plan, err := PlanTrip(context.Background(), PlanTripRequest{
		CurrentLocation: dallas,
		PickupLocation:  okc,
		DropoffLocation: denver,
	}, newTestRepo(t), router, engine)
	require.NoError(t, err)

	assert.True(t, plan.ScheduleTruncated)
	assert.True(t, plan.RouteFallback)
	assert.Len(t, plan.Logs, 2)
}

func TestPlanTripValidation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	router := routing.NewMockRouteProvider()

	tests := []struct {
		name string
		req  PlanTripRequest
	}{
		{"missing current", PlanTripRequest{CurrentLocation: " ", PickupLocation: okc, DropoffLocation: denver}},
		{"missing pickup", PlanTripRequest{CurrentLocation: dallas, DropoffLocation: denver}},
		{"missing dropoff", PlanTripRequest{CurrentLocation: dallas, PickupLocation: okc}},
		{"negative cycle", PlanTripRequest{CurrentLocation: dallas, PickupLocation: okc, DropoffLocation: denver, CurrentCycleUsedHours: -1}},
		{"cycle over cap", PlanTripRequest{CurrentLocation: dallas, PickupLocation: okc, DropoffLocation: denver, CurrentCycleUsedHours: 70.5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := PlanTrip(ctx, tc.req, repo, router, hos.NewDefaultEngine())
			assert.ErrorIs(t, err, ErrInvalidTrip)
		})
	}

	trips, err := ListTrips(ctx, repo, 10)
	require.NoError(t, err)
	assert.Empty(t, trips)
	assert.Zero(t, router.Calls)
}

func TestPlanTripUnknownLocationKeepsTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	router := routing.NewMockRouteProvider().Fail(dallas, okc, "Atlantis", fmt.Errorf("geocode %q: %w", "Atlantis", domain.ErrLocationNotFound))

	trip, plan, err := PlanTrip(ctx, PlanTripRequest{
		CurrentLocation: dallas,
		PickupLocation:  okc,
		DropoffLocation: "Atlantis",
	}, repo, router, hos.NewDefaultEngine())
	require.ErrorIs(t, err, domain.ErrLocationNotFound)
	assert.Nil(t, plan)
	require.NotNil(t, trip)

	_, err = repo.GetTrip(ctx, trip.ID)
	assert.NoError(t, err)

	_, _, err = GetTripPlan(ctx, trip.ID, repo)
	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

func TestSimulateSchedule(t *testing.T) {
	res := SimulateSchedule(hos.NewDefaultEngine(), hos.Input{
		TotalTripHours:        2,
		TotalDistanceMiles:    110,
		CurrentCycleUsedHours: 70,
	})

	require.Len(t, res.Days, 1)
	assert.Equal(t, 24.0, res.Days[0].OffDutyHours)
	assert.Equal(t, 2.0, res.RemainingTripHours)
}
