package hos

import (
	"eld-trip-service/internal/domain"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countFuelStops(days []domain.DayLog) (n int, fuel domain.Activity) {
	for _, d := range days {
		for _, a := range d.Activities {
			if a.Reason == domain.ReasonFuelStop {
				n++
				fuel = a
			}
		}
	}
	return n, fuel
}

// requireWellFormed checks the day-level invariants every schedule must hold.
func requireWellFormed(t *testing.T, days []domain.DayLog, maxDays int) {
	t.Helper()

	require.NotEmpty(t, days)
	require.LessOrEqual(t, len(days), maxDays)

	for i, d := range days {
		assert.Equal(t, i+1, d.Day, "day index")
		assert.InDelta(t, DayHours, d.TotalHours, 1e-4, "day %d total", d.Day)
		assert.InDelta(t, DayHours, d.DrivingHours+d.OnDutyHours+d.OffDutyHours+d.SleeperHours, 1e-4, "day %d sums", d.Day)

		require.NotEmpty(t, d.Activities)
		assert.Equal(t, 0.0, d.Activities[0].Start, "day %d starts at midnight", d.Day)
		assert.Equal(t, DayHours, d.Activities[len(d.Activities)-1].End, "day %d ends at midnight", d.Day)

		for j, a := range d.Activities {
			assert.GreaterOrEqual(t, a.End, a.Start)
			assert.Greater(t, a.Duration, 0.0)
			if j > 0 {
				assert.InDelta(t, d.Activities[j-1].End, a.Start, 1e-4, "day %d segment %d contiguous", d.Day, j)
			}
		}
	}
}

func TestSimulateShortTripPostArrival(t *testing.T) {
	e := NewDefaultEngine()

	days := e.Simulate(Input{TotalTripHours: 2, TotalDistanceMiles: 110})
	requireWellFormed(t, days, 60)
	require.Len(t, days, 1)

	d := days[0]
	assert.Equal(t, 2.0, d.DrivingHours)
	assert.Equal(t, 11.25, d.OnDutyHours)
	assert.Equal(t, 9.0, d.OffDutyHours)
	assert.Equal(t, 1.75, d.SleeperHours)
	assert.Equal(t, 24.0, d.TotalHours)
	assert.InDelta(t, 110.0, d.MilesDriven, 1e-9)

	var postArrival []domain.Activity
	for _, a := range d.Activities {
		if a.Reason == domain.ReasonPostArrival {
			postArrival = append(postArrival, a)
		}
	}
	require.Len(t, postArrival, 4)
	assert.Equal(t, domain.Activity{Type: domain.DutyOnDuty, Start: 10, End: 12, Duration: 2, Reason: domain.ReasonPostArrival}, postArrival[0])
	assert.Equal(t, 13.0, postArrival[1].Start)
	assert.Equal(t, 15.5, postArrival[2].Start)
	assert.Equal(t, 17.75, postArrival[3].Start)
}

func TestSimulateCycleAlreadyExhausted(t *testing.T) {
	e := NewDefaultEngine()

	for _, used := range []float64{70, 82.5} {
		res := e.SimulateDetailed(Input{TotalTripHours: 10, TotalDistanceMiles: 600, CurrentCycleUsedHours: used})
		requireWellFormed(t, res.Days, 60)
		require.Len(t, res.Days, 1)

		d := res.Days[0]
		assert.Equal(t, 0.0, d.DrivingHours)
		assert.Equal(t, 0.0, d.MilesDriven)
		assert.Equal(t, 24.0, d.OffDutyHours)
		for _, a := range d.Activities {
			assert.Equal(t, domain.DutyOffDuty, a.Type)
		}
		assert.Equal(t, 0.0, res.RemainingCycleHours)
		assert.Equal(t, 10.0, res.RemainingTripHours)
		assert.False(t, res.Truncated)
	}
}

func TestSimulateLongTripWithFuelStop(t *testing.T) {
	e := NewDefaultEngine()

	res := e.SimulateDetailed(Input{TotalTripHours: 40, TotalDistanceMiles: 2200, FuelStops: true})
	requireWellFormed(t, res.Days, 60)
	require.Len(t, res.Days, 6)

	n, fuel := countFuelStops(res.Days)
	require.Equal(t, 1, n)
	assert.Equal(t, domain.Activity{Type: domain.DutyOnDuty, Start: 9, End: 9.5, Duration: 0.5, Reason: domain.ReasonFuelStop}, fuel)

	first := res.Days[0]
	assert.Equal(t, 7.75, first.DrivingHours)
	assert.Equal(t, 5.5, first.OnDutyHours)
	assert.Equal(t, 426.25, first.MilesDriven)

	last := res.Days[5]
	assert.Equal(t, 1.25, last.DrivingHours)
	assert.Equal(t, 4.75, last.OnDutyHours)
	assert.Equal(t, 18.0, last.OffDutyHours)

	driven := 0.0
	for _, d := range res.Days {
		driven += d.DrivingHours
	}
	assert.InDelta(t, 40.0, driven, 1e-6)
	assert.Equal(t, 0.0, res.RemainingTripHours)
	assert.Equal(t, 0.0, res.RemainingCycleHours)
	assert.InDelta(t, 2200.0, TotalMiles(res.Days), 1e-6)
}

func TestSimulateCycleRunsOutMidDay(t *testing.T) {
	e := NewDefaultEngine()

	res := e.SimulateDetailed(Input{TotalTripHours: 20, TotalDistanceMiles: 1100, CurrentCycleUsedHours: 65})
	requireWellFormed(t, res.Days, 60)
	require.Len(t, res.Days, 1)

	d := res.Days[0]
	assert.Equal(t, 3.0, d.DrivingHours)
	assert.Equal(t, 2.0, d.OnDutyHours)
	assert.Equal(t, 19.0, d.OffDutyHours)
	assert.Equal(t, 0.0, d.SleeperHours)
	assert.Equal(t, 17.0, res.RemainingTripHours)
	assert.Equal(t, 0.0, res.RemainingCycleHours)

	// The unused half of the 9:30 driving block is off duty.
	assert.Contains(t, d.Activities, domain.Activity{Type: domain.DutyOffDuty, Start: 11, End: 12, Duration: 1})
}

func TestSimulateFuelStopDisplacesFollowingBlock(t *testing.T) {
	e := NewDefaultEngine()

	res := e.SimulateDetailed(Input{TotalTripHours: 20, TotalDistanceMiles: 1100, CurrentCycleUsedHours: 65, FuelStops: true})
	requireWellFormed(t, res.Days, 60)
	require.Len(t, res.Days, 1)

	// The stop takes the half hour after the 7:30 drive, so the 9:00
	// on-duty block is fully covered and driving resumes at 9:30.
	acts := res.Days[0].Activities
	require.GreaterOrEqual(t, len(acts), 5)
	assert.Equal(t, domain.Activity{Type: domain.DutyDriving, Start: 7.5, End: 9, Duration: 1.5}, acts[2])
	assert.Equal(t, domain.Activity{Type: domain.DutyOnDuty, Start: 9, End: 9.5, Duration: 0.5, Reason: domain.ReasonFuelStop}, acts[3])
	assert.Equal(t, domain.Activity{Type: domain.DutyDriving, Start: 9.5, End: 11, Duration: 1.5}, acts[4])

	n, _ := countFuelStops(res.Days)
	assert.Equal(t, 1, n)
	assert.Equal(t, 3.0, res.Days[0].DrivingHours)
	assert.Equal(t, 2.0, res.Days[0].OnDutyHours)
	assert.Equal(t, 0.0, res.RemainingCycleHours)
}

func TestSimulateFuelStopNeedsCycleBudget(t *testing.T) {
	e := NewDefaultEngine()

	tests := []struct {
		name string
		in   Input
		want int
	}{
		// 1.0h left at 7:30; driving uses all of it.
		{"budget spent by driving", Input{TotalTripHours: 40, TotalDistanceMiles: 2200, CurrentCycleUsedHours: 67.5, FuelStops: true}, 0},
		// 1.0h left after arriving at 8:00; the post-arrival fill to 9:00 uses it.
		{"budget spent by post-arrival fill", Input{TotalTripHours: 0.5, TotalDistanceMiles: 27.5, CurrentCycleUsedHours: 67, FuelStops: true}, 0},
		{"budget left after post-arrival fill", Input{TotalTripHours: 0.5, TotalDistanceMiles: 27.5, CurrentCycleUsedHours: 66, FuelStops: true}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := e.SimulateDetailed(tc.in)
			requireWellFormed(t, res.Days, 60)

			n, _ := countFuelStops(res.Days)
			assert.Equal(t, tc.want, n)
			assert.GreaterOrEqual(t, res.RemainingCycleHours, 0.0)
		})
	}
}

func TestSimulateMilesRoundHalfToEven(t *testing.T) {
	e := NewDefaultEngine()

	// 1.25h at 52.5 mph is exactly 65.625 miles.
	days := e.Simulate(Input{TotalTripHours: 1.25, TotalDistanceMiles: 65.625})
	require.Len(t, days, 1)
	assert.Equal(t, 1.25, days[0].DrivingHours)
	assert.Equal(t, 65.62, days[0].MilesDriven)

	assert.Equal(t, 13.12, round2(13.125))
	assert.Equal(t, 328.12, round2(328.125))
}

func TestSimulateNoFuelStopUnlessRequested(t *testing.T) {
	e := NewDefaultEngine()

	n, _ := countFuelStops(e.Simulate(Input{TotalTripHours: 40, TotalDistanceMiles: 2200}))
	assert.Zero(t, n)
}

func TestSimulateZeroTrip(t *testing.T) {
	e := NewDefaultEngine()

	days := e.Simulate(Input{})
	requireWellFormed(t, days, 60)
	require.Len(t, days, 1)
	assert.Equal(t, 0.0, days[0].DrivingHours)
	assert.Equal(t, 0.0, days[0].MilesDriven)
	assert.Equal(t, 13.25, days[0].OnDutyHours)
}

func TestSimulateInvariantsAcrossInputs(t *testing.T) {
	e := NewDefaultEngine()

	for _, hours := range []float64{0, 0.3, 1.25, 7.75, 13.3333, 40, 95.5, 300} {
		for _, used := range []float64{-5, 0, 12.5, 55, 69.9, 70, 90} {
			for _, fuel := range []bool{false, true} {
				in := Input{TotalTripHours: hours, TotalDistanceMiles: hours * 52.5, CurrentCycleUsedHours: used, FuelStops: fuel}
				res := e.SimulateDetailed(in)

				requireWellFormed(t, res.Days, e.Rules().MaxDays)
				assert.GreaterOrEqual(t, res.RemainingCycleHours, 0.0)
				assert.False(t, res.Truncated)

				n, _ := countFuelStops(res.Days)
				if fuel {
					assert.LessOrEqual(t, n, 1)
				} else {
					assert.Zero(t, n)
				}

				driven := 0.0
				for _, d := range res.Days {
					driven += d.DrivingHours
				}
				assert.LessOrEqual(t, driven, hours+1e-3)
				assert.LessOrEqual(t, driven, math.Max(0, 70-used)+1e-3)
			}
		}
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	e := NewDefaultEngine()
	in := Input{TotalTripHours: 33.7, TotalDistanceMiles: 1999, CurrentCycleUsedHours: 8, FuelStops: true}

	assert.Equal(t, e.Simulate(in), e.Simulate(in))
}

func TestSimulateTruncatedAtMaxDays(t *testing.T) {
	rules := DefaultRules()
	rules.MaxDays = 2
	e, err := NewEngine(rules)
	require.NoError(t, err)

	res := e.SimulateDetailed(Input{TotalTripHours: 40, TotalDistanceMiles: 2200})
	assert.Len(t, res.Days, 2)
	assert.True(t, res.Truncated)
	assert.Equal(t, 24.5, res.RemainingTripHours)
}

func TestTotals(t *testing.T) {
	days := NewDefaultEngine().Simulate(Input{TotalTripHours: 2, TotalDistanceMiles: 110})

	assert.Equal(t, 13.25, TotalRegulatedHours(days))
	assert.Equal(t, 110.0, TotalMiles(days))
	assert.Equal(t, 55.0, AverageSpeed(0, 100, 55))
	assert.Equal(t, 55.0, AverageSpeed(2, 0, 55))
	assert.Equal(t, 60.0, AverageSpeed(2, 120, 55))
}
