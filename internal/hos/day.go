package hos

import (
	"eld-trip-service/internal/domain"
	"math"
)

// dayBuilder lays segments on one day's timeline.
//
// cursor is the end of the last emitted segment. A segment never starts
// before it, so a fuel stop that runs past its driving block shortens
// whatever follows instead of overlapping it.
type dayBuilder struct {
	activities  []domain.Activity
	cursor      float64
	dayEnd      float64
	drivenToday float64
	last        bool
}

func newDayBuilder(template []Block) *dayBuilder {
	return &dayBuilder{
		activities: make([]domain.Activity, 0, len(template)+2),
		dayEnd:     template[len(template)-1].End,
	}
}

// emit appends a segment clipped to [cursor, dayEnd] and returns the
// duration actually recorded. Empty segments are dropped.
func (d *dayBuilder) emit(kind domain.DutyStatus, start, end float64, reason string) float64 {
	start = math.Max(start, d.cursor)
	end = math.Min(end, d.dayEnd)

	dur := duration(start, end)
	if dur == 0 {
		return 0
	}

	d.activities = append(d.activities, domain.Activity{
		Type:     kind,
		Start:    round4(start),
		End:      round4(end),
		Duration: dur,
		Reason:   reason,
	})
	d.cursor = end

	return dur
}

func (d *dayBuilder) summarize(n int, avgSpeed float64) domain.DayLog {
	var driving, onDuty, offDuty, sleeper float64
	for _, a := range d.activities {
		switch a.Type {
		case domain.DutyDriving:
			driving += a.Duration
		case domain.DutyOnDuty:
			onDuty += a.Duration
		case domain.DutyOffDuty:
			offDuty += a.Duration
		case domain.DutySleeperBerth:
			sleeper += a.Duration
		}
	}

	miles := 0.0
	if avgSpeed > 0 {
		miles = round2(driving * avgSpeed)
	}

	return domain.DayLog{
		Day:          n,
		Activities:   d.activities,
		DrivingHours: round4(driving),
		OnDutyHours:  round4(onDuty),
		OffDutyHours: round4(offDuty),
		SleeperHours: round4(sleeper),
		TotalHours:   round4(driving + onDuty + offDuty + sleeper),
		MilesDriven:  miles,
	}
}
