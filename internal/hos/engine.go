package hos

import (
	"eld-trip-service/internal/domain"
	"fmt"
	"math"
)

// Input carries the trip totals the engine schedules.
type Input struct {
	TotalTripHours        float64
	TotalDistanceMiles    float64
	CurrentCycleUsedHours float64
	FuelStops             bool
}

// Result is the full outcome of one simulation.
// Truncated reports that MaxDays was reached while driving was still owed
// and cycle budget remained.
type Result struct {
	Days                []domain.DayLog `json:"days"`
	AverageSpeedMPH     float64         `json:"average_speed_mph"`
	RemainingTripHours  float64         `json:"remaining_trip_hours"`
	RemainingCycleHours float64         `json:"remaining_cycle_hours"`
	Truncated           bool            `json:"truncated"`
}

// Engine simulates a driver's duty schedule under a fixed daily template.
//
// An Engine holds only immutable rules; every call builds its own state,
// so one Engine is safe for concurrent use.
type Engine struct {
	rules Rules
}

// NewEngine validates rules and returns an engine holding its own copy.
func NewEngine(rules Rules) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	return &Engine{rules: rules.clone()}, nil
}

// NewDefaultEngine returns an engine configured with DefaultRules.
func NewDefaultEngine() *Engine {
	return &Engine{rules: DefaultRules()}
}

// Rules returns a copy of the engine configuration.
func (e *Engine) Rules() Rules { return e.rules.clone() }

// Simulate partitions the trip into day logs.
func (e *Engine) Simulate(in Input) []domain.DayLog {
	return e.SimulateDetailed(in).Days
}

// SimulateDetailed runs the day loop and reports the final state.
// The loop stops after a day on which the cycle budget ran out, once the
// trip's driving is done, or after MaxDays days.
func (e *Engine) SimulateDetailed(in Input) Result {
	s := &simulation{
		rules:          &e.rules,
		remainingTrip:  math.Max(0, in.TotalTripHours),
		remainingCycle: math.Max(0, e.rules.MaxCycleHours-in.CurrentCycleUsedHours),
		fuelRequested:  in.FuelStops,
		avgSpeed:       AverageSpeed(in.TotalTripHours, in.TotalDistanceMiles, e.rules.DefaultSpeedMPH),
	}

	days := make([]domain.DayLog, 0, 8)
	finished := false
	for len(days) < e.rules.MaxDays {
		day, last := s.runDay(len(days) + 1)
		days = append(days, day)

		if last || s.tripComplete() {
			finished = true
			break
		}
	}

	return Result{
		Days:                days,
		AverageSpeedMPH:     s.avgSpeed,
		RemainingTripHours:  round4(s.remainingTrip),
		RemainingCycleHours: round4(s.remainingCycle),
		Truncated:           !finished,
	}
}

// simulation is the transient state carried across days.
type simulation struct {
	rules          *Rules
	remainingTrip  float64
	remainingCycle float64
	fuelRequested  bool
	fuelStopUsed   bool
	avgSpeed       float64
}

func (s *simulation) tripComplete() bool   { return s.remainingTrip <= epsilon }
func (s *simulation) cycleExhausted() bool { return s.remainingCycle <= 0 }

func (s *simulation) consumeCycle(hours float64) {
	s.remainingCycle = math.Max(0, s.remainingCycle-hours)
}

// runDay walks the template once and reports whether this must be the
// final day.
func (s *simulation) runDay(n int) (domain.DayLog, bool) {
	d := newDayBuilder(s.rules.Template)

	for _, b := range s.rules.Template {
		switch classify(b.Type, s.cycleExhausted(), s.tripComplete()) {
		case actForceOffDuty:
			d.emit(domain.DutyOffDuty, b.Start, b.End, "")
			d.last = true
		case actDrive:
			s.drive(d, b)
		case actPostArrival:
			s.consumeCycle(d.emit(domain.DutyOnDuty, b.Start, b.End, domain.ReasonPostArrival))
		case actKeepOnDuty:
			s.consumeCycle(d.emit(domain.DutyOnDuty, b.Start, b.End, b.Reason))
		case actKeepSleeper:
			d.emit(domain.DutySleeperBerth, b.Start, b.End, b.Reason)
		case actKeepOffDuty:
			d.emit(domain.DutyOffDuty, b.Start, b.End, b.Reason)
		}
	}

	return d.summarize(n, s.avgSpeed), d.last
}

// drive allocates driving inside one DRIVING block, then lays out the
// fuel stop and the leftover fill after the driven portion.
func (s *simulation) drive(d *dayBuilder, b Block) {
	start := math.Max(b.Start, d.cursor)
	blockLen := duration(start, b.End)
	if blockLen == 0 {
		return
	}

	allowed := min(
		blockLen,
		s.remainingTrip,
		s.remainingCycle,
		math.Max(0, s.rules.MaxDailyDrivingHours-d.drivenToday),
	)
	driveEnd := start + allowed
	d.emit(domain.DutyDriving, start, driveEnd, "")
	d.drivenToday += allowed
	s.remainingTrip = math.Max(0, s.remainingTrip-allowed)
	s.consumeCycle(allowed)

	leftover := round4(blockLen - allowed)
	postArrival := leftover > epsilon && s.tripComplete() && !s.cycleExhausted()

	// The fuel stop is decided after the leftover fill, against the
	// budget that fill would leave.
	projected := s.remainingCycle
	if postArrival {
		projected = math.Max(0, projected-leftover)
	}
	if s.fuelRequested && !s.fuelStopUsed && allowed > 0 && projected > 0 {
		s.consumeCycle(d.emit(domain.DutyOnDuty, driveEnd, driveEnd+s.rules.FuelStopHours, domain.ReasonFuelStop))
		s.fuelStopUsed = true
	}

	if leftover <= epsilon {
		return
	}
	if postArrival {
		s.consumeCycle(d.emit(domain.DutyOnDuty, d.cursor, b.End, domain.ReasonPostArrival))
		return
	}
	d.emit(domain.DutyOffDuty, d.cursor, b.End, "")
	if s.cycleExhausted() {
		d.last = true
	}
}
