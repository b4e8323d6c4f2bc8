package hos

import "eld-trip-service/internal/domain"

// action is what the engine does with one template block.
type action int

const (
	// Cycle budget is gone: the block becomes OFF_DUTY and the day is the last one.
	actForceOffDuty action = iota
	// Allocate driving time, then fill the rest of the block.
	actDrive
	// Trip already complete: a driving block becomes post-arrival ON_DUTY.
	actPostArrival
	actKeepOnDuty
	actKeepSleeper
	actKeepOffDuty
)

func (a action) String() string {
	switch a {
	case actForceOffDuty:
		return "force_off_duty"
	case actDrive:
		return "drive"
	case actPostArrival:
		return "post_arrival"
	case actKeepOnDuty:
		return "keep_on_duty"
	case actKeepSleeper:
		return "keep_sleeper"
	case actKeepOffDuty:
		return "keep_off_duty"
	default:
		return "unknown"
	}
}

// classify is the per-block policy table keyed by
// (block kind, cycle exhausted, trip complete).
//
// Cycle exhaustion dominates every block kind, including OFF_DUTY: once the
// budget reaches zero the remainder of the day is OFF_DUTY and no further
// day is produced.
func classify(kind domain.DutyStatus, cycleExhausted, tripComplete bool) action {
	if cycleExhausted {
		return actForceOffDuty
	}

	switch kind {
	case domain.DutyDriving:
		if tripComplete {
			return actPostArrival
		}
		return actDrive
	case domain.DutyOnDuty:
		return actKeepOnDuty
	case domain.DutySleeperBerth:
		return actKeepSleeper
	default:
		return actKeepOffDuty
	}
}
