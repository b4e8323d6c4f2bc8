package hos

import (
	"eld-trip-service/internal/domain"
	"errors"
	"fmt"
	"math"
	"slices"
)

// DayHours is the span every template must cover.
const DayHours = 24.0

// Block is one entry of the fixed daily template.
type Block struct {
	Type   domain.DutyStatus
	Start  float64
	End    float64
	Reason string
}

// Len returns the block length in hours, rounded to four decimals.
func (b Block) Len() float64 { return duration(b.Start, b.End) }

// Rules is the immutable configuration of the schedule engine.
//
// MaxDutyWindowHours, PickupHours and DropoffHours are carried for
// reporting only; the fixed template already fits inside the duty window
// and pickup/dropoff time is not modelled separately.
type Rules struct {
	MaxDailyDrivingHours float64
	MaxDutyWindowHours   float64
	MaxCycleHours        float64
	PickupHours          float64
	DropoffHours         float64
	FuelStopHours        float64
	DefaultSpeedMPH      float64
	MaxDays              int
	Template             []Block
}

// DefaultRules returns the 70-hour/8-day property-carrying rule set with
// the standard daily template.
func DefaultRules() Rules {
	return Rules{
		MaxDailyDrivingHours: 11,
		MaxDutyWindowHours:   14,
		MaxCycleHours:        70,
		PickupHours:          1,
		DropoffHours:         1,
		FuelStopHours:        0.5,
		DefaultSpeedMPH:      55,
		MaxDays:              60,
		Template:             DefaultTemplate(),
	}
}

// DefaultTemplate returns a fresh copy of the standard daily layout.
func DefaultTemplate() []Block {
	return []Block{
		{Type: domain.DutyOffDuty, Start: 0, End: 6},
		{Type: domain.DutyOnDuty, Start: 6, End: 7.5},
		{Type: domain.DutyDriving, Start: 7.5, End: 9},
		{Type: domain.DutyOnDuty, Start: 9, End: 9.5},
		{Type: domain.DutyDriving, Start: 9.5, End: 12},
		{Type: domain.DutyOffDuty, Start: 12, End: 13},
		{Type: domain.DutyDriving, Start: 13, End: 15},
		{Type: domain.DutyOnDuty, Start: 15, End: 15.5},
		{Type: domain.DutyDriving, Start: 15.5, End: 16},
		{Type: domain.DutySleeperBerth, Start: 16, End: 17.75},
		{Type: domain.DutyDriving, Start: 17.75, End: 19},
		{Type: domain.DutyOnDuty, Start: 19, End: 22},
		{Type: domain.DutyOffDuty, Start: 22, End: 24},
	}
}

// Validate checks the caps are usable and the template partitions
// [0, 24] into ordered, gap-free, non-overlapping blocks.
func (r Rules) Validate() error {
	if r.MaxDailyDrivingHours <= 0 {
		return errors.New("validate rules: max daily driving hours must be positive")
	}
	if r.MaxCycleHours <= 0 {
		return errors.New("validate rules: max cycle hours must be positive")
	}
	if r.FuelStopHours < 0 {
		return errors.New("validate rules: fuel stop hours must not be negative")
	}
	if r.DefaultSpeedMPH <= 0 {
		return errors.New("validate rules: default speed must be positive")
	}
	if r.MaxDays < 1 {
		return errors.New("validate rules: max days must be at least 1")
	}
	if len(r.Template) == 0 {
		return errors.New("validate rules: template must not be empty")
	}

	prevEnd := 0.0
	for i, b := range r.Template {
		switch b.Type {
		case domain.DutyDriving, domain.DutyOnDuty, domain.DutyOffDuty, domain.DutySleeperBerth:
		default:
			return fmt.Errorf("validate rules: block #%d: unknown duty status %q", i+1, b.Type)
		}
		if math.Abs(b.Start-prevEnd) > epsilon {
			return fmt.Errorf("validate rules: block #%d starts at %v, want %v", i+1, b.Start, prevEnd)
		}
		if b.End <= b.Start {
			return fmt.Errorf("validate rules: block #%d is empty or reversed", i+1)
		}
		prevEnd = b.End
	}
	if math.Abs(prevEnd-DayHours) > epsilon {
		return fmt.Errorf("validate rules: template ends at %v, want %v", prevEnd, DayHours)
	}

	return nil
}

func (r Rules) clone() Rules {
	r.Template = slices.Clone(r.Template)
	return r
}
