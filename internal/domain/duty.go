package domain

// DutyStatus is one of the four ELD duty statuses a driver can be in.
type DutyStatus string

const (
	DutyDriving      DutyStatus = "DRIVING"
	DutyOnDuty       DutyStatus = "ON_DUTY"
	DutyOffDuty      DutyStatus = "OFF_DUTY"
	DutySleeperBerth DutyStatus = "SLEEPER_BERTH"
)

// Reasons attached to synthetic segments produced by the schedule engine.
const (
	ReasonFuelStop    = "Fuel stop"
	ReasonPostArrival = "Post-arrival On Duty"
)

// Represents one contiguous time interval within a simulated day.
// Start and End are hours since midnight; Duration is End-Start rounded
// to four decimals.
type Activity struct {
	Type     DutyStatus `json:"type"`
	Start    float64    `json:"start"`
	End      float64    `json:"end"`
	Duration float64    `json:"duration"`
	Reason   string     `json:"reason,omitempty"`
}

// Represents one simulated calendar day of the driver's log.
// The four category sums always add up to TotalHours (24 for a full day).
type DayLog struct {
	Day          int        `json:"day"`
	Activities   []Activity `json:"activities"`
	DrivingHours float64    `json:"driving_hours"`
	OnDutyHours  float64    `json:"on_duty_hours"`
	OffDutyHours float64    `json:"off_duty_hours"`
	SleeperHours float64    `json:"sleeper_hours"`
	TotalHours   float64    `json:"total_hours"`
	MilesDriven  float64    `json:"miles_driven"`
}
