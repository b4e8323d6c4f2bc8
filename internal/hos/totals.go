package hos

import "eld-trip-service/internal/domain"

// AverageSpeed returns miles/hours when both are positive, else fallback.
func AverageSpeed(hours, miles, fallback float64) float64 {
	if hours > 0 && miles > 0 {
		return miles / hours
	}
	return fallback
}

// TotalRegulatedHours sums driving and on-duty hours across all days.
func TotalRegulatedHours(days []domain.DayLog) float64 {
	total := 0.0
	for _, d := range days {
		total += d.DrivingHours + d.OnDutyHours
	}
	return round4(total)
}

// TotalMiles sums the per-day mileage estimates. The result can differ
// slightly from the routed distance because each day is rounded.
func TotalMiles(days []domain.DayLog) float64 {
	total := 0.0
	for _, d := range days {
		total += d.MilesDriven
	}
	return round2(total)
}
