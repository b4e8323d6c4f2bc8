package services

import (
	"eld-trip-service/internal/domain"
	"math"
)

// EnrouteLabel marks a day that neither starts nor ends at a named location.
const EnrouteLabel = "Enroute"

// Shortest OFF_DUTY segment reported as a rest stop.
const minOffDutyRestHours = 0.5

// EnrichLogs turns engine day records into printable log sheets and extracts
// the rest stops along the route. Driving miles within a day are estimated
// with avgSpeed so rest stops can be placed by mile marker.
func EnrichLogs(trip *domain.Trip, days []domain.DayLog, avgSpeed float64) ([]domain.DailyLogSheet, []domain.RestStop) {
	sheets := make([]domain.DailyLogSheet, 0, len(days))
	rests := make([]domain.RestStop, 0, len(days)*2)

	base := trip.CreatedAt
	cumulativeMiles := 0.0

	for _, day := range days {
		sheet := domain.DailyLogSheet{
			DayLog: day,
			Date:   base.AddDate(0, 0, day.Day-1).Format("2006-01-02"),
			From:   fromLabel(trip, day),
			To:     toLabel(trip, day, len(days)),
			Totals: map[domain.DutyStatus]float64{
				domain.DutyDriving:      0,
				domain.DutyOnDuty:       0,
				domain.DutyOffDuty:      0,
				domain.DutySleeperBerth: 0,
			},
		}

		drivenMiles := 0.0
		for _, act := range day.Activities {
			sheet.Totals[act.Type] += act.Duration
			if act.Type == domain.DutyDriving {
				drivenMiles += act.Duration * avgSpeed
			}

			if isRestStop(act) {
				rests = append(rests, domain.RestStop{
					Day:        day.Day,
					Type:       act.Type,
					Start:      act.Start,
					Duration:   act.Duration,
					MileMarker: round2(cumulativeMiles + drivenMiles),
				})
			}
		}
		for k, v := range sheet.Totals {
			sheet.Totals[k] = round4(v)
		}

		cumulativeMiles += day.MilesDriven
		sheets = append(sheets, sheet)
	}

	return sheets, rests
}

func fromLabel(trip *domain.Trip, day domain.DayLog) string {
	if day.Day == 1 {
		return trip.CurrentLocation
	}
	return EnrouteLabel
}

// The last day always ends at the dropoff, even when it is also day 1.
func toLabel(trip *domain.Trip, day domain.DayLog, totalDays int) string {
	switch {
	case day.Day == totalDays:
		return trip.DropoffLocation
	case day.Day == 1 && day.MilesDriven == 0:
		return trip.PickupLocation
	default:
		return EnrouteLabel
	}
}

func isRestStop(act domain.Activity) bool {
	switch act.Type {
	case domain.DutySleeperBerth:
		return act.Duration > 0
	case domain.DutyOffDuty:
		return act.Duration >= minOffDutyRestHours
	default:
		return false
	}
}

func round2(x float64) float64 { return math.RoundToEven(x*100) / 100 }
func round4(x float64) float64 { return math.RoundToEven(x*10_000) / 10_000 }
