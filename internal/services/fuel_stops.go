package services

import "eld-trip-service/internal/domain"

// FuelStopIntervalMiles is the spacing of proposed refuelling points.
const FuelStopIntervalMiles = 1000.0

// FuelStopMarkers proposes a fuel stop every FuelStopIntervalMiles strictly
// before the end of the route. The schedule engine only uses whether the
// list is empty; it inserts a single physical stop per trip.
func FuelStopMarkers(distanceMiles float64) []domain.FuelStop {
	stops := make([]domain.FuelStop, 0, int(max(0, distanceMiles)/FuelStopIntervalMiles))
	for marker := FuelStopIntervalMiles; distanceMiles > marker; marker += FuelStopIntervalMiles {
		stops = append(stops, domain.FuelStop{MileMarker: marker, Reason: domain.ReasonFuelStop})
	}
	return stops
}
