package routing

import (
	"eld-trip-service/internal/domain"
	"math"
)

const (
	EarthRadiusMiles = 3958.8
	// Assumed average speed for straight-line duration estimates.
	FallbackSpeedMPH = 55.0
	MetersPerMile    = 1609.34
)

// Haversine returns the great-circle distance between two points in miles.
func Haversine(a, b domain.Coordinates) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return EarthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// StraightLineRoute estimates a route through points leg by leg, at
// FallbackSpeedMPH. Path and waypoints are the points themselves.
func StraightLineRoute(points []domain.Coordinates) domain.RouteInfo {
	miles := 0.0
	for i := 1; i < len(points); i++ {
		miles += Haversine(points[i-1], points[i])
	}

	hours := 0.0
	if miles > 0 {
		hours = miles / FallbackSpeedMPH
	}

	return domain.RouteInfo{
		DistanceMiles: round2(miles),
		DurationHours: round2(hours),
		Path:          latLonList(points),
		Waypoints:     latLonList(points),
		Fallback:      true,
	}
}

func latLonList(points []domain.Coordinates) [][]float64 {
	out := make([][]float64, 0, len(points))
	for _, p := range points {
		out = append(out, p.LatLon())
	}
	return out
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func round2(v float64) float64 { return math.RoundToEven(v*100) / 100 }
