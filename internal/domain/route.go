package domain

import "github.com/twpayne/go-polyline"

// Describes the resolved driving route for a trip.
// Path and Waypoints are [lat, lon] pairs. Fallback is set when the
// routing service was unavailable and a straight-line estimate was used.
type RouteInfo struct {
	DistanceMiles float64
	DurationHours float64
	Path          [][]float64
	Waypoints     [][]float64
	Fallback      bool
}

// EncodedPolyline returns the path in Google's encoded polyline format.
func (r RouteInfo) EncodedPolyline() string {
	if len(r.Path) == 0 {
		return ""
	}
	return string(polyline.EncodeCoords(r.Path))
}

// DecodePath reverses EncodedPolyline.
func DecodePath(encoded string) ([][]float64, error) {
	if encoded == "" {
		return [][]float64{}, nil
	}
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	return coords, nil
}

// A proposed refuelling point along the route.
type FuelStop struct {
	MileMarker float64 `json:"mile_marker"`
	Reason     string  `json:"reason"`
}
