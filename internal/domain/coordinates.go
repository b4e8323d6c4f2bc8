package domain

import "strconv"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lat, lon], the order used by map clients.
func (c Coordinates) LatLon() []float64 { return []float64{c.Lat, c.Lon} }

// Return coordinates as "lon,lat", the order expected by OSRM path segments.
func (c Coordinates) LonLatString() string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}
