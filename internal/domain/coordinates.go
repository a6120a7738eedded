package domain

import "strconv"

// Immutable geographic coordinates (latitude, longitude) in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// LatLon formats coordinates as "lat,lon", the form routing and place APIs expect.
func (c Coordinates) LatLon() string {
	return strconv.FormatFloat(c.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(c.Lon, 'f', 6, 64)
}

// Midpoint returns the arithmetic midpoint of two coordinates.
// Good enough for picking a search center between two nearby stops.
func Midpoint(a, b Coordinates) Coordinates {
	return Coordinates{
		Lat: (a.Lat + b.Lat) / 2,
		Lon: (a.Lon + b.Lon) / 2,
	}
}
