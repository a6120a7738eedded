package services

import (
	"itinerary-service/internal/domain"
	"math"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance between a and b in kilometers.
func Haversine(a, b domain.Coordinates) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// BuildDistanceMatrix computes the pairwise great-circle distance matrix for
// locations. The result is symmetric with a zero diagonal.
func BuildDistanceMatrix(locations []domain.Location) domain.DistanceMatrix {
	n := len(locations)
	m := make(domain.DistanceMatrix, n)
	for i := range m {
		m[i] = make([]float64, n)
	}

	// Fill the upper triangle and mirror it so d[i][j] == d[j][i] exactly.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := Haversine(locations[i].Coords, locations[j].Coords)
			m[i][j] = d
			m[j][i] = d
		}
	}

	return m
}
