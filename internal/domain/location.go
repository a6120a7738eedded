package domain

// PlaceKind classifies a stop in a day plan.
type PlaceKind string

const (
	KindAttraction PlaceKind = "attraction"
	KindRestaurant PlaceKind = "restaurant"
	KindHotel      PlaceKind = "hotel"
)

// Represents a resolved place that can be visited.
// Locations are produced by geocoding or place search and treated as
// immutable afterwards; routing code only reads the coordinates.
type Location struct {
	Name    string
	Coords  Coordinates
	Address string
	Kind    PlaceKind
}

// DistanceMatrix holds pairwise distances in kilometers.
// Entry [i][j] is the distance from location i to location j.
type DistanceMatrix [][]float64

// Size returns the number of locations covered by the matrix.
func (m DistanceMatrix) Size() int { return len(m) }

// TourDistance returns the closed-tour length of route: the sum of each
// consecutive leg plus the leg from the last stop back to the first.
func (m DistanceMatrix) TourDistance(route []int) float64 {
	if len(route) < 2 {
		return 0
	}

	total := 0.0
	for i := 0; i < len(route)-1; i++ {
		total += m[route[i]][route[i+1]]
	}
	total += m[route[len(route)-1]][route[0]]

	return total
}
