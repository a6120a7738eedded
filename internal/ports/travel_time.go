package ports

import (
	"context"
	"itinerary-service/internal/domain"
)

// Travel distance and duration for a single leg.
type LegResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// Contract for estimating travel time along an ordered list of stops.
type TravelTimeEstimator interface {
	// Return one duration in whole minutes per consecutive pair of stops.
	TravelTimes(ctx context.Context, stops []domain.Location, mode string) ([]int, error)
}

// Persistent cache of leg results keyed by origin and destination strings.
type TravelTimeCache interface {
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]LegResult, error)
	PutMany(ctx context.Context, origin string, results map[string]LegResult) error
}
