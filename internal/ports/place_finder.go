package ports

import (
	"context"
	"itinerary-service/internal/domain"
)

// Contract for searching places of a given kind around a point.
type PlaceFinder interface {
	// Return named candidates near c. An empty result is not an error.
	FindNearby(ctx context.Context, c domain.Coordinates, kind domain.PlaceKind) ([]domain.Location, error)
}
