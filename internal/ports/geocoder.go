package ports

import (
	"context"
	"itinerary-service/internal/domain"
)

// Contract for resolving place names to coordinates and back.
type Geocoder interface {
	// Resolve a free-text place name or address to a Location.
	Geocode(ctx context.Context, query string) (domain.Location, error)
	// Return a human-readable address for the given coordinates.
	ReverseGeocode(ctx context.Context, c domain.Coordinates) (string, error)
}

// Persistent lookup of previously geocoded queries.
type GeocodeCache interface {
	GetMany(ctx context.Context, queries []string) (map[string]domain.Location, error)
	PutMany(ctx context.Context, results map[string]domain.Location) error
}
