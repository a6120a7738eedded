package ports

import (
	"context"
	"itinerary-service/internal/domain"
)

// Port: a boundary for retrieving the configured attraction list.
type AttractionRepository interface {
	// Retrieve all attraction names available for planning.
	ListAttractions(ctx context.Context) ([]string, error)
}

// Port: persistence for planned days.
type ScheduleRepository interface {
	// Store a day plan and return the day number assigned to it.
	SaveDay(ctx context.Context, day domain.DayPlan) (int, error)
	// Return all stored day plans ordered by day number.
	ListDays(ctx context.Context) ([]domain.DayPlan, error)
}
