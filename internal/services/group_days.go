package services

import (
	"errors"
	"itinerary-service/internal/domain"
)

// DefaultAttractionsPerDay is how many attractions share one day plan.
const DefaultAttractionsPerDay = 3

// SplitIntoDays chunks an ordered route into consecutive days of at most
// perDay attractions each. Route order is preserved; the last day may be short.
func SplitIntoDays(route []domain.Location, perDay int) ([][]domain.Location, error) {
	if perDay < 1 {
		return nil, errors.New("split into days: perDay must be positive")
	}

	days := make([][]domain.Location, 0, (len(route)+perDay-1)/perDay)
	for start := 0; start < len(route); start += perDay {
		end := start + perDay
		if end > len(route) {
			end = len(route)
		}
		days = append(days, route[start:end:end])
	}

	return days, nil
}
