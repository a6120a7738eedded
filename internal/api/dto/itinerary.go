package dto

import "time"

// ItineraryRequest plans the listed attractions, or the seeded ones when
// Attractions is empty.
type ItineraryRequest struct {
	Attractions       []string `json:"attractions"`
	Mode              string   `json:"mode"`
	AttractionsPerDay int      `json:"attractions_per_day"`
	Seed              uint64   `json:"seed"`
	Persist           bool     `json:"persist"`
}

type StopResponse struct {
	LocationDTO
	Window string `json:"window"`
}

type DayResponse struct {
	DayNumber     int            `json:"day_number,omitempty"`
	Stops         []StopResponse `json:"stops"`
	TravelMinutes []int          `json:"travel_minutes"`
	CreatedAt     time.Time      `json:"created_at"`
}

type ItineraryResponse struct {
	Days            []DayResponse `json:"days"`
	TotalDistanceKm float64       `json:"total_distance_km"`
	Warnings        []string      `json:"warnings"`
}

type ListDaysResponse struct {
	Days []DayResponse `json:"days"`
}
