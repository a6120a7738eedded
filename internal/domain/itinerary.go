package domain

import "time"

// Represents a single stop of a day plan.
// Window is empty until stay times have been allocated for the day.
type Stop struct {
	Location Location
	Window   string
}

// Represents the plan for one day of a trip.
// TravelMinutes[i] is the estimated travel time from Stops[i] to Stops[i+1].
// DayNumber is assigned when the plan is persisted.
type DayPlan struct {
	DayNumber     int
	Stops         []Stop
	TravelMinutes []int
	CreatedAt     time.Time
}

// Represents a multi-day itinerary assembled from a set of attractions.
type Itinerary struct {
	Days            []DayPlan
	TotalDistanceKm float64
	Warnings        []string
}
