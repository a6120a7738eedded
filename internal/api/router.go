package api

import (
	"itinerary-service/internal/api/handlers"
	"itinerary-service/internal/ports"
	"itinerary-service/internal/services"
	"net/http"
	"time"
)

// Dependencies are the collaborators and defaults the HTTP layer needs.
type Dependencies struct {
	Attractions ports.AttractionRepository
	Planner     services.ItineraryDeps

	Mode              string
	AttractionsPerDay int
	Annealing         services.AnnealingConfig
	AnnealingTimeout  time.Duration
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	attractions := &handlers.AttractionHandler{Repo: deps.Attractions}
	routes := &handlers.RouteHandler{
		Defaults: deps.Annealing,
		Timeout:  deps.AnnealingTimeout,
	}
	itineraries := &handlers.ItineraryHandler{
		Attractions:       deps.Attractions,
		Deps:              deps.Planner,
		Mode:              deps.Mode,
		AttractionsPerDay: deps.AttractionsPerDay,
		Annealing:         deps.Annealing,
		AnnealingTimeout:  deps.AnnealingTimeout,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/attractions", attractions.List)
	mux.HandleFunc("/routes/optimize", routes.Optimize)
	mux.HandleFunc("/schedules/stay-times", handlers.StayTimes)
	mux.HandleFunc("/itineraries", itineraries.Serve)

	return requestIDMiddleware(loggingMiddleware(mux))
}
