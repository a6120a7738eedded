package handlers

import (
	"errors"
	"itinerary-service/internal/api/dto"
	"itinerary-service/internal/ports"
	"itinerary-service/internal/services"
	"log"
	"net/http"
	"time"
)

// ItineraryHandler plans multi-day itineraries and lists persisted days.
type ItineraryHandler struct {
	Attractions ports.AttractionRepository
	Deps        services.ItineraryDeps

	Mode              string
	AttractionsPerDay int
	Annealing         services.AnnealingConfig
	AnnealingTimeout  time.Duration
}

// Serve dispatches GET (list stored days) and POST (plan) on one path.
func (h *ItineraryHandler) Serve(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Plan(w, r)
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ItineraryHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.ItineraryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.AttractionsPerDay < 0 {
		writeError(w, r, http.StatusBadRequest, "attractions_per_day must not be negative")
		return
	}
	if req.Persist && h.Deps.Schedules == nil {
		writeError(w, r, http.StatusBadRequest, "persistence is not configured")
		return
	}

	names := req.Attractions
	if len(names) == 0 && h.Attractions != nil {
		var err error
		names, err = h.Attractions.ListAttractions(r.Context())
		if err != nil {
			log.Printf("list attractions failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}
	if len(names) == 0 {
		writeError(w, r, http.StatusBadRequest, "attractions are required")
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = h.Mode
	}
	perDay := req.AttractionsPerDay
	if perDay == 0 {
		perDay = h.AttractionsPerDay
	}
	annealing := h.Annealing
	annealing.Seed = req.Seed

	it, err := services.PlanItinerary(r.Context(), services.PlanItineraryRequest{
		Attractions:       names,
		Mode:              mode,
		AttractionsPerDay: perDay,
		Annealing:         annealing,
		AnnealingTimeout:  h.AnnealingTimeout,
		Persist:           req.Persist,
	}, h.Deps)
	if errors.Is(err, services.ErrInvalidInput) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("plan itinerary failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ItineraryResponse{
		Days:            make([]dto.DayResponse, 0, len(it.Days)),
		TotalDistanceKm: it.TotalDistanceKm,
		Warnings:        it.Warnings,
	}
	for _, d := range it.Days {
		res.Days = append(res.Days, toDayResponse(d))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ItineraryHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Deps.Schedules == nil {
		writeJSON(w, r, http.StatusOK, dto.ListDaysResponse{Days: []dto.DayResponse{}})
		return
	}

	days, err := h.Deps.Schedules.ListDays(r.Context())
	if err != nil {
		log.Printf("list itinerary days failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDaysResponse{Days: make([]dto.DayResponse, 0, len(days))}
	for _, d := range days {
		res.Days = append(res.Days, toDayResponse(d))
	}

	writeJSON(w, r, http.StatusOK, res)
}
