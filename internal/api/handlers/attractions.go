package handlers

import (
	"itinerary-service/internal/api/dto"
	"itinerary-service/internal/ports"
	"log"
	"net/http"
)

// AttractionHandler exposes the seeded attraction list.
type AttractionHandler struct {
	Repo ports.AttractionRepository
}

func (h *AttractionHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	names, err := h.Repo.ListAttractions(r.Context())
	if err != nil {
		log.Printf("list attractions failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListAttractionsResponse{Attractions: names})
}
