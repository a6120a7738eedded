package handlers

import (
	"errors"
	"itinerary-service/internal/api/dto"
	"itinerary-service/internal/services"
	"log"
	"net/http"
)

// StayTimes turns five leg travel times into six stay windows.
func StayTimes(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.StayTimesRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	schedule, err := services.AllocateStayTimes(req.TravelTimes)
	if errors.Is(err, services.ErrInvalidInput) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("allocate stay times failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.StayTimesResponse{Windows: schedule.Strings()})
}
