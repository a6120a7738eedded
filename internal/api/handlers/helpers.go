package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"itinerary-service/internal/api/dto"
	"itinerary-service/internal/domain"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// decodeBody reads exactly one JSON object with no unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

func toLocationDTO(l domain.Location) dto.LocationDTO {
	return dto.LocationDTO{
		Name:    l.Name,
		Lat:     l.Coords.Lat,
		Lon:     l.Coords.Lon,
		Address: l.Address,
		Kind:    string(l.Kind),
	}
}

func fromLocationDTO(l dto.LocationDTO) domain.Location {
	return domain.Location{
		Name:    l.Name,
		Coords:  domain.Coordinates{Lat: l.Lat, Lon: l.Lon},
		Address: l.Address,
		Kind:    domain.PlaceKind(l.Kind),
	}
}

func toDayResponse(d domain.DayPlan) dto.DayResponse {
	stops := make([]dto.StopResponse, 0, len(d.Stops))
	for _, s := range d.Stops {
		stops = append(stops, dto.StopResponse{
			LocationDTO: toLocationDTO(s.Location),
			Window:      s.Window,
		})
	}

	travel := d.TravelMinutes
	if travel == nil {
		travel = []int{}
	}

	return dto.DayResponse{
		DayNumber:     d.DayNumber,
		Stops:         stops,
		TravelMinutes: travel,
		CreatedAt:     d.CreatedAt,
	}
}
