package handlers

import (
	"context"
	"itinerary-service/internal/api/dto"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/services"
	"net/http"
	"time"
)

const maxRouteStops = 200

// RouteHandler orders caller-supplied locations with OptimizeRoute.
type RouteHandler struct {
	Defaults services.AnnealingConfig
	// Timeout caps the search; the best route so far is returned.
	Timeout time.Duration
}

func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.OptimizeRouteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Locations) > maxRouteStops {
		writeError(w, r, http.StatusBadRequest, "too many locations")
		return
	}
	if msg := validateAnnealing(req); msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	locations := make([]domain.Location, 0, len(req.Locations))
	for _, l := range req.Locations {
		locations = append(locations, fromLocationDTO(l))
	}

	cfg := h.Defaults
	if req.InitialTemperature > 0 {
		cfg.InitialTemperature = req.InitialTemperature
	}
	if req.CoolingRate > 0 {
		cfg.CoolingRate = req.CoolingRate
	}
	if req.MaxIterations > 0 {
		cfg.MaxIterations = req.MaxIterations
	}
	if req.MinTemperature > 0 {
		cfg.MinTemperature = req.MinTemperature
	}
	cfg.Seed = req.Seed

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	res := services.OptimizeRoute(ctx, locations, cfg)

	out := dto.OptimizeRouteResponse{
		Locations:         make([]dto.LocationDTO, 0, len(res.Locations)),
		Order:             res.Order,
		InitialDistanceKm: res.InitialDistanceKm,
		BestDistanceKm:    res.BestDistanceKm,
		Iterations:        res.Iterations,
		Accepted:          res.Accepted,
		Seed:              res.Seed,
		Degenerate:        res.Degenerate,
	}
	if out.Order == nil {
		out.Order = []int{}
	}
	for _, l := range res.Locations {
		out.Locations = append(out.Locations, toLocationDTO(l))
	}

	writeJSON(w, r, http.StatusOK, out)
}

// validateAnnealing rejects tuning values outside their ranges. Zero means
// "use the default" and is always accepted.
func validateAnnealing(req dto.OptimizeRouteRequest) string {
	switch {
	case req.CoolingRate < 0 || req.CoolingRate >= 1:
		return "cooling_rate must be in (0, 1)"
	case req.InitialTemperature < 0:
		return "initial_temperature must be positive"
	case req.MinTemperature < 0:
		return "min_temperature must be positive"
	case req.MaxIterations < 0:
		return "max_iterations must not be negative"
	}
	return ""
}
