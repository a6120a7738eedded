package dto

// OptimizeRouteRequest carries the stops to order. Zero annealing fields
// take the server defaults; a zero seed picks a random one.
type OptimizeRouteRequest struct {
	Locations          []LocationDTO `json:"locations"`
	InitialTemperature float64       `json:"initial_temperature"`
	CoolingRate        float64       `json:"cooling_rate"`
	MaxIterations      int           `json:"max_iterations"`
	MinTemperature     float64       `json:"min_temperature"`
	Seed               uint64        `json:"seed"`
}

type OptimizeRouteResponse struct {
	Locations         []LocationDTO `json:"locations"`
	Order             []int         `json:"order"`
	InitialDistanceKm float64       `json:"initial_distance_km"`
	BestDistanceKm    float64       `json:"best_distance_km"`
	Iterations        int           `json:"iterations"`
	Accepted          int           `json:"accepted"`
	Seed              uint64        `json:"seed"`
	Degenerate        bool          `json:"degenerate"`
}
