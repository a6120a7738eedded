package dto

type LocationDTO struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address,omitempty"`
	Kind    string  `json:"kind,omitempty"`
}

type ListAttractionsResponse struct {
	Attractions []string `json:"attractions"`
}
