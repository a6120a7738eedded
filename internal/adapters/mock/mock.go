package mock

import (
	"context"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/ports"
	"sync"
)

// Geocoder resolves names from a fixed table.
type Geocoder struct {
	m       map[string]domain.Location
	Address string
}

func NewGeocoder(locations []domain.Location) *Geocoder {
	m := make(map[string]domain.Location, len(locations))
	for _, l := range locations {
		m[l.Name] = l
	}
	return &Geocoder{m: m, Address: "mock address"}
}

func (g *Geocoder) Geocode(ctx context.Context, query string) (domain.Location, error) {
	l, ok := g.m[query]
	if !ok {
		return domain.Location{}, fmt.Errorf("no geocode result for %q", query)
	}
	return l, nil
}

func (g *Geocoder) ReverseGeocode(ctx context.Context, c domain.Coordinates) (string, error) {
	return g.Address, nil
}

// PlaceFinder returns the same candidates for every search of a kind and
// records the centers it was asked about.
type PlaceFinder struct {
	mu      sync.Mutex
	byKind  map[domain.PlaceKind][]domain.Location
	Centers []domain.Coordinates
}

func NewPlaceFinder(byKind map[domain.PlaceKind][]domain.Location) *PlaceFinder {
	return &PlaceFinder{byKind: byKind}
}

func (p *PlaceFinder) FindNearby(ctx context.Context, c domain.Coordinates, kind domain.PlaceKind) ([]domain.Location, error) {
	p.mu.Lock()
	p.Centers = append(p.Centers, c)
	p.mu.Unlock()

	return append([]domain.Location(nil), p.byKind[kind]...), nil
}

// TravelTimes reports a fixed duration for every leg.
type TravelTimes struct {
	Minutes int
}

func (t TravelTimes) TravelTimes(ctx context.Context, stops []domain.Location, mode string) ([]int, error) {
	if len(stops) < 2 {
		return []int{}, nil
	}
	out := make([]int, len(stops)-1)
	for i := range out {
		out[i] = t.Minutes
	}
	return out, nil
}

// ScheduleRepository keeps saved days in memory.
type ScheduleRepository struct {
	mu   sync.Mutex
	days []domain.DayPlan
}

func (r *ScheduleRepository) SaveDay(ctx context.Context, day domain.DayPlan) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day.DayNumber = len(r.days) + 1
	r.days = append(r.days, day)
	return day.DayNumber, nil
}

func (r *ScheduleRepository) ListDays(ctx context.Context) ([]domain.DayPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]domain.DayPlan(nil), r.days...), nil
}

// AttractionRepository serves a fixed attraction list.
type AttractionRepository struct {
	Names []string
}

func (r AttractionRepository) ListAttractions(ctx context.Context) ([]string, error) {
	return append([]string(nil), r.Names...), nil
}

var (
	_ ports.Geocoder             = (*Geocoder)(nil)
	_ ports.PlaceFinder          = (*PlaceFinder)(nil)
	_ ports.TravelTimeEstimator  = TravelTimes{}
	_ ports.ScheduleRepository   = (*ScheduleRepository)(nil)
	_ ports.AttractionRepository = AttractionRepository{}
)
