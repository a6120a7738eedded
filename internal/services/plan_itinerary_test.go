package services

import (
	"context"
	"itinerary-service/internal/adapters/mock"
	"itinerary-service/internal/domain"
	"strings"
	"testing"
)

func newTestDeps(t *testing.T) (ItineraryDeps, *mock.ScheduleRepository) {
	t.Helper()

	restaurants := mock.NewPlaceFinder(map[domain.PlaceKind][]domain.Location{
		domain.KindRestaurant: {
			{Name: "Din Tai Fung", Coords: domain.Coordinates{Lat: 25.0330, Lon: 121.5300}, Address: "Xinyi Rd"},
		},
	})
	hotels := mock.NewPlaceFinder(map[domain.PlaceKind][]domain.Location{
		domain.KindHotel: {
			{Name: "Grand Hotel", Coords: domain.Coordinates{Lat: 25.0790, Lon: 121.5260}},
		},
	})
	schedules := &mock.ScheduleRepository{}

	return ItineraryDeps{
		Geocoder:    mock.NewGeocoder(sampleLocations()),
		Restaurants: restaurants,
		Hotels:      hotels,
		Travel:      mock.TravelTimes{Minutes: 20},
		Schedules:   schedules,
	}, schedules
}

func attractionNames(n int) []string {
	locs := sampleLocations()
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		names = append(names, locs[i].Name)
	}
	return names
}

func TestPlanItineraryFullDays(t *testing.T) {
	deps, schedules := newTestDeps(t)

	it, err := PlanItinerary(context.Background(), PlanItineraryRequest{
		Attractions: attractionNames(6),
		Annealing:   AnnealingConfig{Seed: 5},
		Persist:     true,
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(it.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(it.Days))
	}
	if len(it.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", it.Warnings)
	}
	if it.TotalDistanceKm <= 0 {
		t.Fatalf("expected positive total distance, got %v", it.TotalDistanceKm)
	}

	wantKinds := []domain.PlaceKind{
		domain.KindAttraction, domain.KindRestaurant, domain.KindAttraction,
		domain.KindAttraction, domain.KindRestaurant, domain.KindHotel,
	}
	wantWindows := []string{"09:00~11:40", "12:00~13:00", "13:20~15:20", "15:40~17:40", "18:00~19:00", "19:20~"}

	for d, day := range it.Days {
		if day.DayNumber != d+1 {
			t.Errorf("day %d has DayNumber %d", d+1, day.DayNumber)
		}
		if len(day.Stops) != domain.StopsPerDay {
			t.Fatalf("day %d: expected %d stops, got %d", d+1, domain.StopsPerDay, len(day.Stops))
		}
		if len(day.TravelMinutes) != domain.StopsPerDay-1 {
			t.Fatalf("day %d: expected %d legs, got %d", d+1, domain.StopsPerDay-1, len(day.TravelMinutes))
		}
		for i, s := range day.Stops {
			if s.Location.Kind != wantKinds[i] {
				t.Errorf("day %d stop %d kind = %q, want %q", d+1, i+1, s.Location.Kind, wantKinds[i])
			}
			if s.Window != wantWindows[i] {
				t.Errorf("day %d stop %d window = %q, want %q", d+1, i+1, s.Window, wantWindows[i])
			}
		}
		if hotel := day.Stops[5].Location; hotel.Address != "mock address" {
			t.Errorf("day %d hotel address = %q, want reverse geocoded address", d+1, hotel.Address)
		}
	}

	saved, _ := schedules.ListDays(context.Background())
	if len(saved) != 2 {
		t.Fatalf("expected 2 persisted days, got %d", len(saved))
	}
}

func TestPlanItineraryLunchBetweenFirstTwoAttractions(t *testing.T) {
	deps, _ := newTestDeps(t)
	restaurants := deps.Restaurants.(*mock.PlaceFinder)

	it, err := PlanItinerary(context.Background(), PlanItineraryRequest{
		Attractions: attractionNames(3),
		Annealing:   AnnealingConfig{Seed: 8},
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stops := it.Days[0].Stops
	wantLunch := domain.Midpoint(stops[0].Location.Coords, stops[2].Location.Coords)
	wantDinner := stops[3].Location.Coords

	found := map[domain.Coordinates]bool{}
	for _, c := range restaurants.Centers {
		found[c] = true
	}
	if !found[wantLunch] {
		t.Errorf("no lunch search at midpoint %+v; searched %+v", wantLunch, restaurants.Centers)
	}
	if !found[wantDinner] {
		t.Errorf("no dinner search near last attraction %+v; searched %+v", wantDinner, restaurants.Centers)
	}
}

func TestPlanItineraryShortLastDay(t *testing.T) {
	deps, _ := newTestDeps(t)

	it, err := PlanItinerary(context.Background(), PlanItineraryRequest{
		Attractions: attractionNames(4),
		Annealing:   AnnealingConfig{Seed: 1},
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(it.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(it.Days))
	}

	short := it.Days[1]
	if len(short.Stops) != 4 {
		t.Fatalf("expected 4 stops on the short day, got %d", len(short.Stops))
	}
	for _, s := range short.Stops {
		if s.Window != "" {
			t.Fatalf("short day should not get stay windows, got %q", s.Window)
		}
	}
	if len(it.Warnings) != 1 || !strings.Contains(it.Warnings[0], "day 2") {
		t.Fatalf("expected one warning about day 2, got %v", it.Warnings)
	}
}

func TestPlanItinerarySkipsUnknownAttractions(t *testing.T) {
	deps, _ := newTestDeps(t)

	names := append(attractionNames(3), "Atlantis", "  ")
	it, err := PlanItinerary(context.Background(), PlanItineraryRequest{
		Attractions: names,
		Annealing:   AnnealingConfig{Seed: 2},
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(it.Days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(it.Days))
	}
	if len(it.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", it.Warnings)
	}
	if !strings.Contains(it.Warnings[0], "Atlantis") {
		t.Fatalf("expected warning about Atlantis, got %q", it.Warnings[0])
	}
}

func TestPlanItineraryNoAttractions(t *testing.T) {
	deps, _ := newTestDeps(t)

	it, err := PlanItinerary(context.Background(), PlanItineraryRequest{}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(it.Days) != 0 || len(it.Warnings) != 1 {
		t.Fatalf("expected no days and one warning, got %+v", it)
	}
}

func TestPlanItineraryMissingHotel(t *testing.T) {
	deps, _ := newTestDeps(t)
	deps.Hotels = mock.NewPlaceFinder(nil)

	it, err := PlanItinerary(context.Background(), PlanItineraryRequest{
		Attractions: attractionNames(3),
		Annealing:   AnnealingConfig{Seed: 4},
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(it.Days[0].Stops); got != 5 {
		t.Fatalf("expected 5 stops without a hotel, got %d", got)
	}
	if len(it.Warnings) != 2 {
		t.Fatalf("expected hotel and stay-time warnings, got %v", it.Warnings)
	}
}

func TestPlanItineraryDeterministicWithSeed(t *testing.T) {
	deps, _ := newTestDeps(t)
	req := PlanItineraryRequest{Attractions: attractionNames(6), Annealing: AnnealingConfig{Seed: 77}}

	a, err := PlanItinerary(context.Background(), req, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := PlanItinerary(context.Background(), req, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for d := range a.Days {
		for i := range a.Days[d].Stops {
			if a.Days[d].Stops[i].Location.Name != b.Days[d].Stops[i].Location.Name {
				t.Fatalf("day %d stop %d differs between runs", d+1, i+1)
			}
		}
	}
}

func TestPlanItineraryRequiresCollaborators(t *testing.T) {
	if _, err := PlanItinerary(context.Background(), PlanItineraryRequest{}, ItineraryDeps{}); err == nil {
		t.Fatal("expected error for missing collaborators")
	}
}
