package services

import (
	"context"
	"errors"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/obs"
	"itinerary-service/internal/ports"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTransportMode is the travel mode used when a request leaves it empty.
const DefaultTransportMode = "car"

// geocodeConcurrency bounds parallel geocoding calls per itinerary.
const geocodeConcurrency = 5

type PlanItineraryRequest struct {
	Attractions       []string
	Mode              string
	AttractionsPerDay int
	Annealing         AnnealingConfig
	// AnnealingTimeout bounds route optimization; zero means no bound.
	AnnealingTimeout time.Duration
	Persist          bool
}

// ItineraryDeps groups the collaborators used to assemble an itinerary.
// Schedules may be nil when nothing is persisted.
type ItineraryDeps struct {
	Geocoder    ports.Geocoder
	Restaurants ports.PlaceFinder
	Hotels      ports.PlaceFinder
	Travel      ports.TravelTimeEstimator
	Schedules   ports.ScheduleRepository
}

type dayResult struct {
	plan     domain.DayPlan
	warnings []string
}

// PlanItinerary turns a list of attraction names into day plans.
//
// Attractions are geocoded, ordered by OptimizeRoute and split into days.
// Each day gets a lunch stop after its first attraction, a dinner stop and a
// hotel near its last attraction, travel-time estimates and, when the day
// has the full six stops, stay windows from AllocateStayTimes. Days are
// planned concurrently, each with its own random source derived from the
// annealing seed.
func PlanItinerary(
	ctx context.Context,
	req PlanItineraryRequest,
	deps ItineraryDeps,
) (_ *domain.Itinerary, err error) {
	defer obs.Time(ctx, "itinerary.Plan")(&err)

	if deps.Geocoder == nil || deps.Restaurants == nil || deps.Hotels == nil || deps.Travel == nil {
		return nil, errors.New("plan itinerary: geocoder, place finders and travel estimator are required")
	}

	mode := strings.TrimSpace(req.Mode)
	if mode == "" {
		mode = DefaultTransportMode
	}

	perDay := req.AttractionsPerDay
	if perDay == 0 {
		perDay = DefaultAttractionsPerDay
	}

	itinerary := &domain.Itinerary{Days: []domain.DayPlan{}, Warnings: []string{}}

	located, warnings, err := geocodeAttractions(ctx, deps.Geocoder, req.Attractions)
	if err != nil {
		return nil, fmt.Errorf("plan itinerary: %w", err)
	}
	itinerary.Warnings = append(itinerary.Warnings, warnings...)

	if len(located) == 0 {
		itinerary.Warnings = append(itinerary.Warnings, "no attractions could be located")
		return itinerary, nil
	}

	route := optimizeWithin(ctx, located, req.Annealing, req.AnnealingTimeout)
	itinerary.TotalDistanceKm = route.BestDistanceKm
	log.Printf(
		"req_id=%s op=itinerary.route stops=%d initial_km=%.2f best_km=%.2f iterations=%d seed=%d",
		obs.RequestID(ctx), len(route.Locations), route.InitialDistanceKm, route.BestDistanceKm, route.Iterations, route.Seed,
	)

	days, err := SplitIntoDays(route.Locations, perDay)
	if err != nil {
		return nil, fmt.Errorf("plan itinerary: %w", err)
	}

	results := make([]dayResult, len(days))
	g, gctx := errgroup.WithContext(ctx)
	for i, attractions := range days {
		// Every day owns an independent random source.
		seed := route.Seed + uint64(i) + 1
		g.Go(func() error {
			res, err := planDay(gctx, deps, i+1, attractions, mode, seed)
			if err != nil {
				return fmt.Errorf("plan itinerary: day %d: %w", i+1, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range results {
		day := r.plan
		if req.Persist && deps.Schedules != nil {
			n, err := deps.Schedules.SaveDay(ctx, day)
			if err != nil {
				return nil, fmt.Errorf("plan itinerary: save day: %w", err)
			}
			day.DayNumber = n
		}
		itinerary.Days = append(itinerary.Days, day)
		itinerary.Warnings = append(itinerary.Warnings, r.warnings...)
	}

	return itinerary, nil
}

func optimizeWithin(
	ctx context.Context,
	located []domain.Location,
	cfg AnnealingConfig,
	timeout time.Duration,
) RouteResult {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return OptimizeRoute(ctx, located, cfg)
}

func geocodeAttractions(
	ctx context.Context,
	geocoder ports.Geocoder,
	names []string,
) ([]domain.Location, []string, error) {
	found := make([]*domain.Location, len(names))
	failures := make([]error, len(names))

	var g errgroup.Group
	g.SetLimit(geocodeConcurrency)
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			failures[i] = errors.New("empty attraction name")
			continue
		}

		g.Go(func() error {
			loc, err := geocoder.Geocode(ctx, name)
			if err != nil {
				failures[i] = err
				return nil
			}
			loc.Kind = domain.KindAttraction
			found[i] = &loc
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("geocode attractions: %w", err)
	}

	located := make([]domain.Location, 0, len(names))
	warnings := []string{}
	for i, loc := range found {
		if loc == nil {
			warnings = append(warnings, fmt.Sprintf("skipped %q: %v", names[i], failures[i]))
			continue
		}
		located = append(located, *loc)
	}

	return located, warnings, nil
}

// planDay inserts lunch, dinner and hotel around the day's attractions,
// estimates travel times and allocates stay windows.
func planDay(
	ctx context.Context,
	deps ItineraryDeps,
	dayIndex int,
	attractions []domain.Location,
	mode string,
	seed uint64,
) (dayResult, error) {
	rng := rand.New(rand.NewPCG(seed, seed))
	warnings := []string{}

	first := attractions[0]
	last := attractions[len(attractions)-1]

	lunchCenter := first.Coords
	if len(attractions) >= 2 {
		lunchCenter = domain.Midpoint(attractions[0].Coords, attractions[1].Coords)
	}

	lunch, err := pickNearby(ctx, rng, deps.Restaurants, lunchCenter, domain.KindRestaurant)
	if err != nil {
		return dayResult{}, fmt.Errorf("find lunch: %w", err)
	}
	dinner, err := pickNearby(ctx, rng, deps.Restaurants, last.Coords, domain.KindRestaurant)
	if err != nil {
		return dayResult{}, fmt.Errorf("find dinner: %w", err)
	}
	hotel, err := pickNearby(ctx, rng, deps.Hotels, last.Coords, domain.KindHotel)
	if err != nil {
		return dayResult{}, fmt.Errorf("find hotel: %w", err)
	}

	if hotel != nil && hotel.Address == "" {
		addr, err := deps.Geocoder.ReverseGeocode(ctx, hotel.Coords)
		if err != nil {
			log.Printf("reverse geocode hotel %q failed: %v", hotel.Name, err)
		} else {
			hotel.Address = addr
		}
	}

	locations := make([]domain.Location, 0, domain.StopsPerDay)
	locations = append(locations, first)
	if lunch != nil {
		locations = append(locations, *lunch)
	} else {
		warnings = append(warnings, fmt.Sprintf("day %d: no restaurant found for lunch", dayIndex))
	}
	locations = append(locations, attractions[1:]...)
	if dinner != nil {
		locations = append(locations, *dinner)
	} else {
		warnings = append(warnings, fmt.Sprintf("day %d: no restaurant found for dinner", dayIndex))
	}
	if hotel != nil {
		locations = append(locations, *hotel)
	} else {
		warnings = append(warnings, fmt.Sprintf("day %d: no hotel found", dayIndex))
	}

	travel := []int{}
	if len(locations) > 1 {
		travel, err = deps.Travel.TravelTimes(ctx, locations, mode)
		if err != nil {
			return dayResult{}, fmt.Errorf("estimate travel times: %w", err)
		}
		if len(travel) != len(locations)-1 {
			return dayResult{}, fmt.Errorf(
				"estimate travel times: got %d legs for %d stops",
				len(travel), len(locations),
			)
		}
	}

	stops := make([]domain.Stop, len(locations))
	for i, loc := range locations {
		stops[i] = domain.Stop{Location: loc}
	}

	if len(stops) == domain.StopsPerDay {
		schedule, err := AllocateStayTimes(travel)
		if err != nil {
			return dayResult{}, fmt.Errorf("allocate stay times: %w", err)
		}
		for i := range stops {
			stops[i].Window = schedule[i].String()
		}
	} else {
		warnings = append(warnings, fmt.Sprintf(
			"day %d: %d stops planned, stay times need %d",
			dayIndex, len(stops), domain.StopsPerDay,
		))
	}

	return dayResult{
		plan: domain.DayPlan{
			Stops:         stops,
			TravelMinutes: travel,
			CreatedAt:     time.Now().UTC(),
		},
		warnings: warnings,
	}, nil
}

// pickNearby returns one randomly chosen candidate near c, or nil when the
// search came back empty.
func pickNearby(
	ctx context.Context,
	rng *rand.Rand,
	finder ports.PlaceFinder,
	c domain.Coordinates,
	kind domain.PlaceKind,
) (*domain.Location, error) {
	candidates, err := finder.FindNearby(ctx, c, kind)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	picked := candidates[rng.IntN(len(candidates))]
	picked.Kind = kind
	return &picked, nil
}
