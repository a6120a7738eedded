package services

import (
	"context"
	"itinerary-service/internal/domain"
	"math"
	"math/rand/v2"
	"time"
)

// AnnealingConfig tunes the simulated-annealing route optimizer.
// Zero fields fall back to the defaults from DefaultAnnealingConfig.
type AnnealingConfig struct {
	InitialTemperature float64
	CoolingRate        float64
	MaxIterations      int
	MinTemperature     float64

	// Seed drives the run's private random source. Runs with the same seed
	// and input produce the same route. Zero picks a clock-based seed.
	Seed uint64
}

func DefaultAnnealingConfig() AnnealingConfig {
	return AnnealingConfig{
		InitialTemperature: 1000,
		CoolingRate:        0.995,
		MaxIterations:      10000,
		MinTemperature:     1e-8,
	}
}

func (c AnnealingConfig) withDefaults() AnnealingConfig {
	d := DefaultAnnealingConfig()
	if c.InitialTemperature <= 0 {
		c.InitialTemperature = d.InitialTemperature
	}
	if c.CoolingRate <= 0 || c.CoolingRate >= 1 {
		c.CoolingRate = d.CoolingRate
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = d.MaxIterations
	}
	if c.MinTemperature <= 0 {
		c.MinTemperature = d.MinTemperature
	}
	if c.Seed == 0 {
		c.Seed = uint64(time.Now().UnixNano())
	}
	return c
}

// RouteResult is the outcome of one optimization run.
type RouteResult struct {
	Locations         []domain.Location
	Order             []int
	InitialDistanceKm float64
	BestDistanceKm    float64
	Iterations        int
	Accepted          int
	Seed              uint64
	// Degenerate is set when fewer than 2 locations were given; the input
	// comes back unchanged and no search runs.
	Degenerate        bool
}

// ctx is polled every ctxCheckEvery iterations.
const ctxCheckEvery = 256

// OptimizeRoute orders locations to approximately minimize the closed-tour
// great-circle distance using simulated annealing over index permutations.
//
// Each iteration swaps two positions of the current route and accepts the
// candidate when it is shorter, or with probability exp((cur-cand)/T)
// otherwise. The temperature is multiplied by CoolingRate after every
// iteration and the loop ends at MaxIterations or when T drops below
// MinTemperature. The best route seen is returned.
//
// Fewer than two locations are returned unchanged. Cancelling ctx stops the
// search early and returns the best route found so far.
func OptimizeRoute(ctx context.Context, locations []domain.Location, cfg AnnealingConfig) RouteResult {
	cfg = cfg.withDefaults()
	n := len(locations)

	if n < 2 {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		return RouteResult{
			Locations:  locations,
			Order:      order,
			Seed:       cfg.Seed,
			Degenerate: true,
		}
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	matrix := BuildDistanceMatrix(locations)

	current := rng.Perm(n)
	currentDistance := matrix.TourDistance(current)
	initialDistance := currentDistance

	best := append([]int(nil), current...)
	bestDistance := currentDistance

	candidate := make([]int, n)
	temperature := cfg.InitialTemperature
	iterations, accepted := 0, 0

	for iterations < cfg.MaxIterations {
		if iterations%ctxCheckEvery == 0 && ctx.Err() != nil {
			break
		}
		iterations++

		copy(candidate, current)
		i, j := distinctPair(rng, n)
		candidate[i], candidate[j] = candidate[j], candidate[i]

		candidateDistance := matrix.TourDistance(candidate)

		if acceptCandidate(rng, currentDistance, candidateDistance, temperature) {
			current, candidate = candidate, current
			currentDistance = candidateDistance
			accepted++

			if candidateDistance < bestDistance {
				copy(best, current)
				bestDistance = candidateDistance
			}
		}

		temperature *= cfg.CoolingRate
		if temperature < cfg.MinTemperature {
			break
		}
	}

	ordered := make([]domain.Location, n)
	for pos, idx := range best {
		ordered[pos] = locations[idx]
	}

	return RouteResult{
		Locations:         ordered,
		Order:             best,
		InitialDistanceKm: initialDistance,
		BestDistanceKm:    bestDistance,
		Iterations:        iterations,
		Accepted:          accepted,
		Seed:              cfg.Seed,
	}
}

// distinctPair draws two different positions in [0, n) uniformly. n must be >= 2.
func distinctPair(rng *rand.Rand, n int) (int, int) {
	i := rng.IntN(n)
	j := rng.IntN(n - 1)
	if j >= i {
		j++
	}
	return i, j
}

// acceptCandidate applies the Metropolis criterion.
func acceptCandidate(rng *rand.Rand, current, candidate, temperature float64) bool {
	if candidate < current {
		return true
	}
	return rng.Float64() < math.Exp((current-candidate)/temperature)
}
