package here

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/httpx"
	"itinerary-service/internal/platform/obs"
	"itinerary-service/internal/ports"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://router.hereapi.com"

var ErrNoRoute = errors.New("here: no route")

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration

	// PaddingMinutes is added to every leg to absorb parking and walking.
	PaddingMinutes int
}

// RouteEstimator implements TravelTimeEstimator with the HERE Routing v8 API.
// Leg results are cached per transport mode and coordinate pair.
type RouteEstimator struct {
	http  *httpx.Client
	cfg   Config
	cache ports.TravelTimeCache
}

func NewRouteEstimator(cfg Config, cache ports.TravelTimeCache) (*RouteEstimator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("here api key is empty")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.PaddingMinutes < 0 {
		cfg.PaddingMinutes = 0
	}

	return &RouteEstimator{
		http:  httpx.NewClient(cfg.Timeout),
		cfg:   cfg,
		cache: cache,
	}, nil
}

// TravelTimes returns whole minutes (rounded down) plus padding for each
// consecutive pair of stops.
func (e *RouteEstimator) TravelTimes(
	ctx context.Context,
	stops []domain.Location,
	mode string,
) (_ []int, err error) {
	defer obs.Time(ctx, "here.TravelTimes")(&err)

	mode = strings.TrimSpace(mode)
	if mode == "" {
		return nil, errors.New("here travel times: mode must be non-empty")
	}
	if len(stops) < 2 {
		return []int{}, nil
	}

	out := make([]int, 0, len(stops)-1)
	for i := 0; i+1 < len(stops); i++ {
		leg, err := e.leg(ctx, stops[i].Coords, stops[i+1].Coords, mode)
		if err != nil {
			return nil, fmt.Errorf(
				"here travel times %q -> %q: %w",
				stops[i].Name, stops[i+1].Name, err,
			)
		}
		out = append(out, leg.DurationSeconds/60+e.cfg.PaddingMinutes)
	}

	return out, nil
}

func cacheOrigin(mode string, c domain.Coordinates) string {
	return mode + "|" + c.LatLon()
}

func (e *RouteEstimator) leg(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
	mode string,
) (ports.LegResult, error) {
	origin := cacheOrigin(mode, from)
	dest := to.LatLon()

	if e.cache != nil {
		hits, err := e.cache.GetMany(ctx, origin, []string{dest})
		if err != nil {
			return ports.LegResult{}, fmt.Errorf("get travel time cache: %w", err)
		}
		if r, ok := hits[dest]; ok {
			return r, nil
		}
	}

	fetched, err := e.route(ctx, from, to, mode)
	if err != nil {
		return ports.LegResult{}, err
	}

	if e.cache != nil {
		if err := e.cache.PutMany(ctx, origin, map[string]ports.LegResult{dest: fetched}); err != nil {
			log.Printf("travel time cache write failed: %v", err)
		}
	}

	return fetched, nil
}

type routesResponse struct {
	Routes []struct {
		Sections []struct {
			Summary struct {
				Duration int `json:"duration"`
				Length   int `json:"length"`
			} `json:"summary"`
		} `json:"sections"`
	} `json:"routes"`
}

func (e *RouteEstimator) route(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
	mode string,
) (ports.LegResult, error) {
	endpoint := e.cfg.BaseURL + "/v8/routes"

	params := url.Values{}
	params.Set("transportMode", mode)
	params.Set("origin", from.LatLon())
	params.Set("destination", to.LatLon())
	params.Set("return", "summary")
	params.Set("apiKey", e.cfg.APIKey)

	resp, err := e.http.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := e.http.NewRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.URL.RawQuery = params.Encode()
		return req, nil
	})
	if err != nil {
		return ports.LegResult{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded routesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.LegResult{}, fmt.Errorf("decode routes response: %w", err)
	}
	if len(decoded.Routes) == 0 || len(decoded.Routes[0].Sections) == 0 {
		return ports.LegResult{}, ErrNoRoute
	}

	var r ports.LegResult
	for _, s := range decoded.Routes[0].Sections {
		r.DurationSeconds += s.Summary.Duration
		r.DistanceMeters += s.Summary.Length
	}
	return r, nil
}
