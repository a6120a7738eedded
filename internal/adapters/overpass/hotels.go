package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/httpx"
	"itinerary-service/internal/platform/obs"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://overpass-api.de"

type Config struct {
	BaseURL string
	Timeout time.Duration

	InitialRadius int
	RadiusStep    int
	MaxRadius     int
	Limit         int
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.InitialRadius <= 0 {
		c.InitialRadius = 300
	}
	if c.RadiusStep <= 0 {
		c.RadiusStep = 300
	}
	if c.MaxRadius <= 0 {
		c.MaxRadius = 10000
	}
	if c.Limit <= 0 {
		c.Limit = 1
	}
	return c
}

// HotelFinder looks up OpenStreetMap nodes tagged tourism=hotel.
// Overpass nodes rarely carry a full address, so callers are expected to
// reverse geocode the result when Address is empty.
type HotelFinder struct {
	http *httpx.Client
	cfg  Config
}

func NewHotelFinder(cfg Config) *HotelFinder {
	cfg = cfg.withDefaults()
	return &HotelFinder{http: httpx.NewClient(cfg.Timeout), cfg: cfg}
}

type interpreterResponse struct {
	Elements []struct {
		Type string            `json:"type"`
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

func (f *HotelFinder) FindNearby(
	ctx context.Context,
	coords domain.Coordinates,
	kind domain.PlaceKind,
) (_ []domain.Location, err error) {
	defer obs.Time(ctx, "overpass.FindNearby")(&err)

	if kind != domain.KindHotel {
		return nil, fmt.Errorf("overpass search: unsupported place kind %q", kind)
	}

	hotels := []domain.Location{}
	for radius := f.cfg.InitialRadius; radius <= f.cfg.MaxRadius; radius += f.cfg.RadiusStep {
		found, err := f.query(ctx, hotelQuery(coords, radius))
		if err != nil {
			return nil, fmt.Errorf("overpass search radius=%d: %w", radius, err)
		}
		hotels = append(hotels, found...)

		if len(hotels) >= f.cfg.Limit {
			break
		}
	}

	return hotels, nil
}

func hotelQuery(c domain.Coordinates, radius int) string {
	return fmt.Sprintf(
		`[out:json];node["tourism"="hotel"](around:%d,%s);out;`,
		radius, c.LatLon(),
	)
}

func (f *HotelFinder) query(ctx context.Context, q string) ([]domain.Location, error) {
	endpoint := f.cfg.BaseURL + "/api/interpreter"
	form := url.Values{"data": {q}}.Encode()

	resp, err := f.http.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := f.http.NewRequest(ctx, http.MethodPost, endpoint, strings.NewReader(form))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded interpreterResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w", err)
	}

	out := make([]domain.Location, 0, len(decoded.Elements))
	for _, e := range decoded.Elements {
		name := strings.TrimSpace(e.Tags["name"])
		if e.Type != "node" || name == "" {
			continue
		}
		out = append(out, domain.Location{
			Name:    name,
			Coords:  domain.Coordinates{Lat: e.Lat, Lon: e.Lon},
			Address: address(e.Tags),
		})
	}

	return out, nil
}

// address assembles addr:* tags; empty when the node has none.
func address(tags map[string]string) string {
	parts := []string{}
	for _, k := range []string{"addr:city", "addr:district", "addr:street", "addr:housenumber"} {
		if v := strings.TrimSpace(tags[k]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
