package google

import (
	"context"
	"encoding/json"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/obs"
	"net/http"
	"net/url"
	"strconv"
)

type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name     string `json:"name"`
		Vicinity string `json:"vicinity"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// FindNearby searches places of kind around coords, widening the radius
// until enough named places are found. Only restaurants are supported.
func (c *Client) FindNearby(
	ctx context.Context,
	coords domain.Coordinates,
	kind domain.PlaceKind,
) (_ []domain.Location, err error) {
	defer obs.Time(ctx, "google.FindNearby")(&err)

	if kind != domain.KindRestaurant {
		return nil, fmt.Errorf("google nearby search: unsupported place kind %q", kind)
	}

	places := []domain.Location{}
	for radius := c.cfg.InitialRadius; radius <= c.cfg.MaxRadius; radius += c.cfg.RadiusStep {
		found, err := c.nearby(ctx, coords, radius, string(kind))
		if err != nil {
			return nil, fmt.Errorf("google nearby search radius=%d: %w", radius, err)
		}
		places = append(places, found...)

		if len(places) >= c.cfg.Limit {
			break
		}
	}

	return places, nil
}

func (c *Client) nearby(
	ctx context.Context,
	coords domain.Coordinates,
	radius int,
	placeType string,
) ([]domain.Location, error) {
	endpoint := c.cfg.BaseURL + "/maps/api/place/nearbysearch/json"

	params := url.Values{}
	params.Set("location", coords.LatLon())
	params.Set("radius", strconv.Itoa(radius))
	params.Set("type", placeType)
	params.Set("key", c.cfg.APIKey)
	params.Set("language", c.cfg.Language)

	resp, err := c.http.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := c.http.NewRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.URL.RawQuery = params.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode nearby response: %w", err)
	}
	if err := statusError(decoded.Status); err != nil {
		return nil, err
	}

	out := make([]domain.Location, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		if r.Name == "" {
			continue
		}
		out = append(out, domain.Location{
			Name:    r.Name,
			Coords:  domain.Coordinates{Lat: r.Geometry.Location.Lat, Lon: r.Geometry.Location.Lng},
			Address: r.Vicinity,
		})
	}

	return out, nil
}
