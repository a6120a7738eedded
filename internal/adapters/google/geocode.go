package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/obs"
	"log"
	"net/http"
	"net/url"
)

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves query to a Location named after the query itself.
// Cached results are served without calling out.
func (c *Client) Geocode(ctx context.Context, query string) (_ domain.Location, err error) {
	defer obs.Time(ctx, "google.Geocode")(&err)

	norm := normalize(query)
	if norm == "" {
		return domain.Location{}, errors.New("geocode: query must be non-empty")
	}

	if c.cache != nil {
		hits, err := c.cache.GetMany(ctx, []string{norm})
		if err != nil {
			return domain.Location{}, fmt.Errorf("geocode: get geocode cache: %w", err)
		}
		if loc, ok := hits[norm]; ok {
			return loc, nil
		}
	}

	params := url.Values{}
	params.Set("address", norm)
	decoded, err := c.geocodeRequest(ctx, params)
	if err != nil {
		return domain.Location{}, fmt.Errorf("geocode %q: %w", norm, err)
	}
	if len(decoded.Results) == 0 {
		return domain.Location{}, fmt.Errorf("geocode %q: %w", norm, ErrNoResults)
	}

	r := decoded.Results[0]
	loc := domain.Location{
		Name:    norm,
		Coords:  domain.Coordinates{Lat: r.Geometry.Location.Lat, Lon: r.Geometry.Location.Lng},
		Address: r.FormattedAddress,
	}

	if c.cache != nil {
		if err := c.cache.PutMany(ctx, map[string]domain.Location{norm: loc}); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return loc, nil
}

// ReverseGeocode returns the formatted address for coordinates, or
// UnknownAddress when Google has no match.
func (c *Client) ReverseGeocode(ctx context.Context, coords domain.Coordinates) (_ string, err error) {
	defer obs.Time(ctx, "google.ReverseGeocode")(&err)

	params := url.Values{}
	params.Set("latlng", coords.LatLon())
	decoded, err := c.geocodeRequest(ctx, params)
	if err != nil {
		return "", fmt.Errorf("reverse geocode %s: %w", coords.LatLon(), err)
	}

	if len(decoded.Results) == 0 || decoded.Results[0].FormattedAddress == "" {
		return UnknownAddress, nil
	}

	return decoded.Results[0].FormattedAddress, nil
}

func (c *Client) geocodeRequest(ctx context.Context, params url.Values) (*geocodeResponse, error) {
	endpoint := c.cfg.BaseURL + "/maps/api/geocode/json"

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

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	if err := statusError(decoded.Status); err != nil {
		return nil, err
	}

	return &decoded, nil
}

// statusError maps Google's in-body status to an error. ZERO_RESULTS is
// reported through an empty result list instead.
func statusError(status string) error {
	switch status {
	case "", "OK", "ZERO_RESULTS":
		return nil
	default:
		return fmt.Errorf("google status %s", status)
	}
}
