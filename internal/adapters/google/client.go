package google

import (
	"errors"
	"itinerary-service/internal/platform/httpx"
	"itinerary-service/internal/ports"
	"strings"
	"time"
)

const DefaultBaseURL = "https://maps.googleapis.com"

// UnknownAddress is returned by ReverseGeocode when no address matched.
const UnknownAddress = "unknown address"

var ErrNoResults = errors.New("google: no results")

// Config carries everything the client needs; nothing is read from globals.
type Config struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration

	// Nearby search starts at InitialRadius meters and widens by
	// RadiusStep until Limit named places are found or MaxRadius is passed.
	InitialRadius int
	RadiusStep    int
	MaxRadius     int
	Limit         int
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Language == "" {
		c.Language = "zh-TW"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
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

// Client implements Geocoder and PlaceFinder on top of the Google Maps
// Geocoding and Places APIs.
//
// It coordinates:
//   - Query normalization
//   - Persistent geocode caching
//   - External API calls with retry/backoff
//
// The client is safe for concurrent use.
type Client struct {
	http  *httpx.Client
	cfg   Config
	cache ports.GeocodeCache
}

func NewClient(cfg Config, cache ports.GeocodeCache) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("google api key is empty")
	}
	cfg = cfg.withDefaults()

	return &Client{
		http:  httpx.NewClient(cfg.Timeout),
		cfg:   cfg,
		cache: cache,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
