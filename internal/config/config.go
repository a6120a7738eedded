package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Cache backends.
const (
	CacheStore = "store"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the typed view of the process environment.
type Config struct {
	Port string

	// DatabaseURL selects Postgres when set; otherwise SQLitePath is used.
	DatabaseURL string
	SQLitePath  string
	SeedPath    string

	CacheBackend string
	RedisAddr    string
	RedisDB      int
	CacheTTL     time.Duration

	GoogleAPIKey   string
	GoogleBaseURL  string
	GoogleLanguage string
	OverpassURL    string
	HereAPIKey     string
	HereBaseURL    string

	TravelPaddingMinutes int
	TransportMode        string
	AttractionsPerDay    int

	InitialTemperature float64
	CoolingRate        float64
	MaxIterations      int
	MinTemperature     float64
	AnnealingTimeout   time.Duration

	UpstreamTimeout time.Duration
}

// Get returns the value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return n, nil
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return f, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return d, nil
}

// Load reads the environment. API keys are required; everything else has a
// default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           Get("PORT", "8080"),
		DatabaseURL:    Get("DATABASE_URL", ""),
		SQLitePath:     Get("SQLITE_PATH", "data/itinerary.db"),
		SeedPath:       Get("SEED_PATH", "data/seeds/attractions.json"),
		CacheBackend:   strings.ToLower(Get("CACHE_BACKEND", CacheStore)),
		RedisAddr:      Get("REDIS_ADDR", "localhost:6379"),
		GoogleAPIKey:   Get("GOOGLE_MAPS_API_KEY", ""),
		GoogleBaseURL:  Get("GOOGLE_MAPS_BASE_URL", ""),
		GoogleLanguage: Get("GOOGLE_MAPS_LANGUAGE", "zh-TW"),
		OverpassURL:    Get("OVERPASS_URL", ""),
		HereAPIKey:     Get("HERE_API_KEY", ""),
		HereBaseURL:    Get("HERE_BASE_URL", ""),
		TransportMode:  Get("TRANSPORT_MODE", "car"),
	}

	var errs []error
	intVar := func(dst *int, key string, fallback int) {
		v, err := GetInt(key, fallback)
		errs = append(errs, err)
		*dst = v
	}
	floatVar := func(dst *float64, key string, fallback float64) {
		v, err := GetFloat(key, fallback)
		errs = append(errs, err)
		*dst = v
	}
	durationVar := func(dst *time.Duration, key string, fallback time.Duration) {
		v, err := GetDuration(key, fallback)
		errs = append(errs, err)
		*dst = v
	}

	intVar(&cfg.RedisDB, "REDIS_DB", 0)
	durationVar(&cfg.CacheTTL, "CACHE_TTL", 30*24*time.Hour)
	intVar(&cfg.TravelPaddingMinutes, "TRAVEL_PADDING_MINUTES", 10)
	intVar(&cfg.AttractionsPerDay, "ATTRACTIONS_PER_DAY", 3)
	floatVar(&cfg.InitialTemperature, "SA_INITIAL_TEMPERATURE", 1000)
	floatVar(&cfg.CoolingRate, "SA_COOLING_RATE", 0.995)
	intVar(&cfg.MaxIterations, "SA_MAX_ITERATIONS", 10000)
	floatVar(&cfg.MinTemperature, "SA_MIN_TEMPERATURE", 1e-8)
	durationVar(&cfg.AnnealingTimeout, "SA_TIMEOUT", 5*time.Second)
	durationVar(&cfg.UpstreamTimeout, "UPSTREAM_TIMEOUT", 10*time.Second)

	if cfg.GoogleAPIKey == "" {
		errs = append(errs, errors.New("GOOGLE_MAPS_API_KEY is required"))
	}
	if cfg.HereAPIKey == "" {
		errs = append(errs, errors.New("HERE_API_KEY is required"))
	}
	switch cfg.CacheBackend {
	case CacheStore, CacheRedis, CacheNone:
	default:
		errs = append(errs, fmt.Errorf("CACHE_BACKEND %q: want %s, %s or %s", cfg.CacheBackend, CacheStore, CacheRedis, CacheNone))
	}
	if cfg.AttractionsPerDay < 1 {
		errs = append(errs, fmt.Errorf("ATTRACTIONS_PER_DAY must be positive, got %d", cfg.AttractionsPerDay))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}
