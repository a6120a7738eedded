package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-service/internal/adapters/cache"
	"itinerary-service/internal/adapters/google"
	"itinerary-service/internal/adapters/here"
	"itinerary-service/internal/adapters/overpass"
	"itinerary-service/internal/adapters/repositories"
	"itinerary-service/internal/api"
	"itinerary-service/internal/config"
	"itinerary-service/internal/platform/db"
	"itinerary-service/internal/ports"
	"itinerary-service/internal/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis, Google, Overpass,
// HERE) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, dialect, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	// Initialize schema and seed attractions on startup for local runs.
	if err := repositories.InitSchema(ctx, store, dialect); err != nil {
		log.Fatal(err)
	}
	if n, err := repositories.SeedFromJSON(ctx, store, dialect, cfg.SeedPath); err != nil {
		log.Printf("seed skipped path=%s err=%v", cfg.SeedPath, err)
	} else {
		log.Printf("seeded attractions inserted=%d", n)
	}

	geocodeCache, travelCache, closeCache, err := openCaches(ctx, cfg, store, dialect)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	maps, err := google.NewClient(google.Config{
		APIKey:   cfg.GoogleAPIKey,
		BaseURL:  cfg.GoogleBaseURL,
		Language: cfg.GoogleLanguage,
		Timeout:  cfg.UpstreamTimeout,
	}, geocodeCache)
	if err != nil {
		log.Fatal(err)
	}

	routing, err := here.NewRouteEstimator(here.Config{
		APIKey:         cfg.HereAPIKey,
		BaseURL:        cfg.HereBaseURL,
		Timeout:        cfg.UpstreamTimeout,
		PaddingMinutes: cfg.TravelPaddingMinutes,
	}, travelCache)
	if err != nil {
		log.Fatal(err)
	}

	hotels := overpass.NewHotelFinder(overpass.Config{
		BaseURL: cfg.OverpassURL,
		Timeout: 3 * cfg.UpstreamTimeout,
	})

	router := api.NewRouter(api.Dependencies{
		Attractions: repositories.NewAttractionRepository(store, dialect),
		Planner: services.ItineraryDeps{
			Geocoder:    maps,
			Restaurants: maps,
			Hotels:      hotels,
			Travel:      routing,
			Schedules:   repositories.NewScheduleRepository(store, dialect),
		},
		Mode:              cfg.TransportMode,
		AttractionsPerDay: cfg.AttractionsPerDay,
		Annealing: services.AnnealingConfig{
			InitialTemperature: cfg.InitialTemperature,
			CoolingRate:        cfg.CoolingRate,
			MaxIterations:      cfg.MaxIterations,
			MinTemperature:     cfg.MinTemperature,
		},
		AnnealingTimeout: cfg.AnnealingTimeout,
	})

	// Timeouts are tuned for cold-cache itinerary planning (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      180 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s store=%s cache=%s", cfg.Port, dialect, cfg.CacheBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*sql.DB, repositories.Dialect, error) {
	if cfg.DatabaseURL != "" {
		store, err := db.Open(ctx, cfg.DatabaseURL)
		return store, repositories.Postgres, err
	}

	store, err := db.OpenSQLite(ctx, cfg.SQLitePath)
	return store, repositories.SQLite, err
}

// openCaches builds the geocode and travel-time caches for the configured
// backend. The returned func releases backend resources.
func openCaches(
	ctx context.Context,
	cfg *config.Config,
	store *sql.DB,
	dialect repositories.Dialect,
) (ports.GeocodeCache, ports.TravelTimeCache, func(), error) {
	switch cfg.CacheBackend {
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, nil, fmt.Errorf("open caches: ping redis %s: %w", cfg.RedisAddr, err)
		}
		closeFn := func() { _ = client.Close() }
		return cache.NewRedisGeocodeCache(client, cfg.CacheTTL), cache.NewRedisTravelTimeCache(client, cfg.CacheTTL), closeFn, nil

	case config.CacheNone:
		return nil, nil, func() {}, nil

	default:
		if dialect == repositories.Postgres {
			return cache.NewSQLGeocodeCache(store), cache.NewSQLTravelTimeCache(store), func() {}, nil
		}
		return cache.NewSqliteGeocodeCache(store), cache.NewSqliteTravelTimeCache(store), func() {}, nil
	}
}
