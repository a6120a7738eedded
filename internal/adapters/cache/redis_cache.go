package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/obs"
	"itinerary-service/internal/ports"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	geocodeKeyPrefix = "itinerary:geocode:"
	travelKeyPrefix  = "itinerary:travel:"
)

// RedisGeocodeCache stores one JSON-encoded location per query key.
// Entries expire after TTL; zero keeps them forever.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

type cachedLocation struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (r *RedisGeocodeCache) GetMany(
	ctx context.Context,
	queries []string,
) (_ map[string]domain.Location, err error) {
	defer obs.Time(ctx, "geocode.redis.GetMany")(&err)

	if r.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	uniq := uniqueKeys(queries)
	if len(uniq) == 0 {
		return map[string]domain.Location{}, nil
	}

	keys := make([]string, len(uniq))
	for i, q := range uniq {
		keys[i] = geocodeKeyPrefix + q
	}

	vals, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: mget: %w", err)
	}

	out := make(map[string]domain.Location, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}

		var c cachedLocation
		if err := json.Unmarshal([]byte(s), &c); err != nil {
			return nil, fmt.Errorf("get geocode cache: decode %q: %w", uniq[i], err)
		}
		out[uniq[i]] = domain.Location{
			Name:    c.Name,
			Address: c.Address,
			Coords:  domain.Coordinates{Lat: c.Lat, Lon: c.Lon},
		}
	}

	return out, nil
}

func (r *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Location) error {
	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.Client.TxPipeline()
	for key, loc := range results {
		if strings.TrimSpace(key) == "" {
			return errors.New("insert geocode cache: empty query key")
		}

		b, err := json.Marshal(cachedLocation{
			Name:    loc.Name,
			Address: loc.Address,
			Lat:     loc.Coords.Lat,
			Lon:     loc.Coords.Lon,
		})
		if err != nil {
			return fmt.Errorf("insert geocode cache query=%q: encode: %w", key, err)
		}
		pipe.Set(ctx, geocodeKeyPrefix+key, b, r.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: exec pipeline: %w", err)
	}

	return nil
}

// RedisTravelTimeCache keeps one hash per origin, one field per destination.
type RedisTravelTimeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisTravelTimeCache(client *redis.Client, ttl time.Duration) *RedisTravelTimeCache {
	return &RedisTravelTimeCache{Client: client, TTL: ttl}
}

type cachedLeg struct {
	DistanceMeters  int `json:"distance_meters"`
	DurationSeconds int `json:"duration_seconds"`
}

func (r *RedisTravelTimeCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.LegResult, err error) {
	defer obs.Time(ctx, "travel.redis.GetMany")(&err)

	if r.Client == nil {
		return nil, errors.New("travel time cache: redis client is nil")
	}

	if origin == "" {
		return nil, errors.New("get travel time cache: origin must not be empty")
	}

	uniq := uniqueKeys(destinations)
	if len(uniq) == 0 {
		return map[string]ports.LegResult{}, nil
	}

	vals, err := r.Client.HMGet(ctx, travelKeyPrefix+origin, uniq...).Result()
	if err != nil {
		return nil, fmt.Errorf("get travel time cache: hmget: %w", err)
	}

	out := make(map[string]ports.LegResult, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}

		var c cachedLeg
		if err := json.Unmarshal([]byte(s), &c); err != nil {
			return nil, fmt.Errorf("get travel time cache: decode %q: %w", uniq[i], err)
		}
		out[uniq[i]] = ports.LegResult{DistanceMeters: c.DistanceMeters, DurationSeconds: c.DurationSeconds}
	}

	return out, nil
}

func (r *RedisTravelTimeCache) PutMany(
	ctx context.Context,
	origin string,
	results map[string]ports.LegResult,
) error {
	if r.Client == nil {
		return errors.New("travel time cache: redis client is nil")
	}

	if origin == "" {
		return errors.New("insert travel time cache: origin must not be empty")
	}

	if len(results) == 0 {
		return nil
	}

	fields := make([]any, 0, 2*len(results))
	for dest, leg := range results {
		if strings.TrimSpace(dest) == "" {
			return errors.New("insert travel time cache: empty destination key")
		}

		b, err := json.Marshal(cachedLeg{DistanceMeters: leg.DistanceMeters, DurationSeconds: leg.DurationSeconds})
		if err != nil {
			return fmt.Errorf("insert travel time cache dest=%q: encode: %w", dest, err)
		}
		fields = append(fields, dest, string(b))
	}

	key := travelKeyPrefix + origin
	pipe := r.Client.TxPipeline()
	pipe.HSet(ctx, key, fields...)
	if r.TTL > 0 {
		pipe.Expire(ctx, key, r.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert travel time cache: exec pipeline: %w", err)
	}

	return nil
}
