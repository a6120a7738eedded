package cache

import (
	"context"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/ports"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	_, client := setupRedis(t)
	c := NewRedisGeocodeCache(client, 0)
	ctx := context.Background()

	loc := domain.Location{
		Name:    "Longshan Temple",
		Address: "No. 211, Guangzhou St",
		Coords:  domain.Coordinates{Lat: 25.0372, Lon: 121.4999},
	}
	require.NoError(t, c.PutMany(ctx, map[string]domain.Location{"Longshan Temple": loc}))

	got, err := c.GetMany(ctx, []string{"Longshan Temple", "Maokong"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, loc, got["Longshan Temple"])
}

func TestRedisGeocodeCacheExpires(t *testing.T) {
	mr, client := setupRedis(t)
	c := NewRedisGeocodeCache(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.PutMany(ctx, map[string]domain.Location{"q": {Name: "Q"}}))
	mr.FastForward(2 * time.Hour)

	got, err := c.GetMany(ctx, []string{"q"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisTravelTimeCacheRoundTrip(t *testing.T) {
	mr, client := setupRedis(t)
	c := NewRedisTravelTimeCache(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.PutMany(ctx, "car|a", map[string]ports.LegResult{
		"b": {DistanceMeters: 1200, DurationSeconds: 300},
	}))

	got, err := c.GetMany(ctx, "car|a", []string{"b", "c"})
	require.NoError(t, err)
	assert.Equal(t, map[string]ports.LegResult{"b": {DistanceMeters: 1200, DurationSeconds: 300}}, got)

	assert.True(t, mr.Exists(travelKeyPrefix+"car|a"))
	assert.Equal(t, time.Hour, mr.TTL(travelKeyPrefix+"car|a"))
}

func TestRedisTravelTimeCacheRequiresOrigin(t *testing.T) {
	_, client := setupRedis(t)
	c := NewRedisTravelTimeCache(client, 0)

	_, err := c.GetMany(context.Background(), "", []string{"b"})
	require.Error(t, err)
}
