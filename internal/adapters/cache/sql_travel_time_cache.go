package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-service/internal/platform/obs"
	"itinerary-service/internal/ports"
	"strings"
)

// SQLTravelTimeCache is a Postgres-backed cache for origin->destination legs.
type SQLTravelTimeCache struct {
	DB *sql.DB
}

func NewSQLTravelTimeCache(db *sql.DB) *SQLTravelTimeCache {
	return &SQLTravelTimeCache{DB: db}
}

func (s *SQLTravelTimeCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.LegResult, err error) {
	defer obs.Time(ctx, "travel.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("travel time cache: db is nil")
	}

	if origin == "" {
		return nil, errors.New("get travel time cache: origin must not be empty")
	}

	uniq := uniqueKeys(destinations)
	if len(uniq) == 0 {
		return map[string]ports.LegResult{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT destination, distance_meters, duration_seconds
	FROM travel_time_cache
	WHERE origin = $1
		AND destination = ANY($2::text[]);
	`, origin, uniq)
	if err != nil {
		return nil, fmt.Errorf("get travel time cache: query travel_time_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.LegResult, len(uniq))
	for rows.Next() {
		var dest string
		var r ports.LegResult
		if err := rows.Scan(&dest, &r.DistanceMeters, &r.DurationSeconds); err != nil {
			return nil, fmt.Errorf("get travel time cache: scan rows: %w", err)
		}
		out[dest] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get travel time cache: row iteration: %w", err)
	}

	return out, nil
}

func (s *SQLTravelTimeCache) PutMany(
	ctx context.Context,
	origin string,
	results map[string]ports.LegResult,
) error {
	if s.DB == nil {
		return errors.New("travel time cache: db is nil")
	}

	if origin == "" {
		return errors.New("insert travel time cache: origin must not be empty")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert travel time cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO travel_time_cache (origin, destination, distance_meters, duration_seconds)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`)
	if err != nil {
		return fmt.Errorf("insert travel time cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for dest, r := range results {
		if strings.TrimSpace(dest) == "" {
			return errors.New("insert travel time cache: empty destination key")
		}

		if _, err := stmt.ExecContext(ctx, origin, dest, r.DistanceMeters, r.DurationSeconds); err != nil {
			return fmt.Errorf("insert travel time cache dest=%q: %w", dest, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert travel time cache commit: %w", err)
	}

	return nil
}
