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

// SQLite backed cache for origin->destination leg results.
type SqliteTravelTimeCache struct {
	DB *sql.DB
}

func NewSqliteTravelTimeCache(db *sql.DB) *SqliteTravelTimeCache {
	return &SqliteTravelTimeCache{DB: db}
}

// Fetch cached legs for one origin and multiple destinations.
func (s *SqliteTravelTimeCache) GetMany(
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

	args := make([]any, 0, 1+len(uniq))
	args = append(args, origin)
	for _, d := range uniq {
		args = append(args, d)
	}

	q := fmt.Sprintf(`
	SELECT destination, distance_meters, duration_seconds
	FROM travel_time_cache
	WHERE origin = ?
		AND destination IN (%s);
	`, placeholders(len(uniq)))

	rows, err := s.DB.QueryContext(ctx, q, args...)
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

// Store many leg results for a single origin.
func (s *SqliteTravelTimeCache) PutMany(
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
	INSERT OR REPLACE INTO travel_time_cache (origin, destination, distance_meters, duration_seconds)
	VALUES (?, ?, ?, ?);
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
