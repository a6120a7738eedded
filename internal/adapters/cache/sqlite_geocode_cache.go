package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/obs"
	"strings"
)

// SQLite backed cache mapping geocode queries to locations.
// Query keys are expected to be normalized by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch cached locations for the given queries.
func (s *SqliteGeocodeCache) GetMany(
	ctx context.Context,
	queries []string,
) (_ map[string]domain.Location, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(queries)
	if len(uniq) == 0 {
		return map[string]domain.Location{}, nil
	}

	args := make([]any, 0, len(uniq))
	for _, q := range uniq {
		args = append(args, q)
	}

	// Only the placeholder list is interpolated; values stay parameterized.
	q := fmt.Sprintf(`
	SELECT query, name, address, lat, lon
	FROM geocode_cache
	WHERE query IN (%s);
	`, placeholders(len(uniq)))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Location, len(uniq))
	for rows.Next() {
		var key string
		var loc domain.Location
		if err := rows.Scan(&key, &loc.Name, &loc.Address, &loc.Coords.Lat, &loc.Coords.Lon); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[key] = loc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// Store query -> location mappings in the cache.
func (s *SqliteGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Location) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO geocode_cache (query, name, address, lat, lon)
	VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for key, loc := range results {
		if strings.TrimSpace(key) == "" {
			return errors.New("insert geocode cache: empty query key")
		}

		if _, err := stmt.ExecContext(ctx, key, loc.Name, loc.Address, loc.Coords.Lat, loc.Coords.Lon); err != nil {
			return fmt.Errorf("insert geocode cache query=%q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}
