package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQL-backed implementation of the AttractionRepository port.
type AttractionRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewAttractionRepository(db *sql.DB, dialect Dialect) *AttractionRepository {
	return &AttractionRepository{DB: db, Dialect: dialect}
}

// Return all seeded attraction names in insertion order.
func (r *AttractionRepository) ListAttractions(ctx context.Context) ([]string, error) {
	if r.DB == nil {
		return nil, errors.New("attraction repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT name
	FROM attractions
	ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list attractions: query attractions table: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0, 32)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list attractions: scan row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attractions: row iteration: %w", err)
	}

	return names, nil
}
