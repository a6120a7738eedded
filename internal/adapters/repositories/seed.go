package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// AttractionSeed is one entry of the attractions seed file.
type AttractionSeed struct {
	Name string `json:"name"`
}

// SeedFromJSON inserts the attraction names listed in jsonPath, keeping file
// order. Names already present are left alone.
func SeedFromJSON(ctx context.Context, db *sql.DB, dialect Dialect, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed attractions: read %q: %w", jsonPath, err)
	}

	var data []AttractionSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed attractions: parse json: %w", err)
	}

	names := make([]string, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return 0, fmt.Errorf("seed attractions: item at index %d: name cannot be empty", i+1)
		}
		names = append(names, name)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed attractions: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, rebind(dialect, `
	INSERT INTO attractions (name)
	VALUES (?)
	ON CONFLICT (name) DO NOTHING;
	`))
	if err != nil {
		return 0, fmt.Errorf("seed attractions: prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, name := range names {
		res, err := stmt.ExecContext(ctx, name)
		if err != nil {
			return 0, fmt.Errorf("seed attractions: insert %q: %w", name, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed attractions: commit tx: %w", err)
	}

	return inserted, nil
}
