package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"itinerary-service/internal/adapters/repositories"
	"itinerary-service/internal/config"
	"itinerary-service/internal/platform/db"
	"log"

	"github.com/joho/godotenv"
)

// dbtool creates the schema and seeds attractions without starting the
// server. DATABASE_URL selects Postgres; otherwise SQLITE_PATH is used.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	seedPath := flag.String("seed", config.Get("SEED_PATH", "data/seeds/attractions.json"), "attractions seed file")
	schemaOnly := flag.Bool("schema-only", false, "create tables without seeding")
	flag.Parse()

	ctx := context.Background()

	store, dialect, err := open(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	if err := initAndSeed(ctx, store, dialect, *seedPath, *schemaOnly); err != nil {
		log.Fatal(err)
	}
}

func open(ctx context.Context) (*sql.DB, repositories.Dialect, error) {
	if url := config.Get("DATABASE_URL", ""); url != "" {
		store, err := db.Open(ctx, url)
		return store, repositories.Postgres, err
	}

	store, err := db.OpenSQLite(ctx, config.Get("SQLITE_PATH", "data/itinerary.db"))
	return store, repositories.SQLite, err
}

func initAndSeed(ctx context.Context, store *sql.DB, dialect repositories.Dialect, seedPath string, schemaOnly bool) error {
	log.Printf("Initializing database schema store=%s...", dialect)
	if err := repositories.InitSchema(ctx, store, dialect); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	if schemaOnly {
		return nil
	}

	log.Printf("Seeding attractions from %s...", seedPath)
	n, err := repositories.SeedFromJSON(ctx, store, dialect, seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Printf("Seeding complete. inserted=%d", n)

	return nil
}
