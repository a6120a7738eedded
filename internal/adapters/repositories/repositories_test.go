package repositories

import (
	"context"
	"database/sql"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/db"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn, SQLite))
	return conn
}

func writeSeed(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "attractions.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	conn := setupTestDB(t)
	require.NoError(t, InitSchema(context.Background(), conn, SQLite))
}

func TestRebind(t *testing.T) {
	cases := []struct {
		name    string
		query   string
		want    []string
		notWant []string
	}{
		{
			name:  "two placeholders",
			query: "INSERT INTO t (a, b) VALUES (?, ?)",
			want:  []string{"VALUES ($1, $2)"},
		},
		{
			name:    "day insert",
			query:   insertDaySQL,
			want:    []string{"VALUES ($1, $2, $3);"},
			notWant: []string{"?", "$4"},
		},
		{
			name:    "stop insert",
			query:   insertStopSQL,
			want:    []string{"VALUES ($1, $2, $3, $4, $5, $6, $7, $8);"},
			notWant: []string{"?", "$9"},
		},
		{
			name:    "no placeholders",
			query:   nextDayNumberSQL,
			notWant: []string{"$1"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.query, rebind(SQLite, tc.query))

			got := rebind(Postgres, tc.query)
			for _, w := range tc.want {
				assert.Contains(t, got, w)
			}
			for _, nw := range tc.notWant {
				assert.NotContains(t, got, nw)
			}
		})
	}
}

func TestPostgresSchemaMirrorsSQLite(t *testing.T) {
	require.Len(t, postgresSchema, len(sqliteSchema))

	for i, stmt := range postgresSchema {
		assert.Equal(t, tableName(sqliteSchema[i]), tableName(stmt), "statement #%d", i+1)
		assert.NotContains(t, stmt, "AUTOINCREMENT")
		assert.NotContains(t, stmt, " REAL ")
		assert.NotContains(t, stmt, "?")
	}
	assert.Contains(t, postgresSchema[0], "GENERATED ALWAYS AS IDENTITY")
}

func tableName(stmt string) string {
	fields := strings.Fields(stmt)
	for i, f := range fields {
		if f == "EXISTS" && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return ""
}

func TestLockDaysSQL(t *testing.T) {
	assert.Empty(t, lockDaysSQL(SQLite))
	assert.Equal(t, "LOCK TABLE itinerary_days IN EXCLUSIVE MODE;", lockDaysSQL(Postgres))
}

func TestSeedAndListAttractions(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	path := writeSeed(t, `[{"name":"Taipei 101"},{"name":" Longshan Temple "},{"name":"Jiufen"}]`)

	n, err := SeedFromJSON(ctx, conn, SQLite, path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Re-seeding skips names already present.
	n, err = SeedFromJSON(ctx, conn, SQLite, path)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	names, err := NewAttractionRepository(conn, SQLite).ListAttractions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Taipei 101", "Longshan Temple", "Jiufen"}, names)
}

func TestSeedRejectsEmptyName(t *testing.T) {
	conn := setupTestDB(t)

	_, err := SeedFromJSON(context.Background(), conn, SQLite, writeSeed(t, `[{"name":"ok"},{"name":"  "}]`))
	require.Error(t, err)
}

func sampleDay(window string) domain.DayPlan {
	return domain.DayPlan{
		Stops: []domain.Stop{
			{
				Location: domain.Location{
					Name:   "Taipei 101",
					Coords: domain.Coordinates{Lat: 25.034, Lon: 121.5645},
					Kind:   domain.KindAttraction,
				},
				Window: window,
			},
			{
				Location: domain.Location{
					Name:    "Din Tai Fung",
					Coords:  domain.Coordinates{Lat: 25.033, Lon: 121.53},
					Address: "Xinyi Rd",
					Kind:    domain.KindRestaurant,
				},
				Window: "12:00~13:00",
			},
		},
		TravelMinutes: []int{25},
		CreatedAt:     time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestScheduleRepositoryAppendsDays(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()
	repo := NewScheduleRepository(conn, SQLite)

	first, err := repo.SaveDay(ctx, sampleDay("09:00~11:35"))
	require.NoError(t, err)
	second, err := repo.SaveDay(ctx, sampleDay("09:00~11:00"))
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)

	days, err := repo.ListDays(ctx)
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, 1, days[0].DayNumber)
	assert.Equal(t, []int{25}, days[0].TravelMinutes)
	assert.True(t, days[0].CreatedAt.Equal(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)))
	require.Len(t, days[0].Stops, 2)
	assert.Equal(t, "09:00~11:35", days[0].Stops[0].Window)
	assert.Equal(t, domain.KindRestaurant, days[0].Stops[1].Location.Kind)
	assert.Equal(t, "Xinyi Rd", days[0].Stops[1].Location.Address)
	assert.InDelta(t, 25.033, days[0].Stops[1].Location.Coords.Lat, 1e-9)

	assert.Equal(t, "09:00~11:00", days[1].Stops[0].Window)
}

func TestScheduleRepositoryConcurrentSavesGetDistinctNumbers(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()
	repo := NewScheduleRepository(conn, SQLite)

	const n = 8
	numbers := make([]int, n)
	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			num, err := repo.SaveDay(ctx, sampleDay("09:00~11:35"))
			numbers[i] = num
			return err
		})
	}
	require.NoError(t, g.Wait())

	slices.Sort(numbers)
	for i, num := range numbers {
		assert.Equal(t, i+1, num)
	}

	days, err := repo.ListDays(ctx)
	require.NoError(t, err)
	assert.Len(t, days, n)
}

func TestListDaysRejectsCorruptWindow(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()
	repo := NewScheduleRepository(conn, SQLite)

	_, err := repo.SaveDay(ctx, sampleDay("09:00~11:35"))
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, `UPDATE itinerary_stops SET time_window = 'later' WHERE position = 1;`)
	require.NoError(t, err)

	_, err = repo.ListDays(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "day 1")
}

func TestScheduleRepositoryEmpty(t *testing.T) {
	conn := setupTestDB(t)

	days, err := NewScheduleRepository(conn, SQLite).ListDays(context.Background())
	require.NoError(t, err)
	assert.Empty(t, days)
}
