package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/platform/obs"
	"time"
)

const (
	nextDayNumberSQL = `
	SELECT COALESCE(MAX(day_number), 0) + 1
	FROM itinerary_days;
	`

	insertDaySQL = `
	INSERT INTO itinerary_days (day_number, travel_minutes, created_at)
	VALUES (?, ?, ?);
	`

	insertStopSQL = `
	INSERT INTO itinerary_stops (
		day_number,
		position,
		name,
		kind,
		address,
		lat,
		lon,
		time_window
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
)

// lockDaysSQL returns the statement that serializes day-number allocation
// across connections. SQLite runs on a single connection and needs none.
// EXCLUSIVE mode conflicts with itself but still lets readers through.
func lockDaysSQL(d Dialect) string {
	if d == Postgres {
		return "LOCK TABLE itinerary_days IN EXCLUSIVE MODE;"
	}
	return ""
}

// SQL-backed implementation of the ScheduleRepository port. Each saved day
// is appended after the highest stored day number.
type ScheduleRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewScheduleRepository(db *sql.DB, dialect Dialect) *ScheduleRepository {
	return &ScheduleRepository{DB: db, Dialect: dialect}
}

func (r *ScheduleRepository) SaveDay(ctx context.Context, day domain.DayPlan) (_ int, err error) {
	defer obs.Time(ctx, "schedule.SaveDay")(&err)

	if r.DB == nil {
		return 0, errors.New("schedule repository: DB is nil")
	}

	travel, err := json.Marshal(day.TravelMinutes)
	if err != nil {
		return 0, fmt.Errorf("save day: encode travel minutes: %w", err)
	}

	created := day.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("save day: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if lock := lockDaysSQL(r.Dialect); lock != "" {
		if _, err := tx.ExecContext(ctx, lock); err != nil {
			return 0, fmt.Errorf("save day: lock itinerary_days: %w", err)
		}
	}

	var number int
	if err := tx.QueryRowContext(ctx, nextDayNumberSQL).Scan(&number); err != nil {
		return 0, fmt.Errorf("save day: next day number: %w", err)
	}

	if _, err := tx.ExecContext(ctx, rebind(r.Dialect, insertDaySQL), number, string(travel), created.Format(time.RFC3339Nano)); err != nil {
		return 0, fmt.Errorf("save day %d: insert day: %w", number, err)
	}

	stmt, err := tx.PrepareContext(ctx, rebind(r.Dialect, insertStopSQL))
	if err != nil {
		return 0, fmt.Errorf("save day %d: prepare stops: %w", number, err)
	}
	defer stmt.Close()

	for i, s := range day.Stops {
		loc := s.Location
		if _, err := stmt.ExecContext(ctx,
			number, i+1, loc.Name, string(loc.Kind), loc.Address,
			loc.Coords.Lat, loc.Coords.Lon, s.Window,
		); err != nil {
			return 0, fmt.Errorf("save day %d: insert stop %d: %w", number, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("save day %d: commit tx: %w", number, err)
	}

	return number, nil
}

func (r *ScheduleRepository) ListDays(ctx context.Context) (_ []domain.DayPlan, err error) {
	defer obs.Time(ctx, "schedule.ListDays")(&err)

	if r.DB == nil {
		return nil, errors.New("schedule repository: DB is nil")
	}

	dayRows, err := r.DB.QueryContext(ctx, `
	SELECT day_number, travel_minutes, created_at
	FROM itinerary_days
	ORDER BY day_number;
	`)
	if err != nil {
		return nil, fmt.Errorf("list days: query itinerary_days table: %w", err)
	}
	defer dayRows.Close()

	days := []domain.DayPlan{}
	index := map[int]int{}
	for dayRows.Next() {
		var number int
		var travel, created string
		if err := dayRows.Scan(&number, &travel, &created); err != nil {
			return nil, fmt.Errorf("list days: scan day: %w", err)
		}

		day := domain.DayPlan{DayNumber: number, Stops: []domain.Stop{}}
		if err := json.Unmarshal([]byte(travel), &day.TravelMinutes); err != nil {
			return nil, fmt.Errorf("list days: decode travel minutes of day %d: %w", number, err)
		}
		if day.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("list days: parse created_at of day %d: %w", number, err)
		}

		index[number] = len(days)
		days = append(days, day)
	}
	if err := dayRows.Err(); err != nil {
		return nil, fmt.Errorf("list days: day iteration: %w", err)
	}

	stopRows, err := r.DB.QueryContext(ctx, `
	SELECT day_number, name, kind, address, lat, lon, time_window
	FROM itinerary_stops
	ORDER BY day_number, position;
	`)
	if err != nil {
		return nil, fmt.Errorf("list days: query itinerary_stops table: %w", err)
	}
	defer stopRows.Close()

	for stopRows.Next() {
		var number int
		var kind string
		var s domain.Stop
		if err := stopRows.Scan(
			&number, &s.Location.Name, &kind, &s.Location.Address,
			&s.Location.Coords.Lat, &s.Location.Coords.Lon, &s.Window,
		); err != nil {
			return nil, fmt.Errorf("list days: scan stop: %w", err)
		}
		s.Location.Kind = domain.PlaceKind(kind)
		if s.Window != "" {
			if _, err := domain.ParseTimeWindow(s.Window); err != nil {
				return nil, fmt.Errorf("list days: stop of day %d: %w", number, err)
			}
		}

		i, ok := index[number]
		if !ok {
			continue
		}
		days[i].Stops = append(days[i].Stops, s)
	}
	if err := stopRows.Err(); err != nil {
		return nil, fmt.Errorf("list days: stop iteration: %w", err)
	}

	return days, nil
}
