package domain

import (
	"fmt"
	"strings"
	"time"
)

// StopsPerDay is the number of stops a fully planned day contains:
// attraction, lunch, attraction, attraction, dinner, hotel.
const StopsPerDay = 6

// TimeWindow is a stay interval expressed as offsets from midnight.
// An Open window has an arrival time but no departure (the last stop of a day).
type TimeWindow struct {
	Start time.Duration
	End   time.Duration
	Open  bool
}

// String renders the window as "HH:MM~HH:MM", or "HH:MM~" when open.
// Clock values wrap around midnight.
func (w TimeWindow) String() string {
	if w.Open {
		return clock(w.Start) + "~"
	}
	return clock(w.Start) + "~" + clock(w.End)
}

func clock(d time.Duration) string {
	mins := int(d / time.Minute)
	mins %= 24 * 60
	if mins < 0 {
		mins += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// ParseTimeWindow parses the "HH:MM~HH:MM" / "HH:MM~" form produced by String.
func ParseTimeWindow(s string) (TimeWindow, error) {
	startStr, endStr, ok := strings.Cut(s, "~")
	if !ok {
		return TimeWindow{}, fmt.Errorf("parse time window %q: missing separator", s)
	}

	start, err := parseClock(startStr)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("parse time window %q: %w", s, err)
	}

	if endStr == "" {
		return TimeWindow{Start: start, Open: true}, nil
	}

	end, err := parseClock(endStr)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("parse time window %q: %w", s, err)
	}

	return TimeWindow{Start: start, End: end}, nil
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// StaySchedule holds one window per stop of a planned day, in stop order.
type StaySchedule [StopsPerDay]TimeWindow

// Strings renders every window of the schedule.
func (s StaySchedule) Strings() []string {
	out := make([]string, 0, len(s))
	for _, w := range s {
		out = append(out, w.String())
	}
	return out
}
