package domain

import (
	"testing"
	"time"
)

func TestTimeWindowString(t *testing.T) {
	cases := []struct {
		name string
		w    TimeWindow
		want string
	}{
		{"closed", TimeWindow{Start: 9 * time.Hour, End: 11*time.Hour + 30*time.Minute}, "09:00~11:30"},
		{"open", TimeWindow{Start: 19*time.Hour + 15*time.Minute, Open: true}, "19:15~"},
		{"wraps past midnight", TimeWindow{Start: 23 * time.Hour, End: 25*time.Hour + 5*time.Minute}, "23:00~01:05"},
		{"negative wraps to previous day", TimeWindow{Start: -30 * time.Minute, End: time.Hour}, "23:30~01:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.w.String(); got != tc.want {
				t.Fatalf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseTimeWindow(t *testing.T) {
	w, err := ParseTimeWindow("13:20~15:10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Start != 13*time.Hour+20*time.Minute || w.End != 15*time.Hour+10*time.Minute || w.Open {
		t.Fatalf("unexpected window: %+v", w)
	}

	open, err := ParseTimeWindow("19:15~")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !open.Open || open.String() != "19:15~" {
		t.Fatalf("unexpected open window: %+v", open)
	}

	if _, err := ParseTimeWindow("19:15"); err == nil {
		t.Fatal("expected error for missing separator")
	}
	if _, err := ParseTimeWindow("9am~10am"); err == nil {
		t.Fatal("expected error for malformed clock")
	}
}

func TestDistanceMatrixTourDistance(t *testing.T) {
	m := DistanceMatrix{
		{0, 1, 4},
		{1, 0, 2},
		{4, 2, 0},
	}

	// 0->1 (1) + 1->2 (2) + 2->0 (4)
	if got := m.TourDistance([]int{0, 1, 2}); got != 7 {
		t.Fatalf("TourDistance = %v, want 7", got)
	}

	if got := m.TourDistance([]int{2}); got != 0 {
		t.Fatalf("single stop TourDistance = %v, want 0", got)
	}
}

func TestMidpoint(t *testing.T) {
	got := Midpoint(Coordinates{Lat: 25, Lon: 121}, Coordinates{Lat: 24, Lon: 120})
	if got.Lat != 24.5 || got.Lon != 120.5 {
		t.Fatalf("Midpoint = %+v", got)
	}
}
