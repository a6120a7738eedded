package services

import (
	"errors"
	"testing"
	"time"
)

func TestAllocateStayTimes(t *testing.T) {
	schedule, err := AllocateStayTimes([]int{30, 20, 40, 25, 15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"09:00~11:30",
		"12:00~13:00",
		"13:20~15:10",
		"15:50~17:35",
		"18:00~19:00",
		"19:15~",
	}

	got := schedule.Strings()
	if len(got) != len(want) {
		t.Fatalf("expected %d windows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stop %d window = %q, want %q", i+1, got[i], want[i])
		}
	}
}

func TestAllocateStayTimesOddMiddleLeg(t *testing.T) {
	schedule, err := AllocateStayTimes([]int{0, 0, 45, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 45 // 2 == 22 on both sides of the 15:30 split.
	if got := schedule[2].String(); got != "13:00~15:08" {
		t.Fatalf("stop 3 window = %q, want 13:00~15:08", got)
	}
	if got := schedule[3].String(); got != "15:52~18:00" {
		t.Fatalf("stop 4 window = %q, want 15:52~18:00", got)
	}
}

func TestAllocateStayTimesRejectsWrongLength(t *testing.T) {
	for _, in := range [][]int{
		{30, 20, 40, 25},
		{30, 20, 40, 25, 15, 10},
		nil,
	} {
		_, err := AllocateStayTimes(in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("len=%d: expected ErrInvalidInput, got %v", len(in), err)
		}
	}
}

func TestAllocateStayTimesMonotonic(t *testing.T) {
	schedule, err := AllocateStayTimes([]int{45, 30, 50, 20, 25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, w := range schedule {
		if !w.Open && w.End < w.Start {
			t.Errorf("stop %d ends before it starts: %s", i+1, w)
		}
		if i > 0 && w.Start < schedule[i-1].End {
			t.Errorf("stop %d starts at %v before stop %d ends at %v", i+1, w.Start, i, schedule[i-1].End)
		}
	}
	if !schedule[5].Open {
		t.Fatal("last stop should be open-ended")
	}
}

func TestAllocateStayTimesPassesThroughOversizedLegs(t *testing.T) {
	// A 4h first leg is longer than the morning; no clamping happens.
	schedule, err := AllocateStayTimes([]int{240, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schedule[0].End != 8*time.Hour {
		t.Fatalf("stop 1 end = %v, want 8h", schedule[0].End)
	}
	if got := schedule[0].String(); got != "09:00~08:00" {
		t.Fatalf("stop 1 window = %q, want 09:00~08:00", got)
	}
}

func TestAllocateStayTimesNegativeMiddleLegFloors(t *testing.T) {
	schedule, err := AllocateStayTimes([]int{0, 0, -5, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// -5 // 2 == -3
	if got := schedule[2].String(); got != "13:00~15:33" {
		t.Fatalf("stop 3 window = %q, want 13:00~15:33", got)
	}
}
