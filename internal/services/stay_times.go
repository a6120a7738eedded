package services

import (
	"fmt"
	"itinerary-service/internal/domain"
	"time"
)

// LegsPerDay is the number of travel legs between the stops of a full day.
const LegsPerDay = domain.StopsPerDay - 1

// Fixed anchors of a planned day, as offsets from midnight.
const (
	DayStart       = 9 * time.Hour
	LunchArrival   = 12 * time.Hour
	LunchStay      = 1 * time.Hour
	DinnerArrival  = 18 * time.Hour
	DinnerStay     = 1 * time.Hour
	afternoonStart = LunchArrival + LunchStay
)

// AllocateStayTimes converts the five leg travel times (minutes) of a
// six-stop day into one stay window per stop.
//
// Lunch (stop 2) is pinned to 12:00-13:00 and dinner (stop 5) to
// 18:00-19:00. The afternoon is split at its midpoint (15:30) and the leg
// between stops 3 and 4 is shared evenly across that split. Stop 6 only gets
// an arrival time.
//
// Values are not range-checked: oversized or negative travel times pass
// through and can yield a window that ends before it starts.
func AllocateStayTimes(travelMinutes []int) (domain.StaySchedule, error) {
	if len(travelMinutes) != LegsPerDay {
		return domain.StaySchedule{}, fmt.Errorf(
			"allocate stay times: want %d travel times, got %d: %w",
			LegsPerDay, len(travelMinutes), ErrInvalidInput,
		)
	}

	leg := func(i int) time.Duration { return time.Duration(travelMinutes[i]) * time.Minute }
	halfLeg3 := time.Duration(floorDiv(travelMinutes[2], 2)) * time.Minute

	midpoint := afternoonStart + (DinnerArrival-afternoonStart)/2
	dinnerEnd := DinnerArrival + DinnerStay

	return domain.StaySchedule{
		{Start: DayStart, End: LunchArrival - leg(0)},
		{Start: LunchArrival, End: afternoonStart},
		{Start: afternoonStart + leg(1), End: midpoint - halfLeg3},
		{Start: midpoint + halfLeg3, End: DinnerArrival - leg(3)},
		{Start: DinnerArrival, End: dinnerEnd},
		{Start: dinnerEnd + leg(4), Open: true},
	}, nil
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
