package roadmap

import (
	"math"
	"strings"
)

// Canonical phase names. The outbound prompt instructs the model to emit
// content under exactly these headers, and the locator's primary strategy
// searches for them verbatim.
const (
	PhasePlanning    = "Planning & Setup Phase"
	PhaseCoreDev     = "Core Development Phase"
	PhaseFeatureImpl = "Feature Implementation Phase"
	PhaseTesting     = "Testing & Refinement Phase"
)

const (
	defaultWeeks = 12
	defaultDays  = 90
)

// WeekRange is an inclusive span of week numbers counted from the start of
// the project.
type WeekRange struct {
	Start int
	End   int
}

// PhaseSpec binds a canonical phase name to its computed week range.
type PhaseSpec struct {
	Name  string
	Weeks WeekRange
}

// WeeksForTimeframe maps a human-readable timeframe to a week count. The
// match is a substring check so values like "about 6 months" still resolve.
// Unrecognized input defaults to 12 weeks (3 months).
func WeeksForTimeframe(timeframe string) int {
	weeks := defaultWeeks
	if strings.Contains(timeframe, "1 month") {
		weeks = 4
	}
	if strings.Contains(timeframe, "3 months") {
		weeks = 12
	}
	if strings.Contains(timeframe, "6 months") {
		weeks = 24
	}
	return weeks
}

// DaysForTimeframe maps a timeframe to an approximate day count, defaulting
// to 90 days.
func DaysForTimeframe(timeframe string) int {
	days := defaultDays
	if strings.Contains(timeframe, "1 month") {
		days = 30
	}
	if strings.Contains(timeframe, "3 months") {
		days = 90
	}
	if strings.Contains(timeframe, "6 months") {
		days = 180
	}
	return days
}

// PhaseWeekRanges computes the four canonical phase boundaries as fractions
// of the total week count. Lower bounds keep every phase non-empty even for
// short timeframes, and each phase starts one week after the previous one
// ends.
func PhaseWeekRanges(totalWeeks int) []PhaseSpec {
	if totalWeeks <= 0 {
		totalWeeks = defaultWeeks
	}
	frac := func(f float64) int {
		return int(math.Floor(float64(totalWeeks) * f))
	}
	return []PhaseSpec{
		{Name: PhasePlanning, Weeks: WeekRange{Start: 1, End: max(1, frac(0.15))}},
		{Name: PhaseCoreDev, Weeks: WeekRange{Start: max(2, frac(0.15)+1), End: max(4, frac(0.5))}},
		{Name: PhaseFeatureImpl, Weeks: WeekRange{Start: max(5, frac(0.5)+1), End: max(8, frac(0.8))}},
		{Name: PhaseTesting, Weeks: WeekRange{Start: max(9, frac(0.8)+1), End: totalWeeks}},
	}
}
