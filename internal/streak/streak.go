// Package streak computes consecutive-day streaks over dated event lists.
// Events are bucketed to calendar days: two events on the same day count as
// one day, never two.
package streak

import (
	"sort"
	"time"

	"fittick/internal/clock"
)

// days returns the distinct calendar days of events, sorted ascending.
func days(events []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(events))
	var out []time.Time
	for _, e := range events {
		d := clock.DayStart(e)
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Current returns the length of the consecutive-day run ending at the most
// recent event. The run is broken if a gap of more than one calendar day
// separates two successive days, or if the most recent event is more than
// one day before asOf. Returns 0 for an empty list.
func Current(events []time.Time, asOf time.Time) int {
	ds := days(events)
	if len(ds) == 0 {
		return 0
	}

	latest := ds[len(ds)-1]
	if clock.DaysBetween(latest, asOf) > 1 {
		return 0
	}

	streak := 1
	for i := len(ds) - 1; i > 0; i-- {
		if clock.DaysBetween(ds[i-1], ds[i]) > 1 {
			break
		}
		streak++
	}
	return streak
}

// Longest returns the longest consecutive-day run anywhere in the list.
// Returns 0 for an empty list and 1 for a single entry.
func Longest(events []time.Time) int {
	ds := days(events)
	if len(ds) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(ds); i++ {
		if clock.DaysBetween(ds[i-1], ds[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
