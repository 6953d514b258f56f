package clock

import "time"

// DayStart returns midnight of t's calendar day in t's location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns the number of calendar days from a's day to b's day.
// The result is negative when b precedes a. Rounding absorbs DST-shortened
// and DST-lengthened days.
func DaysBetween(a, b time.Time) int {
	d := DayStart(b).Sub(DayStart(a))
	return int(d.Round(24*time.Hour).Hours() / 24)
}

// NextOccurrence returns the next timestamp at or after from whose wall-clock
// time equals hour:minute. If today's occurrence has already passed, the
// result is tomorrow's occurrence.
func NextOccurrence(hour, minute int, from time.Time) time.Time {
	next := time.Date(from.Year(), from.Month(), from.Day(), hour, minute, 0, 0, from.Location())
	if next.Before(from) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
