package models

import (
	"time"

	"github.com/google/uuid"

	"fittick/internal/clock"
)

// HistoryEntry is a point-in-time snapshot of one day's count, appended at
// rollover. Entries are append-only; existing entries are never rewritten.
type HistoryEntry struct {
	Count int       `json:"count"`
	Date  time.Time `json:"date"`
}

// Activity is a named daily counter with an optional daily reset and a set
// of repeating reminder times.
type Activity struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Count            int            `json:"count"`
	TodayCount       int            `json:"today_count"`
	ResetDaily       bool           `json:"reset_daily"`
	LastCounted      time.Time      `json:"last_counted"`
	CreatedAt        time.Time      `json:"created_at"`
	History          []HistoryEntry `json:"history,omitempty"`
	Notifications    []ReminderTime `json:"notifications,omitempty"`
	NotificationText ReminderText   `json:"notification_text"`
}

func NewActivity(name string, resetDaily bool, now time.Time) *Activity {
	return &Activity{
		ID:          uuid.New().String(),
		Name:        name,
		ResetDaily:  resetDaily,
		LastCounted: now,
		CreatedAt:   now,
	}
}

// Increment adds by to the running and today counts.
func (a *Activity) Increment(by int, now time.Time) {
	a.Count += by
	a.TodayCount += by
	a.LastCounted = now
}

// Decrement subtracts one from the running and today counts. Both counts
// floor at zero: a counter of completions has no meaningful negative value.
func (a *Activity) Decrement(now time.Time) {
	if a.Count > 0 {
		a.Count--
	}
	if a.TodayCount > 0 {
		a.TodayCount--
	}
	a.LastCounted = now
}

// CheckRollover reports whether a day boundary has passed since the last
// count mutation.
func (a *Activity) CheckRollover(now time.Time) bool {
	return !clock.SameDay(a.LastCounted, now)
}

// ApplyRollover archives the previous day's count into history and resets
// the today count (and, for daily-reset activities, the running count).
// Calling it twice within the same calendar day is a no-op the second time.
// Returns true if a rollover happened.
func (a *Activity) ApplyRollover(now time.Time) bool {
	if !a.CheckRollover(now) {
		return false
	}
	if a.TodayCount != 0 {
		a.History = append(a.History, HistoryEntry{Count: a.TodayCount, Date: a.LastCounted})
	}
	a.TodayCount = 0
	if a.ResetDaily {
		a.Count = 0
	}
	a.LastCounted = now
	return true
}

// NextReminder returns the soonest upcoming reminder occurrence at or after
// from, or false if the activity has no reminder times.
func (a *Activity) NextReminder(from time.Time) (time.Time, bool) {
	return nextReminder(a.Notifications, from)
}

// HistoryDays returns the dates of all history entries, for streak math.
func (a *Activity) HistoryDays() []time.Time {
	days := make([]time.Time, len(a.History))
	for i, h := range a.History {
		days[i] = h.Date
	}
	return days
}

func (a *Activity) ReminderOwnerID() string       { return a.ID }
func (a *Activity) DisplayName() string           { return a.Name }
func (a *Activity) ReminderTimes() []ReminderTime { return a.Notifications }
func (a *Activity) ReminderContent() ReminderText { return a.NotificationText }

func nextReminder(times []ReminderTime, from time.Time) (time.Time, bool) {
	var next time.Time
	for _, rt := range times {
		occ := clock.NextOccurrence(rt.Hour, rt.Minute, from)
		if next.IsZero() || occ.Before(next) {
			next = occ
		}
	}
	return next, !next.IsZero()
}
