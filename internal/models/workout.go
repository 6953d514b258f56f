package models

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is one step of a workout plan: a work interval followed by a
// rest interval, both in seconds.
type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	WorkSeconds int    `json:"work_seconds"`
	RestSeconds int    `json:"rest_seconds"`
}

func NewExercise(name string, workSeconds, restSeconds int) Exercise {
	return Exercise{
		ID:          uuid.New().String(),
		Name:        name,
		WorkSeconds: workSeconds,
		RestSeconds: restSeconds,
	}
}

// WorkoutPlan is an ordered sequence of exercises run through an interactive
// countdown session. Exercise order is the execution order.
type WorkoutPlan struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	CreatedAt        time.Time      `json:"created_at"`
	Exercises        []Exercise     `json:"exercises,omitempty"`
	CompletedHistory []time.Time    `json:"completed_history,omitempty"`
	Notifications    []ReminderTime `json:"notifications,omitempty"`
	NotificationText ReminderText   `json:"notification_text"`
}

func NewWorkoutPlan(name string, exercises []Exercise, now time.Time) *WorkoutPlan {
	return &WorkoutPlan{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		Exercises: exercises,
	}
}

// TotalSeconds returns the run time of a full session excluding the warm-up:
// every work interval plus every rest interval except the one after the last
// exercise.
func (w *WorkoutPlan) TotalSeconds() int {
	total := 0
	for i, ex := range w.Exercises {
		total += ex.WorkSeconds
		if i < len(w.Exercises)-1 {
			total += ex.RestSeconds
		}
	}
	return total
}

// RecordCompletion appends one completion timestamp. Only a fully finished
// session records a completion; cancelled sessions never call this.
func (w *WorkoutPlan) RecordCompletion(now time.Time) {
	w.CompletedHistory = append(w.CompletedHistory, now)
}

// NextReminder returns the soonest upcoming reminder occurrence at or after
// from, or false if the plan has no reminder times.
func (w *WorkoutPlan) NextReminder(from time.Time) (time.Time, bool) {
	return nextReminder(w.Notifications, from)
}

func (w *WorkoutPlan) ReminderOwnerID() string       { return w.ID }
func (w *WorkoutPlan) DisplayName() string           { return w.Name }
func (w *WorkoutPlan) ReminderTimes() []ReminderTime { return w.Notifications }
func (w *WorkoutPlan) ReminderContent() ReminderText { return w.NotificationText }
