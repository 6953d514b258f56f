package cli

import (
	"testing"
	"time"

	"fittick/internal/models"
)

func TestWorkoutDeleteCancelsRemindersFirst(t *testing.T) {
	ctx := newTestContext(t)
	now := time.Now()

	plan := models.NewWorkoutPlan("HIIT", []models.Exercise{models.NewExercise("burpees", 30, 10)}, now)
	plan.Notifications = []models.ReminderTime{{Hour: 18, Minute: 30}}
	if err := ctx.Store.AddWorkout(*plan); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Reconciler.Reconcile(plan); err != nil {
		t.Fatal(err)
	}

	ctx.Store = &failingDeleteStore{Provider: ctx.Store}

	cmd := &WorkoutDeleteCmd{Workout: plan.ID, Yes: true}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("expected the store delete failure to surface")
	}

	pending, err := ctx.Scheduler.Pending()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("reminders still pending after delete attempt: %v", pending)
	}
}
