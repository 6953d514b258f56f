package storage

import (
	"path/filepath"
	"testing"
	"time"

	"fittick/internal/models"
)

func setupTestJSONStore(t *testing.T) (*JSONStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	return store, path
}

func TestJSONInitTwiceFails(t *testing.T) {
	store, path := setupTestJSONStore(t)
	_ = store

	again := NewJSONStore(path)
	if err := again.Init(); err == nil {
		t.Error("expected second init to fail")
	}
}

func TestJSONPersistsAcrossLoads(t *testing.T) {
	store, path := setupTestJSONStore(t)

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	activity := testActivity("situps", created)
	activity.History = []models.HistoryEntry{{Count: 6, Date: created.AddDate(0, 0, -1)}}
	if err := store.AddActivity(activity); err != nil {
		t.Fatal(err)
	}

	plan := models.NewWorkoutPlan("core", []models.Exercise{
		models.NewExercise("crunches", 30, 10),
	}, created)
	if err := store.AddWorkout(*plan); err != nil {
		t.Fatal(err)
	}

	if err := store.SaveReminder(models.Reminder{OwnerID: activity.ID, Hour: 8, Minute: 0}); err != nil {
		t.Fatal(err)
	}
	if err := store.SetSetting("notify_permission", "granted"); err != nil {
		t.Fatal(err)
	}

	// Fresh store instance reading the same file.
	reloaded := NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got, err := reloaded.GetActivity(activity.ID)
	if err != nil {
		t.Fatalf("GetActivity failed: %v", err)
	}
	if got.Name != "situps" || len(got.History) != 1 || len(got.Notifications) != 2 {
		t.Errorf("activity did not survive reload: %+v", got)
	}

	workouts, err := reloaded.GetAllWorkouts()
	if err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 1 || workouts[0].Name != "core" {
		t.Errorf("workout did not survive reload: %+v", workouts)
	}

	reminders, err := reloaded.ListReminders()
	if err != nil {
		t.Fatal(err)
	}
	if len(reminders) != 1 || reminders[0].OwnerID != activity.ID {
		t.Errorf("reminders did not survive reload: %+v", reminders)
	}

	value, err := reloaded.GetSetting("notify_permission")
	if err != nil {
		t.Fatal(err)
	}
	if value != "granted" {
		t.Errorf("setting did not survive reload: %q", value)
	}
}

func TestJSONGetAllActivitiesSorting(t *testing.T) {
	store, _ := setupTestJSONStore(t)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	first := testActivity("first", base)
	second := testActivity("second", base.Add(time.Hour))
	first.LastCounted = base.Add(2 * time.Hour)

	if err := store.AddActivity(second); err != nil {
		t.Fatal(err)
	}
	if err := store.AddActivity(first); err != nil {
		t.Fatal(err)
	}

	byCreated, err := store.GetAllActivities(SortByCreated)
	if err != nil {
		t.Fatal(err)
	}
	if byCreated[0].Name != "first" {
		t.Errorf("sort by created: got %v", names(byCreated))
	}

	byCounted, err := store.GetAllActivities(SortByLastCounted)
	if err != nil {
		t.Fatal(err)
	}
	if byCounted[0].Name != "second" {
		t.Errorf("sort by last counted: got %v", names(byCounted))
	}
}

func TestJSONDeleteActivity(t *testing.T) {
	store, _ := setupTestJSONStore(t)

	activity := testActivity("row", time.Now())
	if err := store.AddActivity(activity); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteActivity(activity.ID); err != nil {
		t.Fatalf("DeleteActivity failed: %v", err)
	}
	if err := store.DeleteActivity(activity.ID); err == nil {
		t.Error("expected error deleting a missing activity")
	}
}

func TestJSONRequiresLoad(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "never.json"))

	if _, err := store.GetActivity("x"); err == nil {
		t.Error("expected error using an unloaded store")
	}
	if err := store.Load(); err == nil {
		t.Error("expected load of a missing file to fail")
	}
}
