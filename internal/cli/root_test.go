package cli

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fittick/internal/config"
	"fittick/internal/models"
	"fittick/internal/notify"
	"fittick/internal/storage"
)

func TestParseReminderTimes(t *testing.T) {
	times, err := parseReminderTimes("08:00, 20:30")
	if err != nil {
		t.Fatalf("parseReminderTimes failed: %v", err)
	}
	if len(times) != 2 || times[0].String() != "08:00" || times[1].String() != "20:30" {
		t.Errorf("got %v", times)
	}

	empty, err := parseReminderTimes("  ")
	if err != nil || empty != nil {
		t.Errorf("expected nil for blank input, got %v, %v", empty, err)
	}

	for _, bad := range []string{"8", "25:00", "08:60", "ab:cd", "08:00,"} {
		if _, err := parseReminderTimes(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseExercise(t *testing.T) {
	ex, err := parseExercise("pushups:30:10")
	if err != nil {
		t.Fatalf("parseExercise failed: %v", err)
	}
	if ex.Name != "pushups" || ex.WorkSeconds != 30 || ex.RestSeconds != 10 {
		t.Errorf("got %+v", ex)
	}
	if ex.ID == "" {
		t.Error("expected a generated exercise ID")
	}

	// Rest is optional
	ex, err = parseExercise("plank:60")
	if err != nil {
		t.Fatalf("parseExercise failed: %v", err)
	}
	if ex.RestSeconds != 0 {
		t.Errorf("expected zero rest, got %d", ex.RestSeconds)
	}

	for _, bad := range []string{"pushups", ":30:10", "pushups:0:10", "pushups:30:-1", "a:b:c:d"} {
		if _, err := parseExercise(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestFillTemplate(t *testing.T) {
	text := defaultNotificationText(config.DefaultConfig(), "pushups")
	if text.Title != "pushups" {
		t.Errorf("title = %q", text.Title)
	}
	if !strings.Contains(text.Body, "pushups") {
		t.Errorf("body = %q", text.Body)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{
		45:  "45s",
		60:  "1m",
		125: "2m05s",
	}
	for seconds, want := range cases {
		if got := formatDuration(seconds); got != want {
			t.Errorf("formatDuration(%d) = %q, want %q", seconds, got, want)
		}
	}
}

func newTestContext(t *testing.T) *Context {
	t.Helper()

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "test.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}

	sched := notify.NewStoreScheduler(store)
	return &Context{
		Store:      store,
		Config:     config.DefaultConfig(),
		Scheduler:  sched,
		Reconciler: notify.NewReconciler(sched),
	}
}

func TestResolveActivityByIDAndName(t *testing.T) {
	ctx := newTestContext(t)

	now := time.Now()
	pushups := models.NewActivity("Pushups", true, now)
	water := models.NewActivity("Water", false, now)
	if err := ctx.Store.AddActivity(*pushups); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.AddActivity(*water); err != nil {
		t.Fatal(err)
	}

	byID, err := resolveActivity(ctx, pushups.ID)
	if err != nil {
		t.Fatalf("resolve by ID failed: %v", err)
	}
	if byID.Name != "Pushups" {
		t.Errorf("got %q", byID.Name)
	}

	// Name matching is case-insensitive
	byName, err := resolveActivity(ctx, "pushups")
	if err != nil {
		t.Fatalf("resolve by name failed: %v", err)
	}
	if byName.ID != pushups.ID {
		t.Errorf("resolved wrong activity: %s", byName.ID)
	}

	if _, err := resolveActivity(ctx, "missing"); err == nil {
		t.Error("expected error for unknown reference")
	}
}

func TestResolveActivityAmbiguousName(t *testing.T) {
	ctx := newTestContext(t)

	now := time.Now()
	for i := 0; i < 2; i++ {
		if err := ctx.Store.AddActivity(*models.NewActivity("Stretch", true, now)); err != nil {
			t.Fatal(err)
		}
	}

	_, err := resolveActivity(ctx, "stretch")
	if err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("expected ambiguity error, got %v", err)
	}
}

func TestRolloverPersists(t *testing.T) {
	ctx := newTestContext(t)

	yesterday := time.Now().AddDate(0, 0, -1)
	activity := models.NewActivity("Situps", true, yesterday)
	activity.Increment(5, yesterday)
	if err := ctx.Store.AddActivity(*activity); err != nil {
		t.Fatal(err)
	}

	loaded, err := ctx.Store.GetActivity(activity.ID)
	if err != nil {
		t.Fatal(err)
	}
	if err := rollover(ctx, &loaded, time.Now()); err != nil {
		t.Fatalf("rollover failed: %v", err)
	}

	stored, err := ctx.Store.GetActivity(activity.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.TodayCount != 0 || stored.Count != 0 {
		t.Errorf("expected reset counts, got today %d total %d", stored.TodayCount, stored.Count)
	}
	if len(stored.History) != 1 || stored.History[0].Count != 5 {
		t.Errorf("expected archived history, got %+v", stored.History)
	}
}

func TestActivityEvents(t *testing.T) {
	now := time.Now()
	activity := models.Activity{
		History: []models.HistoryEntry{
			{Count: 3, Date: now.AddDate(0, 0, -2)},
			{Count: 2, Date: now.AddDate(0, 0, -1)},
		},
		TodayCount:  1,
		LastCounted: now,
	}

	events := activityEvents(activity)
	if len(events) != 3 {
		t.Errorf("expected history days plus today, got %d events", len(events))
	}

	activity.TodayCount = 0
	if got := len(activityEvents(activity)); got != 2 {
		t.Errorf("expected history days only, got %d", got)
	}
}
