package csvio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"fittick/internal/models"
)

func sampleActivity() *models.Activity {
	created := time.Unix(1735000000, 0)
	return &models.Activity{
		ID:          "a1b2c3",
		Name:        "pushups",
		Count:       42,
		ResetDaily:  true,
		LastCounted: created,
		CreatedAt:   created,
		History: []models.HistoryEntry{
			{Count: 5, Date: time.Unix(1734900000, 0)},
			{Count: 7, Date: time.Unix(1734986400, 0)},
		},
		Notifications: []models.ReminderTime{
			{Hour: 9, Minute: 0},
			{Hour: 17, Minute: 30},
		},
		NotificationText: models.ReminderText{Title: "Time for pushups!", Body: "Drop and give me twenty."},
	}
}

func TestActivityRoundTrip(t *testing.T) {
	orig := sampleActivity()

	var buf bytes.Buffer
	if err := ExportActivities(&buf, []*models.Activity{orig}); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	staged, err := ImportActivities(&buf)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(staged) != 1 {
		t.Fatalf("expected 1 staged activity, got %d", len(staged))
	}

	got := staged[0].Activity
	if got.ID != orig.ID {
		t.Errorf("id = %q, want %q", got.ID, orig.ID)
	}
	if got.Name != orig.Name || got.Count != orig.Count || got.ResetDaily != orig.ResetDaily {
		t.Errorf("fields differ: %+v vs %+v", got, orig)
	}
	if !got.CreatedAt.Equal(orig.CreatedAt) {
		t.Errorf("createdAt = %v, want %v", got.CreatedAt, orig.CreatedAt)
	}
	if len(got.History) != len(orig.History) {
		t.Fatalf("history length = %d, want %d", len(got.History), len(orig.History))
	}
	for i := range got.History {
		if got.History[i].Count != orig.History[i].Count || !got.History[i].Date.Equal(orig.History[i].Date) {
			t.Errorf("history[%d] = %+v, want %+v", i, got.History[i], orig.History[i])
		}
	}
	if len(got.Notifications) != 2 || got.Notifications[1] != (models.ReminderTime{Hour: 17, Minute: 30}) {
		t.Errorf("notifications = %+v", got.Notifications)
	}
	if got.NotificationText != orig.NotificationText {
		t.Errorf("notificationText = %+v, want %+v", got.NotificationText, orig.NotificationText)
	}
}

func TestExportIncludesSyntheticTodayEntry(t *testing.T) {
	a := sampleActivity()
	a.TodayCount = 3
	histLen := len(a.History)

	var buf bytes.Buffer
	if err := ExportActivities(&buf, []*models.Activity{a}); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	// Live entity untouched.
	if len(a.History) != histLen {
		t.Fatalf("export mutated the live activity's history")
	}

	staged, err := ImportActivities(&buf)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	got := staged[0].Activity
	if len(got.History) != histLen+1 {
		t.Fatalf("exported history length = %d, want %d", len(got.History), histLen+1)
	}
	last := got.History[len(got.History)-1]
	if last.Count != 3 || !last.Date.Equal(a.LastCounted) {
		t.Errorf("synthetic entry = %+v, want count 3 at %v", last, a.LastCounted)
	}
}

func TestQuotedFreeTextSurvives(t *testing.T) {
	a := sampleActivity()
	a.Name = `morning "run", outside`

	var buf bytes.Buffer
	if err := ExportActivities(&buf, []*models.Activity{a}); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	staged, err := ImportActivities(&buf)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if staged[0].Activity.Name != a.Name {
		t.Errorf("name = %q, want %q", staged[0].Activity.Name, a.Name)
	}
}

func TestImportRejectsWrongHeader(t *testing.T) {
	// "count" column missing.
	input := "id,name,notifications,resetDaily,createdAt,history,notificationText\n" +
		"x,y,,true,1735000000,,\n"

	staged, err := ImportActivities(strings.NewReader(input))
	if err == nil {
		t.Fatalf("expected a header error")
	}
	if staged != nil {
		t.Errorf("header failure staged %d entities, want none", len(staged))
	}
	if !strings.Contains(err.Error(), "header") {
		t.Errorf("error %q does not mention the header", err)
	}
}

func TestImportHeaderIsCaseSensitive(t *testing.T) {
	input := "ID,Name,Count,Notifications,ResetDaily,CreatedAt,History,NotificationText\n"
	if _, err := ImportActivities(strings.NewReader(input)); err == nil {
		t.Errorf("expected a case-sensitive header mismatch to fail")
	}
}

func TestImportRejectsShortRow(t *testing.T) {
	input := strings.Join(activityHeader, ",") + "\n" +
		"x,y,1\n"

	_, err := ImportActivities(strings.NewReader(input))
	if err == nil {
		t.Fatalf("expected a column-count error")
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Errorf("error %q does not name the offending row", err)
	}
	if !strings.Contains(err.Error(), "8") || !strings.Contains(err.Error(), "3") {
		t.Errorf("error %q does not name expected vs actual column counts", err)
	}
}

func TestImportSkipsBlankRows(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportActivities(&buf, []*models.Activity{sampleActivity()}); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	input := buf.String() + "\n\n"

	staged, err := ImportActivities(strings.NewReader(input))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(staged) != 1 {
		t.Errorf("expected 1 staged activity, got %d", len(staged))
	}
}

func sampleWorkout() *models.WorkoutPlan {
	created := time.Unix(1735000000, 0)
	return &models.WorkoutPlan{
		ID:        "w1",
		Name:      "morning hiit",
		CreatedAt: created,
		Exercises: []models.Exercise{
			{ID: "e1", Name: "burpees", WorkSeconds: 30, RestSeconds: 10},
			{ID: "e2", Name: "plank", WorkSeconds: 20, RestSeconds: 5},
		},
		CompletedHistory: []time.Time{time.Unix(1734900000, 0), time.Unix(1734986400, 0)},
		Notifications:    []models.ReminderTime{{Hour: 7, Minute: 0}},
		NotificationText: models.ReminderText{Title: "Workout time", Body: "Morning HIIT awaits."},
	}
}

func TestWorkoutRoundTrip(t *testing.T) {
	orig := sampleWorkout()

	var buf bytes.Buffer
	if err := ExportWorkouts(&buf, []*models.WorkoutPlan{orig}); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	staged, err := ImportWorkouts(&buf)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(staged) != 1 {
		t.Fatalf("expected 1 staged workout, got %d", len(staged))
	}

	got := staged[0].Workout
	if got.ID != orig.ID || got.Name != orig.Name {
		t.Errorf("id/name = %q/%q, want %q/%q", got.ID, got.Name, orig.ID, orig.Name)
	}
	if len(got.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(got.Exercises))
	}
	for i, ex := range got.Exercises {
		want := orig.Exercises[i]
		if ex.Name != want.Name || ex.WorkSeconds != want.WorkSeconds || ex.RestSeconds != want.RestSeconds {
			t.Errorf("exercise[%d] = %+v, want %+v", i, ex, want)
		}
		if ex.ID == "" {
			t.Errorf("exercise[%d] has no id after import", i)
		}
	}
	if len(got.CompletedHistory) != 2 || !got.CompletedHistory[0].Equal(orig.CompletedHistory[0]) {
		t.Errorf("completedHistory = %+v", got.CompletedHistory)
	}
	if got.NotificationText != orig.NotificationText {
		t.Errorf("notificationText = %+v, want %+v", got.NotificationText, orig.NotificationText)
	}
}

func TestWorkoutImportRejectsMalformedExercise(t *testing.T) {
	input := strings.Join(workoutHeader, ",") + "\n" +
		"w1,1735000000,,hiit,,burpees#30,\n"

	_, err := ImportWorkouts(strings.NewReader(input))
	if err == nil {
		t.Fatalf("expected an exercise format error")
	}
	if !strings.Contains(err.Error(), "name#work#rest") {
		t.Errorf("error %q does not describe the expected exercise format", err)
	}
}
