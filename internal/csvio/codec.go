// Package csvio serializes activities and workout plans to and from flat
// CSV records. Timestamps are epoch seconds, wall-clock reminder times are
// "hour#minute", repeated sub-records are joined by ";" with "#" between
// sub-fields. encoding/csv handles the quoting of free-text fields.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"fittick/internal/models"
)

var (
	activityHeader = []string{"id", "name", "count", "notifications", "resetDaily", "createdAt", "history", "notificationText"}
	workoutHeader  = []string{"id", "createdAt", "completedHistory", "name", "notifications", "exercises", "notificationText"}
)

// StagedActivity is a parsed but not-yet-committed import record. Row is the
// 1-based CSV row it came from, for conflict messages.
type StagedActivity struct {
	Row      int
	Activity *models.Activity
}

// StagedWorkout is the workout counterpart of StagedActivity.
type StagedWorkout struct {
	Row     int
	Workout *models.WorkoutPlan
}

func epoch(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

func parseEpoch(s string) (time.Time, error) {
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return time.Unix(sec, 0), nil
}

func encodeTimes(times []models.ReminderTime) string {
	parts := make([]string, len(times))
	for i, rt := range times {
		parts[i] = fmt.Sprintf("%d#%d", rt.Hour, rt.Minute)
	}
	return strings.Join(parts, ";")
}

func parseTimes(s string) ([]models.ReminderTime, error) {
	if s == "" {
		return nil, nil
	}
	var times []models.ReminderTime
	for _, part := range strings.Split(s, ";") {
		fields := strings.Split(part, "#")
		if len(fields) != 2 {
			return nil, fmt.Errorf("invalid reminder time %q: expected hour#minute", part)
		}
		hour, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("invalid hour in %q: %w", part, err)
		}
		minute, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("invalid minute in %q: %w", part, err)
		}
		times = append(times, models.ReminderTime{Hour: hour, Minute: minute})
	}
	return times, nil
}

func encodeText(text models.ReminderText) string {
	if text.Title == "" && text.Body == "" {
		return ""
	}
	return text.Title + "#" + text.Body
}

func parseText(s string) models.ReminderText {
	if s == "" {
		return models.ReminderText{}
	}
	fields := strings.SplitN(s, "#", 2)
	text := models.ReminderText{Title: fields[0]}
	if len(fields) > 1 {
		text.Body = fields[1]
	}
	return text
}

// ExportActivities writes one CSV row per activity. An activity with a
// non-zero today count gets a synthetic history entry for the current day in
// the exported row; the live entity is never mutated.
func ExportActivities(w io.Writer, activities []*models.Activity) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(activityHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, a := range activities {
		history := a.History
		if a.TodayCount != 0 {
			history = append(append([]models.HistoryEntry{}, history...),
				models.HistoryEntry{Count: a.TodayCount, Date: a.LastCounted})
		}
		histParts := make([]string, len(history))
		for i, h := range history {
			histParts[i] = epoch(h.Date) + "#" + strconv.Itoa(h.Count)
		}

		row := []string{
			a.ID,
			a.Name,
			strconv.Itoa(a.Count),
			encodeTimes(a.Notifications),
			strconv.FormatBool(a.ResetDaily),
			epoch(a.CreatedAt),
			strings.Join(histParts, ";"),
			encodeText(a.NotificationText),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write activity %s: %w", a.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportWorkouts writes one CSV row per workout plan.
func ExportWorkouts(w io.Writer, plans []*models.WorkoutPlan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(workoutHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, p := range plans {
		histParts := make([]string, len(p.CompletedHistory))
		for i, done := range p.CompletedHistory {
			histParts[i] = epoch(done)
		}
		exParts := make([]string, len(p.Exercises))
		for i, ex := range p.Exercises {
			exParts[i] = fmt.Sprintf("%s#%d#%d", ex.Name, ex.WorkSeconds, ex.RestSeconds)
		}

		row := []string{
			p.ID,
			epoch(p.CreatedAt),
			strings.Join(histParts, ";"),
			p.Name,
			encodeTimes(p.Notifications),
			strings.Join(exParts, ";"),
			encodeText(p.NotificationText),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write workout %s: %w", p.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

type row struct {
	num  int // 1-based CSV row number
	cols []string
}

// readRows reads every record, validates the header verbatim, and rejects
// rows with too few columns. Any failure here fails the whole import.
func readRows(r io.Reader, header []string) ([]row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file: expected header row %s", strings.Join(header, ","))
	}

	got := records[0]
	if len(got) != len(header) {
		return nil, fmt.Errorf("wrong header row: expected %s, got %s",
			strings.Join(header, ","), strings.Join(got, ","))
	}
	for i, name := range header {
		if got[i] != name {
			return nil, fmt.Errorf("wrong header row: expected %s, got %s",
				strings.Join(header, ","), strings.Join(got, ","))
		}
	}

	var rows []row
	for i, record := range records[1:] {
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) < len(header) {
			return nil, fmt.Errorf("row %d: expected at least %d columns, got %d",
				i+2, len(header), len(record))
		}
		rows = append(rows, row{num: i + 2, cols: record})
	}
	return rows, nil
}

// ImportActivities parses every row into staged activities. A malformed
// header or row fails the whole batch; nothing is committed here — the
// caller decides per record against its existing collection.
func ImportActivities(r io.Reader) ([]StagedActivity, error) {
	rows, err := readRows(r, activityHeader)
	if err != nil {
		return nil, err
	}

	var staged []StagedActivity
	for _, rec := range rows {
		rowNum, cols := rec.num, rec.cols

		count, err := strconv.Atoi(cols[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid count %q: %w", rowNum, cols[2], err)
		}
		times, err := parseTimes(cols[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		resetDaily, err := strconv.ParseBool(cols[4])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid resetDaily %q: %w", rowNum, cols[4], err)
		}
		createdAt, err := parseEpoch(cols[5])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		var history []models.HistoryEntry
		if cols[6] != "" {
			for _, part := range strings.Split(cols[6], ";") {
				fields := strings.Split(part, "#")
				if len(fields) != 2 {
					return nil, fmt.Errorf("row %d: invalid history entry %q: expected date#count", rowNum, part)
				}
				date, err := parseEpoch(fields[0])
				if err != nil {
					return nil, fmt.Errorf("row %d: %w", rowNum, err)
				}
				n, err := strconv.Atoi(fields[1])
				if err != nil {
					return nil, fmt.Errorf("row %d: invalid history count %q: %w", rowNum, fields[1], err)
				}
				history = append(history, models.HistoryEntry{Count: n, Date: date})
			}
		}

		staged = append(staged, StagedActivity{
			Row: rowNum,
			Activity: &models.Activity{
				ID:               cols[0],
				Name:             cols[1],
				Count:            count,
				ResetDaily:       resetDaily,
				LastCounted:      createdAt,
				CreatedAt:        createdAt,
				History:          history,
				Notifications:    times,
				NotificationText: parseText(cols[7]),
			},
		})
	}
	return staged, nil
}

// ImportWorkouts parses every row into staged workout plans, with the same
// whole-batch failure semantics as ImportActivities.
func ImportWorkouts(r io.Reader) ([]StagedWorkout, error) {
	rows, err := readRows(r, workoutHeader)
	if err != nil {
		return nil, err
	}

	var staged []StagedWorkout
	for _, rec := range rows {
		rowNum, cols := rec.num, rec.cols

		createdAt, err := parseEpoch(cols[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		var completed []time.Time
		if cols[2] != "" {
			for _, part := range strings.Split(cols[2], ";") {
				done, err := parseEpoch(part)
				if err != nil {
					return nil, fmt.Errorf("row %d: %w", rowNum, err)
				}
				completed = append(completed, done)
			}
		}

		times, err := parseTimes(cols[4])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		var exercises []models.Exercise
		if cols[5] != "" {
			for _, part := range strings.Split(cols[5], ";") {
				fields := strings.Split(part, "#")
				if len(fields) != 3 {
					return nil, fmt.Errorf("row %d: invalid exercise %q: expected name#work#rest", rowNum, part)
				}
				work, err := strconv.Atoi(fields[1])
				if err != nil {
					return nil, fmt.Errorf("row %d: invalid work duration %q: %w", rowNum, fields[1], err)
				}
				rest, err := strconv.Atoi(fields[2])
				if err != nil {
					return nil, fmt.Errorf("row %d: invalid rest duration %q: %w", rowNum, fields[2], err)
				}
				exercises = append(exercises, models.NewExercise(fields[0], work, rest))
			}
		}

		staged = append(staged, StagedWorkout{
			Row: rowNum,
			Workout: &models.WorkoutPlan{
				ID:               cols[0],
				Name:             cols[3],
				CreatedAt:        createdAt,
				Exercises:        exercises,
				CompletedHistory: completed,
				Notifications:    times,
				NotificationText: parseText(cols[6]),
			},
		})
	}
	return staged, nil
}
