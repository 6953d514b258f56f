package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"fittick/internal/config"
	"fittick/internal/models"
	"fittick/internal/notify"
	"fittick/internal/storage"
)

type Context struct {
	Store      storage.Provider
	Config     *config.Config
	Scheduler  notify.Scheduler
	Reconciler *notify.Reconciler
}

// parseReminderTimes parses a comma-separated list of HH:MM times.
func parseReminderTimes(s string) ([]models.ReminderTime, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var times []models.ReminderTime
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		pieces := strings.Split(part, ":")
		if len(pieces) != 2 {
			return nil, fmt.Errorf("invalid time format: %q", part)
		}
		hour, err := strconv.Atoi(pieces[0])
		if err != nil {
			return nil, fmt.Errorf("invalid hour in %q: %w", part, err)
		}
		minute, err := strconv.Atoi(pieces[1])
		if err != nil {
			return nil, fmt.Errorf("invalid minute in %q: %w", part, err)
		}
		if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
			return nil, fmt.Errorf("time out of range: %q", part)
		}
		times = append(times, models.ReminderTime{Hour: hour, Minute: minute})
	}
	return times, nil
}

func formatReminderTimes(times []models.ReminderTime) string {
	if len(times) == 0 {
		return "none"
	}
	var parts []string
	for _, rt := range times {
		parts = append(parts, rt.String())
	}
	return strings.Join(parts, ", ")
}

// fillTemplate substitutes the entity name into a notification template.
func fillTemplate(template, name string) string {
	return strings.ReplaceAll(template, "{name}", name)
}

// defaultNotificationText builds an entity's reminder text from the
// configured templates.
func defaultNotificationText(cfg *config.Config, name string) models.ReminderText {
	return models.ReminderText{
		Title: fillTemplate(cfg.NotificationTitle, name),
		Body:  fillTemplate(cfg.NotificationBody, name),
	}
}

func confirm(title string) (bool, error) {
	ok := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// resolveActivity finds an activity by ID or, failing that, by exact name
// (case-insensitive). A name shared by several activities is ambiguous.
func resolveActivity(ctx *Context, ref string) (models.Activity, error) {
	if activity, err := ctx.Store.GetActivity(ref); err == nil {
		return activity, nil
	}

	activities, err := ctx.Store.GetAllActivities(storage.SortByCreated)
	if err != nil {
		return models.Activity{}, err
	}

	var matches []models.Activity
	for _, a := range activities {
		if strings.EqualFold(a.Name, ref) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 0:
		return models.Activity{}, fmt.Errorf("activity not found: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Activity{}, fmt.Errorf("activity name %q is ambiguous, use an ID", ref)
	}
}

func resolveWorkout(ctx *Context, ref string) (models.WorkoutPlan, error) {
	if plan, err := ctx.Store.GetWorkout(ref); err == nil {
		return plan, nil
	}

	plans, err := ctx.Store.GetAllWorkouts()
	if err != nil {
		return models.WorkoutPlan{}, err
	}

	var matches []models.WorkoutPlan
	for _, w := range plans {
		if strings.EqualFold(w.Name, ref) {
			matches = append(matches, w)
		}
	}
	switch len(matches) {
	case 0:
		return models.WorkoutPlan{}, fmt.Errorf("workout not found: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return models.WorkoutPlan{}, fmt.Errorf("workout name %q is ambiguous, use an ID", ref)
	}
}

// rollover applies a pending day rollover to the activity and persists the
// result. Every read path goes through here so counts are never stale.
func rollover(ctx *Context, activity *models.Activity, now time.Time) error {
	if !activity.ApplyRollover(now) {
		return nil
	}
	return ctx.Store.UpdateActivity(*activity)
}

func formatDuration(totalSeconds int) string {
	d := time.Duration(totalSeconds) * time.Second
	minutes := int(d.Minutes())
	seconds := totalSeconds % 60
	if minutes == 0 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dm%02ds", minutes, seconds)
}
