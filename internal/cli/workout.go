package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fittick/internal/models"
	"fittick/internal/streak"
	tuisession "fittick/internal/tui/session"
)

// parseExercise parses a name:work[:rest] spec with durations in seconds.
func parseExercise(spec string) (models.Exercise, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return models.Exercise{}, fmt.Errorf("invalid exercise %q, expected name:work[:rest]", spec)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return models.Exercise{}, fmt.Errorf("exercise name cannot be empty in %q", spec)
	}

	work, err := strconv.Atoi(parts[1])
	if err != nil || work <= 0 {
		return models.Exercise{}, fmt.Errorf("invalid work duration in %q", spec)
	}

	rest := 0
	if len(parts) == 3 {
		rest, err = strconv.Atoi(parts[2])
		if err != nil || rest < 0 {
			return models.Exercise{}, fmt.Errorf("invalid rest duration in %q", spec)
		}
	}

	return models.NewExercise(name, work, rest), nil
}

func parseExercises(specs []string) ([]models.Exercise, error) {
	var exercises []models.Exercise
	for _, spec := range specs {
		ex, err := parseExercise(spec)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	return exercises, nil
}

type WorkoutAddCmd struct {
	Name     string   `arg:"" help:"Workout name."`
	Exercise []string `short:"x" help:"Exercise as name:work[:rest] in seconds. Repeatable, in execution order." required:""`
	Remind   string   `short:"r" help:"Comma-separated reminder times (HH:MM)."`
	Title    string   `help:"Reminder title. Defaults to the configured template."`
	Body     string   `help:"Reminder body. Defaults to the configured template."`
}

func (c *WorkoutAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	exercises, err := parseExercises(c.Exercise)
	if err != nil {
		return err
	}
	times, err := parseReminderTimes(c.Remind)
	if err != nil {
		return err
	}

	plan := models.NewWorkoutPlan(c.Name, exercises, time.Now())
	plan.Notifications = times
	plan.NotificationText = defaultNotificationText(ctx.Config, c.Name)
	if c.Title != "" {
		plan.NotificationText.Title = c.Title
	}
	if c.Body != "" {
		plan.NotificationText.Body = c.Body
	}

	if err := ctx.Store.AddWorkout(*plan); err != nil {
		return err
	}
	if err := ctx.Reconciler.Reconcile(plan); err != nil {
		return err
	}

	fmt.Printf("Added workout: %s (%d exercises, %s) (ID: %s)\n",
		c.Name, len(exercises), formatDuration(plan.TotalSeconds()), plan.ID)
	return nil
}

type WorkoutListCmd struct{}

func (c *WorkoutListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	plans, err := ctx.Store.GetAllWorkouts()
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		fmt.Println("No workouts found")
		return nil
	}

	now := time.Now()
	fmt.Println("Workouts:")
	for _, plan := range plans {
		line := fmt.Sprintf("  %s - %d exercises, %s, completed %d times",
			plan.Name, len(plan.Exercises), formatDuration(plan.TotalSeconds()), len(plan.CompletedHistory))
		if next, ok := plan.NextReminder(now); ok {
			line += fmt.Sprintf(" (next reminder %s)", next.Format("Mon 15:04"))
		}
		fmt.Println(line)
	}

	return nil
}

type WorkoutShowCmd struct {
	Workout string `arg:"" help:"Workout ID or name."`
}

func (c *WorkoutShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	plan, err := resolveWorkout(ctx, c.Workout)
	if err != nil {
		return err
	}

	now := time.Now()
	fmt.Printf("%s (ID: %s)\n", plan.Name, plan.ID)
	fmt.Printf("  Total: %s\n", formatDuration(plan.TotalSeconds()))
	fmt.Printf("  Reminders: %s\n", formatReminderTimes(plan.Notifications))
	fmt.Printf("  Streak: %d current, %d longest\n",
		streak.Current(plan.CompletedHistory, now), streak.Longest(plan.CompletedHistory))

	fmt.Println("  Exercises:")
	for i, ex := range plan.Exercises {
		line := fmt.Sprintf("    %d. %s - %ds work", i+1, ex.Name, ex.WorkSeconds)
		if ex.RestSeconds > 0 {
			line += fmt.Sprintf(", %ds rest", ex.RestSeconds)
		}
		fmt.Println(line)
	}

	if len(plan.CompletedHistory) > 0 {
		fmt.Printf("  Completed %d times, last on %s\n",
			len(plan.CompletedHistory),
			plan.CompletedHistory[len(plan.CompletedHistory)-1].Format("2006-01-02"))
	}

	return nil
}

type WorkoutEditCmd struct {
	Workout  string   `arg:"" help:"Workout ID or name."`
	Name     string   `help:"New name."`
	Exercise []string `short:"x" help:"Replacement exercise list as name:work[:rest]. Repeatable."`
	Remind   *string  `short:"r" help:"Comma-separated reminder times (HH:MM). Empty clears them."`
	Title    string   `help:"New reminder title."`
	Body     string   `help:"New reminder body."`
}

func (c *WorkoutEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	plan, err := resolveWorkout(ctx, c.Workout)
	if err != nil {
		return err
	}

	if c.Name != "" {
		plan.Name = c.Name
	}
	if len(c.Exercise) > 0 {
		exercises, err := parseExercises(c.Exercise)
		if err != nil {
			return err
		}
		plan.Exercises = exercises
	}
	if c.Remind != nil {
		times, err := parseReminderTimes(*c.Remind)
		if err != nil {
			return err
		}
		plan.Notifications = times
	}
	if c.Title != "" {
		plan.NotificationText.Title = c.Title
	}
	if c.Body != "" {
		plan.NotificationText.Body = c.Body
	}

	if err := ctx.Store.UpdateWorkout(plan); err != nil {
		return err
	}
	if err := ctx.Reconciler.Reconcile(&plan); err != nil {
		return err
	}

	fmt.Printf("Updated workout: %s\n", plan.Name)
	return nil
}

type WorkoutDeleteCmd struct {
	Workout string `arg:"" help:"Workout ID or name."`
	Yes     bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *WorkoutDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	plan, err := resolveWorkout(ctx, c.Workout)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := confirm(fmt.Sprintf("Delete workout %q and its history?", plan.Name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := ctx.Reconciler.RemoveAll(plan.ID); err != nil {
		return err
	}
	if err := ctx.Store.DeleteWorkout(plan.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted workout: %s\n", plan.Name)
	return nil
}

type WorkoutRunCmd struct {
	Workout string `arg:"" help:"Workout ID or name."`
	Warmup  int    `short:"w" help:"Warmup seconds before the first exercise; 0 skips the warm-up. Defaults to the configured value." default:"-1"`
}

func (c *WorkoutRunCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	plan, err := resolveWorkout(ctx, c.Workout)
	if err != nil {
		return err
	}
	if len(plan.Exercises) == 0 {
		return fmt.Errorf("workout %q has no exercises", plan.Name)
	}

	warmup := ctx.Config.WarmupSeconds
	if c.Warmup >= 0 {
		warmup = c.Warmup
	}

	completed, err := tuisession.Run(plan, warmup)
	if err != nil {
		return err
	}
	if !completed {
		fmt.Println("Session cancelled")
		return nil
	}

	plan.RecordCompletion(time.Now())
	if err := ctx.Store.UpdateWorkout(plan); err != nil {
		return err
	}

	fmt.Printf("Completed %s! Total completions: %d\n", plan.Name, len(plan.CompletedHistory))
	return nil
}
