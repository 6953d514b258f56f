package cli

import (
	"fmt"
	"time"

	"fittick/internal/models"
	"fittick/internal/storage"
	"fittick/internal/streak"
)

type ActivityAddCmd struct {
	Name   string `arg:"" help:"Activity name."`
	Reset  bool   `help:"Reset the running count at each day boundary." default:"true" negatable:""`
	Remind string `short:"r" help:"Comma-separated reminder times (HH:MM)."`
	Title  string `help:"Reminder title. Defaults to the configured template."`
	Body   string `help:"Reminder body. Defaults to the configured template."`
}

func (c *ActivityAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	times, err := parseReminderTimes(c.Remind)
	if err != nil {
		return err
	}

	activity := models.NewActivity(c.Name, c.Reset, time.Now())
	activity.Notifications = times
	activity.NotificationText = defaultNotificationText(ctx.Config, c.Name)
	if c.Title != "" {
		activity.NotificationText.Title = c.Title
	}
	if c.Body != "" {
		activity.NotificationText.Body = c.Body
	}

	if err := ctx.Store.AddActivity(*activity); err != nil {
		return err
	}
	if err := ctx.Reconciler.Reconcile(activity); err != nil {
		return err
	}

	fmt.Printf("Added activity: %s (ID: %s)\n", c.Name, activity.ID)
	return nil
}

type ActivityListCmd struct {
	Sort string `short:"s" help:"Sort order (created|counted)." enum:"created,counted" default:"created"`
}

func (c *ActivityListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	sortKey := storage.SortByCreated
	if c.Sort == "counted" {
		sortKey = storage.SortByLastCounted
	}

	activities, err := ctx.Store.GetAllActivities(sortKey)
	if err != nil {
		return err
	}
	if len(activities) == 0 {
		fmt.Println("No activities found")
		return nil
	}

	now := time.Now()
	fmt.Println("Activities:")
	for i := range activities {
		activity := &activities[i]
		if err := rollover(ctx, activity, now); err != nil {
			return err
		}

		line := fmt.Sprintf("  %s - today %d, total %d", activity.Name, activity.TodayCount, activity.Count)
		if next, ok := activity.NextReminder(now); ok {
			line += fmt.Sprintf(" (next reminder %s)", next.Format("Mon 15:04"))
		}
		fmt.Println(line)
	}

	return nil
}

type ActivityShowCmd struct {
	Activity string `arg:"" help:"Activity ID or name."`
}

func (c *ActivityShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activity, err := resolveActivity(ctx, c.Activity)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := rollover(ctx, &activity, now); err != nil {
		return err
	}

	policy := "resets daily"
	if !activity.ResetDaily {
		policy = "keeps running total"
	}

	fmt.Printf("%s (ID: %s)\n", activity.Name, activity.ID)
	fmt.Printf("  Today: %d\n", activity.TodayCount)
	fmt.Printf("  Total: %d (%s)\n", activity.Count, policy)
	fmt.Printf("  Created: %s\n", activity.CreatedAt.Format("2006-01-02"))
	fmt.Printf("  Reminders: %s\n", formatReminderTimes(activity.Notifications))

	events := activityEvents(activity)
	fmt.Printf("  Streak: %d current, %d longest\n", streak.Current(events, now), streak.Longest(events))

	if len(activity.History) > 0 {
		fmt.Println("  History:")
		for _, entry := range activity.History {
			fmt.Printf("    %s: %d\n", entry.Date.Format("2006-01-02"), entry.Count)
		}
	}

	return nil
}

// activityEvents collects the days the activity was performed: every archived
// history day plus today when something has been counted already.
func activityEvents(activity models.Activity) []time.Time {
	var events []time.Time
	for _, entry := range activity.History {
		events = append(events, entry.Date)
	}
	if activity.TodayCount > 0 {
		events = append(events, activity.LastCounted)
	}
	return events
}

type ActivityCountCmd struct {
	Activity string `arg:"" help:"Activity ID or name."`
	By       int    `short:"b" help:"Amount to count." default:"1"`
	Down     bool   `short:"d" help:"Count down instead of up."`
}

func (c *ActivityCountCmd) Validate() error {
	if c.By < 1 {
		return fmt.Errorf("count amount must be positive")
	}
	return nil
}

func (c *ActivityCountCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activity, err := resolveActivity(ctx, c.Activity)
	if err != nil {
		return err
	}

	now := time.Now()
	// Roll the day over before mutating so yesterday's count is archived,
	// not mixed into today's.
	activity.ApplyRollover(now)

	if c.Down {
		for i := 0; i < c.By; i++ {
			activity.Decrement(now)
		}
	} else {
		activity.Increment(c.By, now)
	}

	if err := ctx.Store.UpdateActivity(activity); err != nil {
		return err
	}

	fmt.Printf("%s: today %d, total %d\n", activity.Name, activity.TodayCount, activity.Count)
	return nil
}

type ActivityEditCmd struct {
	Activity string  `arg:"" help:"Activity ID or name."`
	Name     string  `help:"New name."`
	Reset    *bool   `help:"Reset the running count at each day boundary." negatable:""`
	Remind   *string `short:"r" help:"Comma-separated reminder times (HH:MM). Empty clears them."`
	Title    string  `help:"New reminder title."`
	Body     string  `help:"New reminder body."`
}

func (c *ActivityEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activity, err := resolveActivity(ctx, c.Activity)
	if err != nil {
		return err
	}

	if c.Name != "" {
		activity.Name = c.Name
	}
	if c.Reset != nil {
		activity.ResetDaily = *c.Reset
	}
	if c.Remind != nil {
		times, err := parseReminderTimes(*c.Remind)
		if err != nil {
			return err
		}
		activity.Notifications = times
	}
	if c.Title != "" {
		activity.NotificationText.Title = c.Title
	}
	if c.Body != "" {
		activity.NotificationText.Body = c.Body
	}

	if err := ctx.Store.UpdateActivity(activity); err != nil {
		return err
	}
	if err := ctx.Reconciler.Reconcile(&activity); err != nil {
		return err
	}

	fmt.Printf("Updated activity: %s\n", activity.Name)
	return nil
}

type ActivityDeleteCmd struct {
	Activity string `arg:"" help:"Activity ID or name."`
	Yes      bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ActivityDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activity, err := resolveActivity(ctx, c.Activity)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := confirm(fmt.Sprintf("Delete activity %q and its history?", activity.Name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted")
			return nil
		}
	}

	// Cancel reminders first so a partial failure never leaves scheduled
	// reminders pointing at a deleted activity.
	if err := ctx.Reconciler.RemoveAll(activity.ID); err != nil {
		return err
	}
	if err := ctx.Store.DeleteActivity(activity.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted activity: %s\n", activity.Name)
	return nil
}
