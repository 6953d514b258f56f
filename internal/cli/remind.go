package cli

import (
	"fmt"
	"strings"

	"fittick/internal/models"
	"fittick/internal/notify"
	"fittick/internal/storage"
)

type RemindSyncCmd struct {
	ID string `help:"Sync only the entity with this ID or name."`
}

func (c *RemindSyncCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if c.ID != "" {
		return c.syncOne(ctx)
	}

	activities, err := ctx.Store.GetAllActivities(storage.SortByCreated)
	if err != nil {
		return err
	}
	plans, err := ctx.Store.GetAllWorkouts()
	if err != nil {
		return err
	}

	var owners []models.ReminderOwner
	for i := range activities {
		owners = append(owners, &activities[i])
	}
	for i := range plans {
		owners = append(owners, &plans[i])
	}

	synced := 0
	for _, owner := range owners {
		if err := ctx.Reconciler.Reconcile(owner); err != nil {
			return fmt.Errorf("failed to sync reminders for %s: %w", owner.DisplayName(), err)
		}
		synced += len(owner.ReminderTimes())
	}

	// Drop scheduled reminders whose owner no longer exists.
	pending, err := ctx.Scheduler.Pending()
	if err != nil {
		return err
	}
	var orphans []string
	for _, p := range pending {
		owned := false
		for _, owner := range owners {
			if strings.HasPrefix(p.Key, models.KeyPrefix(owner.ReminderOwnerID())) {
				owned = true
				break
			}
		}
		if !owned {
			orphans = append(orphans, p.Key)
		}
	}
	if len(orphans) > 0 {
		if err := ctx.Scheduler.Cancel(orphans); err != nil {
			return err
		}
	}

	fmt.Printf("Synced %d reminders across %d entities", synced, len(owners))
	if len(orphans) > 0 {
		fmt.Printf(", removed %d orphaned", len(orphans))
	}
	fmt.Println()
	return nil
}

// syncOne reconciles a single entity, trying activities before workouts.
func (c *RemindSyncCmd) syncOne(ctx *Context) error {
	var owner models.ReminderOwner
	if activity, err := resolveActivity(ctx, c.ID); err == nil {
		owner = &activity
	} else if plan, err := resolveWorkout(ctx, c.ID); err == nil {
		owner = &plan
	} else {
		return fmt.Errorf("no activity or workout matches %q", c.ID)
	}

	if err := ctx.Reconciler.Reconcile(owner); err != nil {
		return err
	}

	fmt.Printf("Synced %d reminders for %s\n", len(owner.ReminderTimes()), owner.DisplayName())
	return nil
}

type RemindListCmd struct{}

func (c *RemindListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	permission, err := ctx.Scheduler.Permission()
	if err != nil {
		return err
	}
	if permission == notify.PermissionDenied {
		fmt.Println("Notification permission denied; reminders will not fire")
	}

	pending, err := ctx.Scheduler.Pending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("No reminders scheduled")
		return nil
	}

	fmt.Println("Scheduled reminders:")
	for _, p := range pending {
		fmt.Printf("  %s - %s\n", p.NextTrigger.Format("Mon 15:04"), p.Title)
	}

	return nil
}

type RemindNextCmd struct{}

func (c *RemindNextCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	pending, err := ctx.Scheduler.Pending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("No reminders scheduled")
		return nil
	}

	// Pending is sorted by next trigger time.
	next := pending[0]
	fmt.Printf("Next reminder: %s at %s\n", next.Title, next.NextTrigger.Format("Mon Jan 2 15:04"))
	return nil
}
