package cli

import (
	"fmt"
	"os"
	"time"

	"fittick/internal/csvio"
	"fittick/internal/models"
	"fittick/internal/storage"
)

type ExportActivitiesCmd struct {
	Out string `short:"o" help:"Output CSV path." default:"activities.csv"`
}

func (c *ExportActivitiesCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activities, err := ctx.Store.GetAllActivities(storage.SortByCreated)
	if err != nil {
		return err
	}

	now := time.Now()
	ptrs := make([]*models.Activity, len(activities))
	for i := range activities {
		// Roll pending days over first so the export reflects settled
		// history.
		if err := rollover(ctx, &activities[i], now); err != nil {
			return err
		}
		ptrs[i] = &activities[i]
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Out, err)
	}
	defer f.Close()

	if err := csvio.ExportActivities(f, ptrs); err != nil {
		return err
	}

	fmt.Printf("Exported %d activities to %s\n", len(activities), c.Out)
	return nil
}

type ExportWorkoutsCmd struct {
	Out string `short:"o" help:"Output CSV path." default:"workouts.csv"`
}

func (c *ExportWorkoutsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	plans, err := ctx.Store.GetAllWorkouts()
	if err != nil {
		return err
	}

	ptrs := make([]*models.WorkoutPlan, len(plans))
	for i := range plans {
		ptrs[i] = &plans[i]
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Out, err)
	}
	defer f.Close()

	if err := csvio.ExportWorkouts(f, ptrs); err != nil {
		return err
	}

	fmt.Printf("Exported %d workouts to %s\n", len(plans), c.Out)
	return nil
}
