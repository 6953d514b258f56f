package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"fittick/internal/csvio"
)

type ImportActivitiesCmd struct {
	Path          string `arg:"" help:"CSV file to import." type:"existingfile"`
	Yes           bool   `short:"y" help:"Import everything without per-record prompts."`
	RegenerateIDs bool   `help:"Assign fresh IDs to imported records."`
}

func (c *ImportActivitiesCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	f, err := os.Open(c.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.Path, err)
	}
	defer f.Close()

	staged, err := csvio.ImportActivities(f)
	if err != nil {
		return err
	}
	if len(staged) == 0 {
		fmt.Println("Nothing to import")
		return nil
	}

	imported := 0
	var conflicts []string
	for _, rec := range staged {
		activity := rec.Activity

		if c.RegenerateIDs {
			activity.ID = uuid.New().String()
		} else if _, err := ctx.Store.GetActivity(activity.ID); err == nil {
			// A colliding id skips only that record; the rest of the
			// batch is still offered.
			conflicts = append(conflicts, fmt.Sprintf("row %d: activity %q (%s) already exists", rec.Row, activity.Name, activity.ID))
			continue
		}

		if !c.Yes {
			ok, err := confirm(fmt.Sprintf("Import activity %q (%d history days)?",
				activity.Name, len(activity.History)))
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}

		if err := ctx.Store.AddActivity(*activity); err != nil {
			return err
		}
		if err := ctx.Reconciler.Reconcile(activity); err != nil {
			return err
		}
		imported++
	}

	fmt.Printf("Imported %d of %d activities\n", imported, len(staged))
	reportConflicts(conflicts)
	return nil
}

// reportConflicts prints the records skipped over an id collision.
func reportConflicts(conflicts []string) {
	if len(conflicts) == 0 {
		return
	}
	fmt.Printf("Skipped %d conflicting record(s); rerun with --regenerate-ids to import them as copies:\n", len(conflicts))
	for _, c := range conflicts {
		fmt.Printf("  %s\n", c)
	}
}

type ImportWorkoutsCmd struct {
	Path          string `arg:"" help:"CSV file to import." type:"existingfile"`
	Yes           bool   `short:"y" help:"Import everything without per-record prompts."`
	RegenerateIDs bool   `help:"Assign fresh IDs to imported records."`
}

func (c *ImportWorkoutsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	f, err := os.Open(c.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.Path, err)
	}
	defer f.Close()

	staged, err := csvio.ImportWorkouts(f)
	if err != nil {
		return err
	}
	if len(staged) == 0 {
		fmt.Println("Nothing to import")
		return nil
	}

	imported := 0
	var conflicts []string
	for _, rec := range staged {
		plan := rec.Workout

		if c.RegenerateIDs {
			plan.ID = uuid.New().String()
		} else if _, err := ctx.Store.GetWorkout(plan.ID); err == nil {
			conflicts = append(conflicts, fmt.Sprintf("row %d: workout %q (%s) already exists", rec.Row, plan.Name, plan.ID))
			continue
		}

		if !c.Yes {
			ok, err := confirm(fmt.Sprintf("Import workout %q (%d exercises, %s)?",
				plan.Name, len(plan.Exercises), formatDuration(plan.TotalSeconds())))
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}

		if err := ctx.Store.AddWorkout(*plan); err != nil {
			return err
		}
		if err := ctx.Reconciler.Reconcile(plan); err != nil {
			return err
		}
		imported++
	}

	fmt.Printf("Imported %d of %d workouts\n", imported, len(staged))
	reportConflicts(conflicts)
	return nil
}
