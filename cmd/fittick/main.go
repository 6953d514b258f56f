package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"fittick/internal/cli"
	"fittick/internal/config"
	"fittick/internal/logger"
	"fittick/internal/notify"
	"fittick/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Store   string `help:"Storage path. A .json extension selects the JSON store." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd `cmd:"" help:"Initialize fittick storage."`
	Activity struct {
		Add    cli.ActivityAddCmd    `cmd:"" help:"Add a new activity."`
		List   cli.ActivityListCmd   `cmd:"" help:"List all activities."`
		Show   cli.ActivityShowCmd   `cmd:"" help:"Show one activity with history and streaks."`
		Count  cli.ActivityCountCmd  `cmd:"" help:"Count an activity up or down."`
		Edit   cli.ActivityEditCmd   `cmd:"" help:"Edit an existing activity."`
		Delete cli.ActivityDeleteCmd `cmd:"" help:"Delete an activity."`
	} `cmd:"" help:"Manage daily activities."`
	Workout struct {
		Add    cli.WorkoutAddCmd    `cmd:"" help:"Add a new workout."`
		List   cli.WorkoutListCmd   `cmd:"" help:"List all workouts."`
		Show   cli.WorkoutShowCmd   `cmd:"" help:"Show one workout with exercises and streaks."`
		Edit   cli.WorkoutEditCmd   `cmd:"" help:"Edit an existing workout."`
		Delete cli.WorkoutDeleteCmd `cmd:"" help:"Delete a workout."`
		Run    cli.WorkoutRunCmd    `cmd:"" help:"Run a workout session."`
	} `cmd:"" help:"Manage workouts."`
	Remind struct {
		Sync cli.RemindSyncCmd `cmd:"" help:"Reconcile scheduled reminders with all entities."`
		List cli.RemindListCmd `cmd:"" help:"List scheduled reminders."`
		Next cli.RemindNextCmd `cmd:"" help:"Show the next reminder."`
	} `cmd:"" help:"Manage reminders."`
	Export struct {
		Activities cli.ExportActivitiesCmd `cmd:"" help:"Export activities to CSV."`
		Workouts   cli.ExportWorkoutsCmd   `cmd:"" help:"Export workouts to CSV."`
	} `cmd:"" help:"Export data to CSV."`
	Import struct {
		Activities cli.ImportActivitiesCmd `cmd:"" help:"Import activities from CSV."`
		Workouts   cli.ImportWorkoutsCmd   `cmd:"" help:"Import workouts from CSV."`
	} `cmd:"" help:"Import data from CSV."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("fittick"),
		kong.Description("Fitness habit tracker with reminders and workout timers"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	storePath := cfg.StorePath
	if CLI.Store != "" {
		storePath = CLI.Store
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(storePath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(storePath, ".json") {
		store = storage.NewJSONStore(storePath)
	} else {
		store = storage.NewSQLiteStore(storePath)
	}
	defer store.Close()

	scheduler := notify.NewStoreScheduler(store)
	appCtx := &cli.Context{
		Store:      store,
		Config:     cfg,
		Scheduler:  scheduler,
		Reconciler: notify.NewReconciler(scheduler),
	}

	err = ctx.Run(appCtx)
	if err != nil {
		logger.Error("command failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
