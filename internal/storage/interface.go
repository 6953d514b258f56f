package storage

import "fittick/internal/models"

// ActivitySort selects the ordering of GetAllActivities.
type ActivitySort string

const (
	SortByCreated     ActivitySort = "created"
	SortByLastCounted ActivitySort = "last_counted"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Activities
	AddActivity(models.Activity) error
	GetActivity(id string) (models.Activity, error)
	GetAllActivities(sort ActivitySort) ([]models.Activity, error)
	UpdateActivity(models.Activity) error
	DeleteActivity(id string) error

	// Workouts
	AddWorkout(models.WorkoutPlan) error
	GetWorkout(id string) (models.WorkoutPlan, error)
	GetAllWorkouts() ([]models.WorkoutPlan, error)
	UpdateWorkout(models.WorkoutPlan) error
	DeleteWorkout(id string) error

	// Reminders (scheduler state, keyed by owner_hour_minute)
	SaveReminder(models.Reminder) error
	DeleteReminders(keys []string) error
	ListReminders() ([]models.Reminder, error)

	// Settings
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error

	// Utils
	GetConfigPath() string
}
