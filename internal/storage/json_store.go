package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fittick/internal/models"
)

type Store struct {
	Version    int                           `json:"version"`
	Activities map[string]models.Activity    `json:"activities"`
	Workouts   map[string]models.WorkoutPlan `json:"workouts"`
	Reminders  map[string]models.Reminder    `json:"reminders"`
	Settings   map[string]string             `json:"settings"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:    1,
		Activities: make(map[string]models.Activity),
		Workouts:   make(map[string]models.WorkoutPlan),
		Reminders:  make(map[string]models.Reminder),
		Settings:   make(map[string]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	if s.store != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'fittick init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Activities == nil {
		s.store.Activities = make(map[string]models.Activity)
	}
	if s.store.Workouts == nil {
		s.store.Workouts = make(map[string]models.WorkoutPlan)
	}
	if s.store.Reminders == nil {
		s.store.Reminders = make(map[string]models.Reminder)
	}
	if s.store.Settings == nil {
		s.store.Settings = make(map[string]string)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) AddActivity(activity models.Activity) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Activities[activity.ID] = activity
	return s.save()
}

func (s *JSONStore) GetActivity(id string) (models.Activity, error) {
	if s.store == nil {
		return models.Activity{}, fmt.Errorf("storage not loaded")
	}

	activity, ok := s.store.Activities[id]
	if !ok {
		return models.Activity{}, fmt.Errorf("activity not found: %s", id)
	}

	return activity, nil
}

func (s *JSONStore) GetAllActivities(sortKey ActivitySort) ([]models.Activity, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	activities := make([]models.Activity, 0, len(s.store.Activities))
	for _, activity := range s.store.Activities {
		activities = append(activities, activity)
	}

	sort.Slice(activities, func(i, j int) bool {
		if sortKey == SortByLastCounted {
			if !activities[i].LastCounted.Equal(activities[j].LastCounted) {
				return activities[i].LastCounted.Before(activities[j].LastCounted)
			}
		} else if !activities[i].CreatedAt.Equal(activities[j].CreatedAt) {
			return activities[i].CreatedAt.Before(activities[j].CreatedAt)
		}
		return activities[i].ID < activities[j].ID
	})

	return activities, nil
}

func (s *JSONStore) UpdateActivity(activity models.Activity) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Activities[activity.ID] = activity
	return s.save()
}

func (s *JSONStore) DeleteActivity(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Activities[id]; !ok {
		return fmt.Errorf("activity not found: %s", id)
	}

	delete(s.store.Activities, id)
	return s.save()
}

func (s *JSONStore) AddWorkout(plan models.WorkoutPlan) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Workouts[plan.ID] = plan
	return s.save()
}

func (s *JSONStore) GetWorkout(id string) (models.WorkoutPlan, error) {
	if s.store == nil {
		return models.WorkoutPlan{}, fmt.Errorf("storage not loaded")
	}

	plan, ok := s.store.Workouts[id]
	if !ok {
		return models.WorkoutPlan{}, fmt.Errorf("workout not found: %s", id)
	}

	return plan, nil
}

func (s *JSONStore) GetAllWorkouts() ([]models.WorkoutPlan, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	plans := make([]models.WorkoutPlan, 0, len(s.store.Workouts))
	for _, plan := range s.store.Workouts {
		plans = append(plans, plan)
	}

	sort.Slice(plans, func(i, j int) bool {
		if !plans[i].CreatedAt.Equal(plans[j].CreatedAt) {
			return plans[i].CreatedAt.Before(plans[j].CreatedAt)
		}
		return plans[i].ID < plans[j].ID
	})

	return plans, nil
}

func (s *JSONStore) UpdateWorkout(plan models.WorkoutPlan) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Workouts[plan.ID] = plan
	return s.save()
}

func (s *JSONStore) DeleteWorkout(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Workouts[id]; !ok {
		return fmt.Errorf("workout not found: %s", id)
	}

	delete(s.store.Workouts, id)
	return s.save()
}

func (s *JSONStore) SaveReminder(rem models.Reminder) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Reminders[rem.Key()] = rem
	return s.save()
}

func (s *JSONStore) DeleteReminders(keys []string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	for _, key := range keys {
		delete(s.store.Reminders, key)
	}
	return s.save()
}

func (s *JSONStore) ListReminders() ([]models.Reminder, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	reminders := make([]models.Reminder, 0, len(s.store.Reminders))
	for _, rem := range s.store.Reminders {
		reminders = append(reminders, rem)
	}

	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].Key() < reminders[j].Key()
	})

	return reminders, nil
}

func (s *JSONStore) GetSetting(key string) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("storage not loaded")
	}
	return s.store.Settings[key], nil
}

func (s *JSONStore) SetSetting(key, value string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Settings[key] = value
	return s.save()
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note:
//   - JSONStore is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Running multiple fittick processes that share the same storage path at
//     the same time is not supported and may lead to data loss.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
