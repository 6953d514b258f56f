package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"fittick/internal/migration"
	"fittick/internal/models"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	// Run migrations
	runner := migration.NewRunner(s.db, MigrationsFS())
	if _, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'fittick init' first")
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	runner := migration.NewRunner(s.db, MigrationsFS())
	return runner.ValidateVersion()
}

func (s *SQLiteStore) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Child rows (history, exercises, completions) cascade on entity delete.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return db, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) AddActivity(activity models.Activity) error {
	return s.UpdateActivity(activity)
}

func (s *SQLiteStore) GetActivity(id string) (models.Activity, error) {
	activity, err := s.loadActivity(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Activity{}, fmt.Errorf("activity not found: %s", id)
		}
		return models.Activity{}, err
	}
	return activity, nil
}

func (s *SQLiteStore) GetAllActivities(sortKey ActivitySort) ([]models.Activity, error) {
	order := "created_at"
	if sortKey == SortByLastCounted {
		order = "last_counted"
	}

	rows, err := s.db.Query("SELECT id FROM activities ORDER BY " + order + ", id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var activities []models.Activity
	for _, id := range ids {
		activity, err := s.loadActivity(id)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, nil
}

func (s *SQLiteStore) loadActivity(id string) (models.Activity, error) {
	row := s.db.QueryRow(`
		SELECT id, name, count, today_count, reset_daily, last_counted, created_at, notif_title, notif_body
		FROM activities WHERE id = ?`, id)

	var a models.Activity
	var lastCounted, createdAt int64
	err := row.Scan(
		&a.ID, &a.Name, &a.Count, &a.TodayCount, &a.ResetDaily,
		&lastCounted, &createdAt, &a.NotificationText.Title, &a.NotificationText.Body,
	)
	if err != nil {
		return models.Activity{}, err
	}
	a.LastCounted = time.Unix(lastCounted, 0)
	a.CreatedAt = time.Unix(createdAt, 0)

	rows, err := s.db.Query(
		"SELECT count, date FROM activity_history WHERE activity_id = ? ORDER BY date", id)
	if err != nil {
		return models.Activity{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var entry models.HistoryEntry
		var date int64
		if err := rows.Scan(&entry.Count, &date); err != nil {
			return models.Activity{}, err
		}
		entry.Date = time.Unix(date, 0)
		a.History = append(a.History, entry)
	}
	if err := rows.Err(); err != nil {
		return models.Activity{}, err
	}

	times, err := s.loadNotificationTimes(id)
	if err != nil {
		return models.Activity{}, err
	}
	a.Notifications = times

	return a, nil
}

func (s *SQLiteStore) UpdateActivity(activity models.Activity) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO activities (
			id, name, count, today_count, reset_daily, last_counted, created_at, notif_title, notif_body
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		activity.ID, activity.Name, activity.Count, activity.TodayCount, activity.ResetDaily,
		activity.LastCounted.Unix(), activity.CreatedAt.Unix(),
		activity.NotificationText.Title, activity.NotificationText.Body,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM activity_history WHERE activity_id = ?", activity.ID); err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO activity_history (activity_id, count, date) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, entry := range activity.History {
		if _, err := stmt.Exec(activity.ID, entry.Count, entry.Date.Unix()); err != nil {
			return err
		}
	}

	if err := saveNotificationTimes(tx, activity.ID, activity.Notifications); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) DeleteActivity(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM activities WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("activity not found: %s", id)
	}

	if _, err := tx.Exec("DELETE FROM notification_times WHERE owner_id = ?", id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) AddWorkout(plan models.WorkoutPlan) error {
	return s.UpdateWorkout(plan)
}

func (s *SQLiteStore) GetWorkout(id string) (models.WorkoutPlan, error) {
	plan, err := s.loadWorkout(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.WorkoutPlan{}, fmt.Errorf("workout not found: %s", id)
		}
		return models.WorkoutPlan{}, err
	}
	return plan, nil
}

func (s *SQLiteStore) GetAllWorkouts() ([]models.WorkoutPlan, error) {
	rows, err := s.db.Query("SELECT id FROM workouts ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var plans []models.WorkoutPlan
	for _, id := range ids {
		plan, err := s.loadWorkout(id)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func (s *SQLiteStore) loadWorkout(id string) (models.WorkoutPlan, error) {
	row := s.db.QueryRow(
		"SELECT id, name, created_at, notif_title, notif_body FROM workouts WHERE id = ?", id)

	var w models.WorkoutPlan
	var createdAt int64
	err := row.Scan(&w.ID, &w.Name, &createdAt, &w.NotificationText.Title, &w.NotificationText.Body)
	if err != nil {
		return models.WorkoutPlan{}, err
	}
	w.CreatedAt = time.Unix(createdAt, 0)

	rows, err := s.db.Query(`
		SELECT id, name, work_seconds, rest_seconds
		FROM exercises WHERE workout_id = ? ORDER BY position`, id)
	if err != nil {
		return models.WorkoutPlan{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var ex models.Exercise
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.WorkSeconds, &ex.RestSeconds); err != nil {
			return models.WorkoutPlan{}, err
		}
		w.Exercises = append(w.Exercises, ex)
	}
	if err := rows.Err(); err != nil {
		return models.WorkoutPlan{}, err
	}

	crows, err := s.db.Query(
		"SELECT completed_at FROM workout_completions WHERE workout_id = ? ORDER BY completed_at", id)
	if err != nil {
		return models.WorkoutPlan{}, err
	}
	defer crows.Close()
	for crows.Next() {
		var completedAt int64
		if err := crows.Scan(&completedAt); err != nil {
			return models.WorkoutPlan{}, err
		}
		w.CompletedHistory = append(w.CompletedHistory, time.Unix(completedAt, 0))
	}
	if err := crows.Err(); err != nil {
		return models.WorkoutPlan{}, err
	}

	times, err := s.loadNotificationTimes(id)
	if err != nil {
		return models.WorkoutPlan{}, err
	}
	w.Notifications = times

	return w, nil
}

func (s *SQLiteStore) UpdateWorkout(plan models.WorkoutPlan) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO workouts (id, name, created_at, notif_title, notif_body)
		VALUES (?, ?, ?, ?, ?)`,
		plan.ID, plan.Name, plan.CreatedAt.Unix(),
		plan.NotificationText.Title, plan.NotificationText.Body,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM exercises WHERE workout_id = ?", plan.ID); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO exercises (id, workout_id, position, name, work_seconds, rest_seconds)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, ex := range plan.Exercises {
		if _, err := stmt.Exec(ex.ID, plan.ID, i, ex.Name, ex.WorkSeconds, ex.RestSeconds); err != nil {
			return err
		}
	}

	if _, err := tx.Exec("DELETE FROM workout_completions WHERE workout_id = ?", plan.ID); err != nil {
		return err
	}
	cstmt, err := tx.Prepare("INSERT INTO workout_completions (workout_id, completed_at) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer cstmt.Close()
	for _, completedAt := range plan.CompletedHistory {
		if _, err := cstmt.Exec(plan.ID, completedAt.Unix()); err != nil {
			return err
		}
	}

	if err := saveNotificationTimes(tx, plan.ID, plan.Notifications); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) DeleteWorkout(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM workouts WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("workout not found: %s", id)
	}

	if _, err := tx.Exec("DELETE FROM notification_times WHERE owner_id = ?", id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) loadNotificationTimes(ownerID string) ([]models.ReminderTime, error) {
	rows, err := s.db.Query(
		"SELECT hour, minute FROM notification_times WHERE owner_id = ? ORDER BY hour, minute", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []models.ReminderTime
	for rows.Next() {
		var rt models.ReminderTime
		if err := rows.Scan(&rt.Hour, &rt.Minute); err != nil {
			return nil, err
		}
		times = append(times, rt)
	}
	return times, rows.Err()
}

func saveNotificationTimes(tx *sql.Tx, ownerID string, times []models.ReminderTime) error {
	if _, err := tx.Exec("DELETE FROM notification_times WHERE owner_id = ?", ownerID); err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO notification_times (owner_id, hour, minute) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, rt := range times {
		if _, err := stmt.Exec(ownerID, rt.Hour, rt.Minute); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) SaveReminder(rem models.Reminder) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO reminders (key, owner_id, hour, minute, title, body)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rem.Key(), rem.OwnerID, rem.Hour, rem.Minute, rem.Title, rem.Body,
	)
	return err
}

func (s *SQLiteStore) DeleteReminders(keys []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("DELETE FROM reminders WHERE key = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, key := range keys {
		if _, err := stmt.Exec(key); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ListReminders() ([]models.Reminder, error) {
	rows, err := s.db.Query(
		"SELECT owner_id, hour, minute, title, body FROM reminders ORDER BY owner_id, hour, minute")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var r models.Reminder
		if err := rows.Scan(&r.OwnerID, &r.Hour, &r.Minute, &r.Title, &r.Body); err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func (s *SQLiteStore) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (s *SQLiteStore) SetSetting(key, value string) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
