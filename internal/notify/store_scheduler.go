package notify

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"fittick/internal/clock"
	"fittick/internal/models"
)

const permissionSetting = "notify_permission"

// ReminderStore is the slice of the storage provider the scheduler needs.
type ReminderStore interface {
	SaveReminder(models.Reminder) error
	DeleteReminders(keys []string) error
	ListReminders() ([]models.Reminder, error)
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// StoreScheduler is a Scheduler that persists the pending set in local
// storage. Delivery is the platform's concern; this keeps the authoritative
// record of what is scheduled so `remind list` and `remind next` can report
// it, and so a platform backend has a set to mirror.
type StoreScheduler struct {
	store ReminderStore
	now   func() time.Time
}

func NewStoreScheduler(store ReminderStore) *StoreScheduler {
	return &StoreScheduler{store: store, now: time.Now}
}

func (s *StoreScheduler) Schedule(key, title, body string, trigger Trigger) error {
	if !trigger.Repeats {
		return fmt.Errorf("one-shot triggers are not supported")
	}
	rem, err := parseKey(key)
	if err != nil {
		return err
	}
	rem.Hour = trigger.Hour
	rem.Minute = trigger.Minute
	rem.Title = title
	rem.Body = body
	return s.store.SaveReminder(rem)
}

func (s *StoreScheduler) Cancel(keys []string) error {
	return s.store.DeleteReminders(keys)
}

func (s *StoreScheduler) Pending() ([]Pending, error) {
	reminders, err := s.store.ListReminders()
	if err != nil {
		return nil, err
	}

	now := s.now()
	pending := make([]Pending, len(reminders))
	for i, rem := range reminders {
		pending[i] = Pending{
			Key:         rem.Key(),
			Title:       rem.Title,
			Body:        rem.Body,
			NextTrigger: clock.NextOccurrence(rem.Hour, rem.Minute, now),
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].NextTrigger.Before(pending[j].NextTrigger)
	})
	return pending, nil
}

func (s *StoreScheduler) Permission() (Permission, error) {
	value, err := s.store.GetSetting(permissionSetting)
	if err != nil {
		return PermissionUndetermined, err
	}
	switch value {
	case "granted":
		return PermissionGranted, nil
	case "denied":
		return PermissionDenied, nil
	default:
		return PermissionUndetermined, nil
	}
}

// RequestPermission grants and records. A platform backend would surface the
// OS permission prompt here instead.
func (s *StoreScheduler) RequestPermission() (Permission, error) {
	if err := s.store.SetSetting(permissionSetting, "granted"); err != nil {
		return PermissionUndetermined, err
	}
	return PermissionGranted, nil
}

// parseKey splits an "<ownerID>_<hour>_<minute>" reminder key. The owner id
// may contain underscores, so the split works from the right.
func parseKey(key string) (models.Reminder, error) {
	var rem models.Reminder

	j := strings.LastIndex(key, "_")
	if j <= 0 {
		return rem, fmt.Errorf("malformed reminder key %q", key)
	}
	minute, err := strconv.Atoi(key[j+1:])
	if err != nil {
		return rem, fmt.Errorf("malformed reminder key %q: %w", key, err)
	}

	i := strings.LastIndex(key[:j], "_")
	if i <= 0 {
		return rem, fmt.Errorf("malformed reminder key %q", key)
	}
	hour, err := strconv.Atoi(key[i+1 : j])
	if err != nil {
		return rem, fmt.Errorf("malformed reminder key %q: %w", key, err)
	}

	rem.OwnerID = key[:i]
	rem.Hour = hour
	rem.Minute = minute
	return rem, nil
}
