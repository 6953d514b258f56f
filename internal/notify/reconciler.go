package notify

import (
	"fmt"
	"strings"
	"sync"

	"fittick/internal/logger"
	"fittick/internal/models"
)

// Reconciler diffs an owner's desired reminder set against the scheduler's
// pending set and issues the add/cancel calls that make them match.
//
// Scheduler calls are fire-and-continue, so reconciliations for the same
// owner are serialized: at most one is in flight per owner id, which keeps a
// stale cancel from racing a fresh add.
type Reconciler struct {
	sched Scheduler

	mu     sync.Mutex
	owners map[string]*sync.Mutex
}

func NewReconciler(sched Scheduler) *Reconciler {
	return &Reconciler{
		sched:  sched,
		owners: make(map[string]*sync.Mutex),
	}
}

func (r *Reconciler) ownerLock(ownerID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.owners[ownerID]
	if !ok {
		l = &sync.Mutex{}
		r.owners[ownerID] = l
	}
	return l
}

// Desired returns the reminder set an owner's notification times declare:
// one reminder per time, all carrying the owner's notification text.
func Desired(owner models.ReminderOwner) []models.Reminder {
	text := owner.ReminderContent()
	times := owner.ReminderTimes()
	reminders := make([]models.Reminder, 0, len(times))
	for _, rt := range times {
		reminders = append(reminders, models.Reminder{
			OwnerID: owner.ReminderOwnerID(),
			Hour:    rt.Hour,
			Minute:  rt.Minute,
			Title:   text.Title,
			Body:    text.Body,
		})
	}
	return reminders
}

// Reconcile makes the scheduler's pending set for owner match the desired
// set. Individual schedule failures are logged and skipped; one bad reminder
// does not abort the rest.
func (r *Reconciler) Reconcile(owner models.ReminderOwner) error {
	lock := r.ownerLock(owner.ReminderOwnerID())
	lock.Lock()
	defer lock.Unlock()

	if err := r.ensurePermission(); err != nil {
		return err
	}

	pending, err := r.pendingFor(owner.ReminderOwnerID())
	if err != nil {
		return fmt.Errorf("failed to list pending reminders: %w", err)
	}

	desired := Desired(owner)
	desiredByKey := make(map[string]models.Reminder, len(desired))
	for _, rem := range desired {
		desiredByKey[rem.Key()] = rem
	}

	var toRemove []string
	for _, p := range pending {
		if _, ok := desiredByKey[p.Key]; !ok {
			toRemove = append(toRemove, p.Key)
		}
	}

	pendingKeys := make(map[string]bool, len(pending))
	for _, p := range pending {
		pendingKeys[p.Key] = true
	}
	var toAdd []models.Reminder
	for _, rem := range desired {
		if !pendingKeys[rem.Key()] {
			toAdd = append(toAdd, rem)
		}
	}

	if len(toRemove) > 0 {
		if err := r.sched.Cancel(toRemove); err != nil {
			logger.Warn("failed to cancel stale reminders", "owner", owner.DisplayName(), "keys", toRemove, "error", err)
		}
	}

	for _, rem := range toAdd {
		err := r.sched.Schedule(rem.Key(), rem.Title, rem.Body, Trigger{
			Hour:    rem.Hour,
			Minute:  rem.Minute,
			Repeats: true,
		})
		if err != nil {
			// Best-effort: keep scheduling the remaining reminders.
			logger.Warn("failed to schedule reminder", "owner", owner.DisplayName(), "key", rem.Key(), "error", err)
		}
	}

	return nil
}

// RemoveAll cancels every pending reminder belonging to ownerID. Call before
// deleting an entity.
func (r *Reconciler) RemoveAll(ownerID string) error {
	lock := r.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	pending, err := r.pendingFor(ownerID)
	if err != nil {
		return fmt.Errorf("failed to list pending reminders: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	keys := make([]string, len(pending))
	for i, p := range pending {
		keys[i] = p.Key
	}
	if err := r.sched.Cancel(keys); err != nil {
		return fmt.Errorf("failed to cancel reminders: %w", err)
	}
	return nil
}

func (r *Reconciler) pendingFor(ownerID string) ([]Pending, error) {
	all, err := r.sched.Pending()
	if err != nil {
		return nil, err
	}
	prefix := models.KeyPrefix(ownerID)
	var matched []Pending
	for _, p := range all {
		if strings.HasPrefix(p.Key, prefix) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (r *Reconciler) ensurePermission() error {
	perm, err := r.sched.Permission()
	if err != nil {
		return fmt.Errorf("failed to read notification permission: %w", err)
	}
	if perm == PermissionUndetermined {
		perm, err = r.sched.RequestPermission()
		if err != nil {
			return fmt.Errorf("failed to request notification permission: %w", err)
		}
	}
	if perm == PermissionDenied {
		logger.Warn("notification permission denied; reminders will not be delivered")
	}
	return nil
}
