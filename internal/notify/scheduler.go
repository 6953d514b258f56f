// Package notify keeps an external reminder scheduler's pending set in sync
// with what each entity's reminder times declare it should be.
package notify

import "time"

// Permission is the scheduler's authorization state.
type Permission int

const (
	PermissionUndetermined Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "undetermined"
	}
}

// Trigger is a repeating wall-clock firing time.
type Trigger struct {
	Hour    int
	Minute  int
	Repeats bool
}

// Pending is one scheduled reminder as reported by the scheduler.
type Pending struct {
	Key         string
	Title       string
	Body        string
	NextTrigger time.Time
}

// Scheduler is the external reminder-delivery collaborator. Implementations
// are injected; there is no ambient singleton.
type Scheduler interface {
	Schedule(key, title, body string, trigger Trigger) error
	Cancel(keys []string) error
	Pending() ([]Pending, error)
	Permission() (Permission, error)
	RequestPermission() (Permission, error)
}
