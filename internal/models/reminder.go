package models

import "fmt"

// ReminderTime is a wall-clock time of day at which a repeating reminder
// fires. It carries no date component.
type ReminderTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (rt ReminderTime) String() string {
	return fmt.Sprintf("%02d:%02d", rt.Hour, rt.Minute)
}

// ReminderText is the title/body pair used for every reminder belonging to
// one entity.
type ReminderText struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ReminderOwner is the capability shared by every entity kind that can carry
// reminders. The reconciler is written against this interface only.
type ReminderOwner interface {
	ReminderOwnerID() string
	DisplayName() string
	ReminderTimes() []ReminderTime
	ReminderContent() ReminderText
}

// Reminder is the reconciler's unit of work: one scheduled occurrence of an
// owner's reminder time. It is derived state, never the source of truth.
type Reminder struct {
	OwnerID string `json:"owner_id"`
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

// Key returns the reminder's scheduler identity. Identity is
// (owner, hour, minute); the owner's name is display-only, so renaming an
// entity keeps its scheduled reminders.
func (r Reminder) Key() string {
	return fmt.Sprintf("%s_%d_%d", r.OwnerID, r.Hour, r.Minute)
}

// KeyPrefix returns the prefix shared by all reminder keys of one owner.
func KeyPrefix(ownerID string) string {
	return ownerID + "_"
}
