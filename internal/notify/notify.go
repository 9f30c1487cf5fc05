// Package notify wraps the platform's delayed-notification facility behind a
// small scheduler interface: schedule-at-delay, cancel-by-id, permission.
package notify

import (
	"errors"
	"time"

	"github.com/gen2brain/beeep"
)

// ErrNoPermission is returned by Schedule when notifications are not allowed.
var ErrNoPermission = errors.New("notification permission not granted")

// Scheduler schedules one-shot, time-delayed reminder notifications.
type Scheduler interface {
	// HasPermission reports whether notifications may be scheduled.
	HasPermission() bool
	// RequestPermission asks for (or enables) notification permission and
	// reports whether it was granted.
	RequestPermission() bool
	// Schedule arranges a notification carrying body to fire after delay and
	// returns an opaque id usable with Cancel.
	Schedule(body string, delay time.Duration) (string, error)
	// Cancel stops a pending notification. It is a no-op if the id is unknown
	// or the notification already fired or was cancelled.
	Cancel(id string)
	// Pending reports whether the notification with the given id is still
	// scheduled and has not fired.
	Pending(id string) bool
}

// Reminder is a scheduled notification persisted by a Journal so that pending
// reminders survive process restarts.
type Reminder struct {
	ID        string
	Body      string
	FireAt    time.Time
	Delivered bool
}

// Journal persists scheduler state. The store package implements it.
type Journal interface {
	SaveReminder(r Reminder) error
	DeleteReminder(id string) error
	MarkReminderDelivered(id string) error
	PendingReminders() ([]Reminder, error)

	NotificationsEnabled() bool
	SetNotificationsEnabled(enabled bool) error
}

// Init performs the process-wide notification setup. Call once at startup,
// before any scheduling.
func Init(appName string) {
	beeep.AppName = appName
}
