package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/beeep"
	"github.com/google/uuid"
)

const reminderTitle = "⏰ Todo Reminder"

// Desktop delivers reminders as desktop notifications. Pending reminders are
// journaled so they can be re-armed after a restart.
type Desktop struct {
	journal Journal
	log     *log.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewDesktop(journal Journal, logger *log.Logger) *Desktop {
	return &Desktop{
		journal: journal,
		log:     logger,
		timers:  make(map[string]*time.Timer),
	}
}

func (d *Desktop) HasPermission() bool {
	return d.journal.NotificationsEnabled()
}

func (d *Desktop) RequestPermission() bool {
	if err := d.journal.SetNotificationsEnabled(true); err != nil {
		d.log.Warn("enable notifications", "err", err)
		return false
	}
	return true
}

func (d *Desktop) Schedule(body string, delay time.Duration) (string, error) {
	if !d.HasPermission() {
		return "", ErrNoPermission
	}

	id := uuid.NewString()
	fireAt := time.Now().Add(delay)
	if err := d.journal.SaveReminder(Reminder{ID: id, Body: body, FireAt: fireAt}); err != nil {
		return "", fmt.Errorf("journal reminder: %w", err)
	}

	d.arm(id, body, delay)
	d.log.Debug("reminder scheduled", "id", id, "fire_at", fireAt)
	return id, nil
}

func (d *Desktop) Cancel(id string) {
	if id == "" {
		return
	}
	d.mu.Lock()
	if t, ok := d.timers[id]; ok {
		t.Stop()
		delete(d.timers, id)
	}
	d.mu.Unlock()

	if err := d.journal.DeleteReminder(id); err != nil {
		d.log.Warn("delete reminder", "id", id, "err", err)
	}
}

func (d *Desktop) Pending(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.timers[id]
	return ok
}

// Rearm schedules timers for every undelivered reminder in the journal.
// Reminders whose fire time passed while the app was closed are delivered
// immediately. Call once at startup.
func (d *Desktop) Rearm() error {
	pending, err := d.journal.PendingReminders()
	if err != nil {
		return fmt.Errorf("load pending reminders: %w", err)
	}
	now := time.Now()
	for _, r := range pending {
		if delay := r.FireAt.Sub(now); delay > 0 {
			d.arm(r.ID, r.Body, delay)
		} else {
			d.fire(r.ID, r.Body)
		}
	}
	return nil
}

// Close stops all pending timers without touching the journal, so reminders
// re-arm on the next start.
func (d *Desktop) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, t := range d.timers {
		t.Stop()
		delete(d.timers, id)
	}
}

func (d *Desktop) arm(id, body string, delay time.Duration) {
	d.mu.Lock()
	d.timers[id] = time.AfterFunc(delay, func() {
		d.mu.Lock()
		delete(d.timers, id)
		d.mu.Unlock()
		d.fire(id, body)
	})
	d.mu.Unlock()
}

func (d *Desktop) fire(id, body string) {
	msg := fmt.Sprintf("Time's up! Complete: %q", body)
	if err := beeep.Notify(reminderTitle, msg, ""); err != nil {
		d.log.Warn("deliver notification", "id", id, "err", err)
	}
	if err := d.journal.MarkReminderDelivered(id); err != nil {
		d.log.Warn("mark reminder delivered", "id", id, "err", err)
	}
}
