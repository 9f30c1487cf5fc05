package store

import (
	"fmt"
	"time"

	"github.com/sadopc/nudge/internal/notify"
)

// The reminder journal backs the desktop scheduler: pending reminders are
// persisted here so they can be re-armed after a restart. Store implements
// notify.Journal.

func (s *Store) SaveReminder(r notify.Reminder) error {
	_, err := s.db.Exec(
		`INSERT INTO reminders (id, body, fire_at, delivered) VALUES (?, ?, ?, 0)
		 ON CONFLICT(id) DO UPDATE SET body = excluded.body, fire_at = excluded.fire_at, delivered = 0`,
		r.ID, r.Body, r.FireAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save reminder: %w", err)
	}
	return nil
}

func (s *Store) DeleteReminder(id string) error {
	_, err := s.db.Exec(`DELETE FROM reminders WHERE id = ?`, id)
	return err
}

func (s *Store) MarkReminderDelivered(id string) error {
	_, err := s.db.Exec(`UPDATE reminders SET delivered = 1 WHERE id = ?`, id)
	return err
}

// PendingReminders returns undelivered reminders, soonest first.
func (s *Store) PendingReminders() ([]notify.Reminder, error) {
	rows, err := s.db.Query(
		`SELECT id, body, fire_at FROM reminders WHERE delivered = 0 ORDER BY fire_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list pending reminders: %w", err)
	}
	defer rows.Close()

	var reminders []notify.Reminder
	for rows.Next() {
		var r notify.Reminder
		var fireAt int64
		if err := rows.Scan(&r.ID, &r.Body, &fireAt); err != nil {
			return nil, err
		}
		r.FireAt = time.UnixMilli(fireAt)
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}
