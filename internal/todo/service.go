// Package todo coordinates task mutations with their reminder and history
// side effects. The store write is authoritative; scheduler and ledger calls
// are best-effort and never roll it back.
package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sadopc/nudge/internal/notify"
	"github.com/sadopc/nudge/internal/store"
)

var (
	ErrEmptyText      = errors.New("todo text is empty")
	ErrScheduleFailed = errors.New("could not schedule reminder")
)

type Service struct {
	store *store.Store
	sched notify.Scheduler
	log   *log.Logger
}

func New(s *store.Store, sched notify.Scheduler, logger *log.Logger) *Service {
	return &Service{store: s, sched: sched, log: logger}
}

// Create inserts a new todo, schedules its default-delay reminder when
// permission is granted, and appends a "created" ledger entry.
func (s *Service) Create(text string) (*store.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	t, err := s.store.CreateTodo(text, nil, nil)
	if err != nil {
		return nil, err
	}

	if s.sched.HasPermission() {
		delay := s.store.DefaultDelay()
		notifID, err := s.sched.Schedule(text, delay)
		if err != nil {
			s.log.Warn("schedule reminder", "todo", t.ID, "err", err)
		} else {
			hours := delay.Hours()
			patch := store.TodoPatch{NotificationID: &notifID, DeadlineHours: &hours}
			if err := s.store.UpdateTodo(t.ID, patch); err != nil {
				// The row must never point at a notification that does not
				// exist, and vice versa.
				s.sched.Cancel(notifID)
				s.log.Warn("attach reminder", "todo", t.ID, "err", err)
			} else {
				t.NotificationID = &notifID
				t.DeadlineHours = &hours
			}
		}
	}

	if _, err := s.store.AppendHistory(text, store.ActionCreated, &t.ID, nil); err != nil {
		s.log.Warn("append history", "action", store.ActionCreated, "err", err)
	}
	return t, nil
}

// Toggle flips completion. Only the incomplete→complete transition cancels a
// pending reminder and appends a "completed" entry; toggling back does
// neither.
func (s *Service) Toggle(id int64) (*store.Todo, error) {
	prior, err := s.store.GetTodo(id)
	if err != nil {
		return nil, err
	}

	t, err := s.store.ToggleTodo(id)
	if err != nil {
		return nil, err
	}

	if !t.IsCompleted {
		return t, nil
	}

	if prior.NotificationID != nil {
		s.sched.Cancel(*prior.NotificationID)
		if err := s.store.UpdateTodo(id, store.TodoPatch{ClearNotificationID: true}); err != nil {
			s.log.Warn("clear notification id", "todo", id, "err", err)
		} else {
			t.NotificationID = nil
		}
	}

	if _, err := s.store.AppendHistory(t.Text, store.ActionCompleted, &id, nil); err != nil {
		s.log.Warn("append history", "action", store.ActionCompleted, "err", err)
	}
	return t, nil
}

// EditText changes a todo's text. The reminder is left untouched.
func (s *Service) EditText(id int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	return s.store.UpdateTodo(id, store.TodoPatch{Text: &text})
}

// SetDeadline replaces a todo's reminder with one firing after delay. The old
// reminder is always cancelled first so the todo never has two live timers.
// On scheduling failure the todo is left with no reminder at all.
func (s *Service) SetDeadline(id int64, delay time.Duration) (*store.Todo, error) {
	t, err := s.store.GetTodo(id)
	if err != nil {
		return nil, err
	}

	if !s.sched.HasPermission() {
		return nil, notify.ErrNoPermission
	}

	if t.NotificationID != nil {
		s.sched.Cancel(*t.NotificationID)
	}

	notifID, err := s.sched.Schedule(t.Text, delay)
	if err != nil {
		if patchErr := s.store.UpdateTodo(id, store.TodoPatch{ClearNotificationID: true}); patchErr != nil {
			s.log.Warn("clear notification id", "todo", id, "err", patchErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrScheduleFailed, err)
	}

	hours := delay.Hours()
	if err := s.store.UpdateTodo(id, store.TodoPatch{NotificationID: &notifID, DeadlineHours: &hours}); err != nil {
		s.sched.Cancel(notifID)
		return nil, err
	}
	return s.store.GetTodo(id)
}

// Delete removes a todo, cancels its pending reminder, and appends a
// "deleted" ledger entry. The entry survives the todo.
func (s *Service) Delete(id int64) error {
	t, err := s.store.GetTodo(id)
	if err != nil {
		return err
	}

	notifID, err := s.store.DeleteTodo(id)
	if err != nil {
		return err
	}
	if notifID != nil {
		s.sched.Cancel(*notifID)
	}

	if _, err := s.store.AppendHistory(t.Text, store.ActionDeleted, &id, nil); err != nil {
		s.log.Warn("append history", "action", store.ActionDeleted, "err", err)
	}
	return nil
}

// ClearAll deletes every todo, cancels all their reminders, and records one
// "deleted" entry per todo.
func (s *Service) ClearAll() (int, error) {
	todos, err := s.store.ListTodos()
	if err != nil {
		return 0, err
	}

	n, notifIDs, err := s.store.ClearAllTodos()
	if err != nil {
		return 0, err
	}
	for _, id := range notifIDs {
		s.sched.Cancel(id)
	}

	info := "clear all"
	for _, t := range todos {
		if _, err := s.store.AppendHistory(t.Text, store.ActionDeleted, &t.ID, &info); err != nil {
			s.log.Warn("append history", "action", store.ActionDeleted, "err", err)
		}
	}
	return n, nil
}

func (s *Service) Todos() ([]store.Todo, error) {
	return s.store.ListTodos()
}

func (s *Service) History() ([]store.HistoryEntry, error) {
	return s.store.ListHistory()
}

func (s *Service) Stats() (store.HistoryStats, error) {
	return s.store.Stats()
}

func (s *Service) ClearHistory() (int, error) {
	return s.store.ClearHistory()
}
