package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

func (s *Store) CreateTodo(text string, notificationID *string, deadlineHours *float64) (*Todo, error) {
	now := time.Now().UnixMilli()
	res, err := s.db.Exec(
		`INSERT INTO todos (text, is_completed, notification_id, deadline_hours, created_at) VALUES (?, 0, ?, ?, ?)`,
		text, notificationID, deadlineHours, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTodo(id)
}

func (s *Store) GetTodo(id int64) (*Todo, error) {
	t := &Todo{}
	var completed int
	var createdAt int64
	var notifID sql.NullString
	var deadline sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT id, text, is_completed, notification_id, deadline_hours, created_at FROM todos WHERE id = ?`, id,
	).Scan(&t.ID, &t.Text, &completed, &notifID, &deadline, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get todo %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get todo %d: %w", id, err)
	}
	t.IsCompleted = completed == 1
	if notifID.Valid {
		t.NotificationID = &notifID.String
	}
	if deadline.Valid {
		t.DeadlineHours = &deadline.Float64
	}
	t.CreatedAt = time.UnixMilli(createdAt)
	return t, nil
}

// ListTodos returns all todos, newest first.
func (s *Store) ListTodos() ([]Todo, error) {
	rows, err := s.db.Query(
		`SELECT id, text, is_completed, notification_id, deadline_hours, created_at
		 FROM todos ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []Todo
	for rows.Next() {
		var t Todo
		var completed int
		var createdAt int64
		var notifID sql.NullString
		var deadline sql.NullFloat64
		if err := rows.Scan(&t.ID, &t.Text, &completed, &notifID, &deadline, &createdAt); err != nil {
			return nil, err
		}
		t.IsCompleted = completed == 1
		if notifID.Valid {
			t.NotificationID = &notifID.String
		}
		if deadline.Valid {
			t.DeadlineHours = &deadline.Float64
		}
		t.CreatedAt = time.UnixMilli(createdAt)
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// ToggleTodo flips the completion flag and returns the updated todo.
func (s *Store) ToggleTodo(id int64) (*Todo, error) {
	res, err := s.db.Exec(`UPDATE todos SET is_completed = 1 - is_completed WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("toggle todo %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("toggle todo %d: %w", id, ErrNotFound)
	}
	return s.GetTodo(id)
}

// UpdateTodo applies a partial patch: nil fields are left untouched.
func (s *Store) UpdateTodo(id int64, patch TodoPatch) error {
	var sets []string
	var args []any

	if patch.Text != nil {
		sets = append(sets, "text = ?")
		args = append(args, *patch.Text)
	}
	if patch.ClearNotificationID {
		sets = append(sets, "notification_id = NULL")
	} else if patch.NotificationID != nil {
		sets = append(sets, "notification_id = ?")
		args = append(args, *patch.NotificationID)
	}
	if patch.DeadlineHours != nil {
		sets = append(sets, "deadline_hours = ?")
		args = append(args, *patch.DeadlineHours)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	res, err := s.db.Exec(`UPDATE todos SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update todo %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update todo %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteTodo removes a todo and returns the notification id that was attached,
// so the caller can cancel it. The id is read before the delete: deletion
// destroys the only reference to it.
func (s *Store) DeleteTodo(id int64) (*string, error) {
	var notifID sql.NullString
	err := s.db.QueryRow(`SELECT notification_id FROM todos WHERE id = ?`, id).Scan(&notifID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("delete todo %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("delete todo %d: %w", id, err)
	}

	if _, err := s.db.Exec(`DELETE FROM todos WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete todo %d: %w", id, err)
	}
	if notifID.Valid {
		return &notifID.String, nil
	}
	return nil, nil
}

// ClearAllTodos deletes every todo and returns how many were deleted along
// with all notification ids that were attached, for the caller to cancel.
func (s *Store) ClearAllTodos() (int, []string, error) {
	rows, err := s.db.Query(`SELECT notification_id FROM todos WHERE notification_id IS NOT NULL`)
	if err != nil {
		return 0, nil, fmt.Errorf("collect notification ids: %w", err)
	}
	var notifIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, nil, err
		}
		notifIDs = append(notifIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}

	res, err := s.db.Exec(`DELETE FROM todos`)
	if err != nil {
		return 0, nil, fmt.Errorf("clear todos: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), notifIDs, nil
}
