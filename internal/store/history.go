package store

import (
	"database/sql"
	"fmt"
	"math"
	"time"
)

// AppendHistory writes an immutable ledger entry. Entries are never updated
// or deleted individually; they outlive the todo they describe.
func (s *Store) AppendHistory(todoText, action string, todoID *int64, additionalInfo *string) (int64, error) {
	now := time.Now().UnixMilli()
	res, err := s.db.Exec(
		`INSERT INTO todo_history (todo_text, action, timestamp, todo_id, additional_info) VALUES (?, ?, ?, ?, ?)`,
		todoText, action, now, todoID, additionalInfo,
	)
	if err != nil {
		return 0, fmt.Errorf("append history: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// ListHistory returns all ledger entries, newest first.
func (s *Store) ListHistory() ([]HistoryEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, todo_text, action, timestamp, todo_id, additional_info
		 FROM todo_history ORDER BY timestamp DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var ts int64
		var todoID sql.NullInt64
		var info sql.NullString
		if err := rows.Scan(&e.ID, &e.TodoText, &e.Action, &ts, &todoID, &info); err != nil {
			return nil, err
		}
		e.Timestamp = time.UnixMilli(ts)
		if todoID.Valid {
			e.TodoID = &todoID.Int64
		}
		if info.Valid {
			e.AdditionalInfo = &info.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats derives aggregate counts from the ledger.
func (s *Store) Stats() (HistoryStats, error) {
	var st HistoryStats
	err := s.db.QueryRow(`
		SELECT
			COUNT(CASE WHEN action = 'created'   THEN 1 END),
			COUNT(CASE WHEN action = 'completed' THEN 1 END),
			COUNT(CASE WHEN action = 'deleted'   THEN 1 END)
		FROM todo_history`,
	).Scan(&st.TotalCreated, &st.TotalCompleted, &st.TotalDeleted)
	if err != nil {
		return HistoryStats{}, fmt.Errorf("history stats: %w", err)
	}
	if st.TotalCreated > 0 {
		st.CompletionRate = int(math.Round(100 * float64(st.TotalCompleted) / float64(st.TotalCreated)))
	}
	return st, nil
}

// ClearHistory deletes the whole ledger and reports how many entries went.
func (s *Store) ClearHistory() (int, error) {
	res, err := s.db.Exec(`DELETE FROM todo_history`)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
