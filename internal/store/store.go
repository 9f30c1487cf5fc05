package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// ErrNotFound is returned when a todo id does not exist in the store.
var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	// todo_history.todo_id is deliberately not a foreign key: history entries
	// outlive their todo, so the reference is allowed to dangle.
	const ddl = `
	CREATE TABLE IF NOT EXISTS todos (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		text            TEXT NOT NULL,
		is_completed    INTEGER NOT NULL DEFAULT 0,
		notification_id TEXT,
		deadline_hours  REAL,
		created_at      INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_todos_created ON todos(created_at);

	CREATE TABLE IF NOT EXISTS todo_history (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		todo_text       TEXT NOT NULL,
		action          TEXT NOT NULL,
		timestamp       INTEGER NOT NULL,
		todo_id         INTEGER,
		additional_info TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_history_timestamp ON todo_history(timestamp);

	CREATE TABLE IF NOT EXISTS reminders (
		id        TEXT PRIMARY KEY,
		body      TEXT NOT NULL,
		fire_at   INTEGER NOT NULL,
		delivered INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('notifications_enabled', '1'),
		('default_delay',         '54000');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/nudge/nudge.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "nudge", "nudge.db"), nil
}
