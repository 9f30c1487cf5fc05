package store

import (
	"fmt"
	"strconv"
	"time"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// NotificationsEnabled reports whether reminder notifications are allowed.
// This is the app's stand-in for the OS notification permission.
func (s *Store) NotificationsEnabled() bool {
	v, err := s.GetSetting("notifications_enabled")
	if err != nil {
		return false
	}
	return v == "1"
}

func (s *Store) SetNotificationsEnabled(enabled bool) error {
	v := "0"
	if enabled {
		v = "1"
	}
	return s.SetSetting("notifications_enabled", v)
}

// DefaultDelay returns the default reminder delay for new todos.
func (s *Store) DefaultDelay() time.Duration {
	v, err := s.GetSetting("default_delay")
	if err != nil {
		return 54000 * time.Second
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 54000 * time.Second
	}
	return time.Duration(secs) * time.Second
}

func (s *Store) SetDefaultDelay(d time.Duration) error {
	return s.SetSetting("default_delay", strconv.Itoa(int(d.Seconds())))
}
