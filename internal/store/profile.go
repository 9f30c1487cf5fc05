package store

import (
	"encoding/json"
	"fmt"
)

const profileKey = "profile"

// DefaultProfile matches what a fresh install shows before the user edits
// anything.
func DefaultProfile() Profile {
	return Profile{
		AvatarIcon:  "person",
		AvatarColor: "#6366f1",
	}
}

// GetProfile loads the profile blob, or the defaults when none was saved.
func (s *Store) GetProfile() (Profile, error) {
	raw, err := s.GetSetting(profileKey)
	if err != nil {
		return DefaultProfile(), nil
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return DefaultProfile(), fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

// SaveProfile stores the whole profile as a single JSON blob under one key.
func (s *Store) SaveProfile(p Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return s.SetSetting(profileKey, string(raw))
}

func (s *Store) ClearProfile() error {
	_, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, profileKey)
	return err
}
