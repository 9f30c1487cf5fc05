package store

import "time"

type Todo struct {
	ID             int64
	Text           string
	IsCompleted    bool
	NotificationID *string
	DeadlineHours  *float64
	CreatedAt      time.Time
}

// History actions.
const (
	ActionCreated   = "created"
	ActionCompleted = "completed"
	ActionDeleted   = "deleted"
)

type HistoryEntry struct {
	ID             int64
	TodoText       string
	Action         string // created, completed, deleted
	Timestamp      time.Time
	TodoID         *int64 // weak reference; may dangle after the todo is deleted
	AdditionalInfo *string
}

// HistoryStats is derived from the ledger on demand, never stored.
type HistoryStats struct {
	TotalCreated   int
	TotalCompleted int
	TotalDeleted   int
	CompletionRate int // round(100 * completed / created), 0 when nothing created
}

// TodoPatch holds partial updates: nil fields are left untouched.
// ClearNotificationID nulls out the stored notification id.
type TodoPatch struct {
	Text                *string
	NotificationID      *string
	DeadlineHours       *float64
	ClearNotificationID bool
}

type Profile struct {
	Name        string `json:"name"`
	AvatarIcon  string `json:"avatarIcon"`
	AvatarColor string `json:"avatarColor"`
	Description string `json:"description,omitempty"`
}

type Setting struct {
	Key   string
	Value string
}
