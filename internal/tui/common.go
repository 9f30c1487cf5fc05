package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/nudge/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTodos viewState = iota
	viewHistory
	viewStats
	viewProfile
	viewSettings
)

var viewNames = []string{"Todos", "History", "Stats", "Profile", "Settings"}

// --- Messages ---

type todosDataMsg struct {
	todos []store.Todo
}

type historyDataMsg struct {
	entries []store.HistoryEntry
}

type statsDataMsg struct {
	stats store.HistoryStats
}

type profileDataMsg struct {
	profile store.Profile
}

type settingsDataMsg struct {
	enabled      bool
	defaultDelay time.Duration
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// relativeTime renders a created-at instant the way the todo list shows it:
// "Just now", "5 mins ago", "3 hours ago", or a full date once it is older
// than a day.
func relativeTime(t time.Time) string {
	mins := int(time.Since(t).Minutes())
	if mins < 1 {
		return "Just now"
	}
	if mins < 60 {
		return fmt.Sprintf("%d min%s ago", mins, plural(mins))
	}
	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	}
	return t.Local().Format("Mon, Jan 2, 2006 at 15:04")
}

// formatDelay renders a reminder delay in the largest sensible unit.
func formatDelay(d time.Duration) string {
	hours := int(d.Hours())
	if days := hours / 24; days > 0 {
		return fmt.Sprintf("%d day%s", days, plural(days))
	}
	if hours > 0 {
		return fmt.Sprintf("%d hour%s", hours, plural(hours))
	}
	mins := int(d.Minutes())
	return fmt.Sprintf("%d minute%s", mins, plural(mins))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
