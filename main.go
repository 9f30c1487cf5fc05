package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sadopc/nudge/internal/notify"
	"github.com/sadopc/nudge/internal/store"
	"github.com/sadopc/nudge/internal/todo"
	"github.com/sadopc/nudge/internal/tui"
)

func main() {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	logger, closeLog := newLogger(filepath.Dir(dbPath))
	defer closeLog()

	// Process-wide notification setup, once, before any scheduling.
	notify.Init("nudge")

	sched := notify.NewDesktop(s, logger)
	defer sched.Close()
	if err := sched.Rearm(); err != nil {
		logger.Warn("rearm reminders", "err", err)
	}

	svc := todo.New(s, sched, logger)

	app := tui.NewApp(s, svc, sched)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to nudge.log next to the database; the TUI owns stdout.
func newLogger(dir string) (*log.Logger, func()) {
	f, err := os.OpenFile(filepath.Join(dir, "nudge.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(os.Stderr), func() {}
	}
	return log.New(f), func() { f.Close() }
}
