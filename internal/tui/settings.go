package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/nudge/internal/notify"
	"github.com/sadopc/nudge/internal/store"
	"github.com/sadopc/nudge/internal/todo"
)

type settingsModel struct {
	store *store.Store
	svc   *todo.Service
	sched notify.Scheduler

	width  int
	height int

	enabled      bool
	defaultDelay time.Duration

	formActive   bool
	confirmWipe  bool
	form         *huh.Form
	formEnabled  *bool
	formDelaySec *int
}

func newSettingsModel(s *store.Store, svc *todo.Service, sched notify.Scheduler) settingsModel {
	enabled := false
	delaySec := 0
	return settingsModel{
		store:        s,
		svc:          svc,
		sched:        sched,
		formEnabled:  &enabled,
		formDelaySec: &delaySec,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) capturing() bool {
	return m.formActive || m.confirmWipe
}

func (m settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{
			enabled:      m.store.NotificationsEnabled(),
			defaultDelay: m.store.DefaultDelay(),
		}
	}
}

type todosClearedMsg struct {
	deleted int
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		m.enabled = msg.enabled
		m.defaultDelay = msg.defaultDelay
		return m, nil

	case todosClearedMsg:
		deleted := msg.deleted
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Deleted %d todos", deleted)}
		}

	case tea.KeyMsg:
		if m.confirmWipe {
			switch msg.String() {
			case "y", "enter":
				m.confirmWipe = false
				return m, m.clearAllTodos()
			case "n", "esc":
				m.confirmWipe = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return m.showForm()
		case key.Matches(msg, keys.Clear):
			m.confirmWipe = true
		}
	}
	return m, nil
}

func (m settingsModel) clearAllTodos() tea.Cmd {
	return func() tea.Msg {
		n, err := m.svc.ClearAll()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Failed to clear todos: %v", err), isError: true}
		}
		return todosClearedMsg{deleted: n}
	}
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	*m.formEnabled = m.enabled
	*m.formDelaySec = int(m.defaultDelay.Seconds())

	delayOptions := make([]huh.Option[int], len(deadlineOptions))
	for i, opt := range deadlineOptions {
		delayOptions[i] = huh.NewOption(opt.label, int(opt.delay.Seconds()))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reminder notifications").
				Affirmative("Enabled").
				Negative("Disabled").
				Value(m.formEnabled),
			huh.NewSelect[int]().
				Title("Default reminder delay").
				Options(delayOptions...).
				Value(m.formDelaySec),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.saveSettings()
		return m, m.refresh()
	}

	return m, cmd
}

func (m settingsModel) saveSettings() {
	if *m.formEnabled {
		m.sched.RequestPermission()
	} else {
		m.store.SetNotificationsEnabled(false)
	}
	m.store.SetDefaultDelay(time.Duration(*m.formDelaySec) * time.Second)
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	if m.confirmWipe {
		rows := []string{
			titleStyle.Render("Clear All Todos"),
			"",
			"  Delete every todo and cancel all pending reminders?",
			"",
			mutedStyle.Render("  y: delete all  n: cancel"),
		}
		return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	title := titleStyle.Render("Settings")

	notif := errorStyle.Render("disabled")
	if m.enabled {
		notif = successStyle.Render("enabled")
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(24).Render("Notifications"), notif))
	rows = append(rows, fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(24).Render("Default reminder delay"),
		highlightStyle.Render(formatDelay(m.defaultDelay))))
	rows = append(rows, "")
	rows = append(rows, accentStyle.Render("  Danger Zone"))
	rows = append(rows, mutedStyle.Render("  c: clear all todos"))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
