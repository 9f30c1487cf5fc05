package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/nudge/internal/store"
	"github.com/sadopc/nudge/internal/todo"
)

type historyModel struct {
	svc    *todo.Service
	width  int
	height int

	entries      []store.HistoryEntry
	offset       int
	confirmClear bool
}

func newHistoryModel(svc *todo.Service) historyModel {
	return historyModel{svc: svc}
}

func (m *historyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m historyModel) capturing() bool {
	return m.confirmClear
}

func (m historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.svc.History()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return historyDataMsg{entries: entries}
	}
}

type historyClearedMsg struct {
	deleted int
}

func (m historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		m.entries = msg.entries
		if m.offset >= len(m.entries) {
			m.offset = 0
		}
		return m, nil

	case historyClearedMsg:
		deleted := msg.deleted
		return m, tea.Batch(m.refresh(), func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Cleared %d history entries", deleted)}
		})

	case tea.KeyMsg:
		if m.confirmClear {
			switch msg.String() {
			case "y", "enter":
				m.confirmClear = false
				return m, m.clearHistory()
			case "n", "esc":
				m.confirmClear = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Up):
			if m.offset > 0 {
				m.offset--
			}
		case key.Matches(msg, keys.Down):
			if m.offset < max(0, len(m.entries)-m.pageSize()) {
				m.offset++
			}
		case key.Matches(msg, keys.Clear):
			if len(m.entries) > 0 {
				m.confirmClear = true
			}
		}
	}
	return m, nil
}

func (m historyModel) clearHistory() tea.Cmd {
	return func() tea.Msg {
		n, err := m.svc.ClearHistory()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Failed to clear history: %v", err), isError: true}
		}
		return historyClearedMsg{deleted: n}
	}
}

func (m historyModel) pageSize() int {
	size := m.height - 8
	if size < 5 {
		size = 5
	}
	return size
}

func actionBadge(action string) string {
	switch action {
	case store.ActionCreated:
		return highlightStyle.Render("+ created  ")
	case store.ActionCompleted:
		return successStyle.Render("✓ completed")
	case store.ActionDeleted:
		return errorStyle.Render("✗ deleted  ")
	}
	return mutedStyle.Render(action)
}

func (m historyModel) view() string {
	w := m.width - 4

	if m.confirmClear {
		rows := []string{
			titleStyle.Render("Clear History"),
			"",
			fmt.Sprintf("  Delete all %d history entries? This cannot be undone.", len(m.entries)),
			"",
			mutedStyle.Render("  y: clear  n: cancel"),
		}
		return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	title := titleStyle.Render("History")

	if len(m.entries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No activity yet."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, fmt.Sprintf("%s  %s", title, mutedStyle.Render(fmt.Sprintf("%d entries", len(m.entries)))))
	rows = append(rows, "")

	end := min(m.offset+m.pageSize(), len(m.entries))
	for _, e := range m.entries[m.offset:end] {
		text := e.TodoText
		if e.AdditionalInfo != nil {
			text += mutedStyle.Render(" (" + *e.AdditionalInfo + ")")
		}
		row := fmt.Sprintf("  %s  %s  %s",
			actionBadge(e.Action),
			text,
			mutedStyle.Render(relativeTime(e.Timestamp)),
		)
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ↑/↓: scroll  c: clear history"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
