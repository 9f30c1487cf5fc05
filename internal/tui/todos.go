package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/nudge/internal/notify"
	"github.com/sadopc/nudge/internal/store"
	"github.com/sadopc/nudge/internal/todo"
)

type todoMode int

const (
	modeBrowse todoMode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
	modeDeadline
)

// Preset reminder delays offered by the deadline picker.
var deadlineOptions = []struct {
	label string
	delay time.Duration
}{
	{"30 Minutes", 30 * time.Minute},
	{"1 Hour", time.Hour},
	{"2 Hours", 2 * time.Hour},
	{"4 Hours", 4 * time.Hour},
	{"8 Hours", 8 * time.Hour},
	{"12 Hours", 12 * time.Hour},
	{"15 Hours (Default)", 15 * time.Hour},
	{"24 Hours", 24 * time.Hour},
	{"2 Days", 48 * time.Hour},
	{"3 Days", 72 * time.Hour},
}

type todosModel struct {
	svc    *todo.Service
	width  int
	height int

	todos  []store.Todo
	cursor int
	mode   todoMode
	input  textinput.Model

	editingID      int64
	deadlineCursor int

	// busy is set while a coordinator operation is in flight, so rapid key
	// presses cannot schedule duplicate reminders for the same todo.
	busy bool
}

func newTodosModel(svc *todo.Service) todosModel {
	ti := textinput.New()
	ti.Placeholder = "Enter your todo"
	ti.CharLimit = 200
	return todosModel{svc: svc, input: ti}
}

func (m *todosModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// capturing reports whether this view wants raw key input.
func (m todosModel) capturing() bool {
	return m.mode != modeBrowse || m.busy
}

func (m todosModel) refresh() tea.Cmd {
	return func() tea.Msg {
		todos, err := m.svc.Todos()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return todosDataMsg{todos: todos}
	}
}

// todoOpMsg reports a finished coordinator operation back to this view.
type todoOpMsg struct {
	status  string
	isError bool
}

func (m todosModel) update(msg tea.Msg) (todosModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todosDataMsg:
		m.todos = msg.todos
		if m.cursor >= len(m.todos) {
			m.cursor = max(0, len(m.todos)-1)
		}
		return m, nil

	case todoOpMsg:
		m.busy = false
		cmds := []tea.Cmd{m.refresh()}
		if msg.status != "" {
			status := msg.status
			isErr := msg.isError
			cmds = append(cmds, func() tea.Msg {
				return statusMsg{text: status, isError: isErr}
			})
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeDeadline:
			return m.updateDeadlinePicker(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m todosModel) updateBrowse(msg tea.KeyMsg) (todosModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.New):
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.Toggle):
		if len(m.todos) > 0 {
			m.busy = true
			return m, m.toggleTodo(m.todos[m.cursor].ID)
		}
	case key.Matches(msg, keys.Edit):
		if len(m.todos) > 0 {
			t := m.todos[m.cursor]
			m.mode = modeEdit
			m.editingID = t.ID
			m.input.SetValue(t.Text)
			m.input.Focus()
			return m, textinput.Blink
		}
	case key.Matches(msg, keys.Delete):
		if len(m.todos) > 0 {
			m.mode = modeConfirmDelete
		}
	case key.Matches(msg, keys.Deadline):
		if len(m.todos) > 0 {
			m.mode = modeDeadline
			m.deadlineCursor = 6 // 15 hours, the default
		}
	}
	return m, nil
}

func (m todosModel) updateInput(msg tea.KeyMsg) (todosModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		adding := m.mode == modeAdd
		editingID := m.editingID
		m.mode = modeBrowse
		m.input.Blur()
		m.busy = true
		if adding {
			return m, m.createTodo(text)
		}
		return m, m.editTodo(editingID, text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m todosModel) updateConfirmDelete(msg tea.KeyMsg) (todosModel, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.mode = modeBrowse
		if len(m.todos) > 0 {
			m.busy = true
			return m, m.deleteTodo(m.todos[m.cursor].ID)
		}
	case "n", "esc":
		m.mode = modeBrowse
	}
	return m, nil
}

func (m todosModel) updateDeadlinePicker(msg tea.KeyMsg) (todosModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.deadlineCursor > 0 {
			m.deadlineCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.deadlineCursor < len(deadlineOptions)-1 {
			m.deadlineCursor++
		}
	case key.Matches(msg, keys.Enter):
		m.mode = modeBrowse
		if len(m.todos) > 0 {
			m.busy = true
			return m, m.setDeadline(m.todos[m.cursor].ID, deadlineOptions[m.deadlineCursor].delay)
		}
	case key.Matches(msg, keys.Back):
		m.mode = modeBrowse
	}
	return m, nil
}

// --- Coordinator commands ---

func (m todosModel) createTodo(text string) tea.Cmd {
	return func() tea.Msg {
		t, err := m.svc.Create(text)
		if err != nil {
			return todoOpMsg{status: fmt.Sprintf("Failed to add todo: %v", err), isError: true}
		}
		if t.NotificationID == nil {
			return todoOpMsg{status: "Todo added (no reminder)"}
		}
		return todoOpMsg{status: "Todo added"}
	}
}

func (m todosModel) toggleTodo(id int64) tea.Cmd {
	return func() tea.Msg {
		t, err := m.svc.Toggle(id)
		if err != nil {
			return todoOpMsg{status: fmt.Sprintf("Failed to toggle todo: %v", err), isError: true}
		}
		if t.IsCompleted {
			return todoOpMsg{status: "Completed 🎉"}
		}
		return todoOpMsg{}
	}
}

func (m todosModel) editTodo(id int64, text string) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.EditText(id, text); err != nil {
			return todoOpMsg{status: fmt.Sprintf("Failed to update todo: %v", err), isError: true}
		}
		return todoOpMsg{}
	}
}

func (m todosModel) deleteTodo(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.Delete(id); err != nil {
			return todoOpMsg{status: fmt.Sprintf("Failed to delete todo: %v", err), isError: true}
		}
		return todoOpMsg{status: "Todo deleted"}
	}
}

func (m todosModel) setDeadline(id int64, delay time.Duration) tea.Cmd {
	return func() tea.Msg {
		_, err := m.svc.SetDeadline(id, delay)
		if errors.Is(err, notify.ErrNoPermission) {
			return todoOpMsg{status: "Enable notifications in Settings to set a deadline", isError: true}
		}
		if err != nil {
			return todoOpMsg{status: fmt.Sprintf("Failed to set deadline: %v", err), isError: true}
		}
		return todoOpMsg{status: "Reminder set for " + formatDelay(delay)}
	}
}

// --- View ---

func (m todosModel) view() string {
	w := m.width - 4

	switch m.mode {
	case modeConfirmDelete:
		return m.renderConfirmDelete(w)
	case modeDeadline:
		return m.renderDeadlinePicker(w)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Todos"))
	rows = append(rows, "")

	if m.mode == modeAdd || m.mode == modeEdit {
		label := "New todo"
		if m.mode == modeEdit {
			label = "Edit todo"
		}
		rows = append(rows, highlightStyle.Render(label))
		rows = append(rows, m.input.View())
		rows = append(rows, "")
	}

	if len(m.todos) == 0 {
		rows = append(rows, mutedStyle.Render("Nothing to do yet. Press n to add a todo."))
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	for i, t := range m.todos {
		rows = append(rows, m.renderTodoRow(i, t))
	}

	rows = append(rows, "")
	hint := "  n: new  space: toggle  e: edit  t: deadline  d: delete"
	if m.busy {
		hint = "  working..."
	}
	rows = append(rows, mutedStyle.Render(hint))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m todosModel) renderTodoRow(i int, t store.Todo) string {
	cursor := "  "
	style := normalItemStyle
	if i == m.cursor {
		cursor = "> "
		style = selectedItemStyle
	}

	check := mutedStyle.Render("○")
	text := t.Text
	if t.IsCompleted {
		check = successStyle.Render("✓")
		text = completedTextStyle.Render(text)
	} else {
		text = style.Render(text)
	}

	reminder := ""
	if t.NotificationID != nil && t.DeadlineHours != nil {
		reminder = warningStyle.Render(fmt.Sprintf("  ⏰ %s", formatDelay(time.Duration(*t.DeadlineHours*float64(time.Hour)))))
	}

	age := mutedStyle.Render("  " + relativeTime(t.CreatedAt))

	return fmt.Sprintf("%s%s %s%s%s", cursor, check, text, reminder, age)
}

func (m todosModel) renderConfirmDelete(w int) string {
	t := m.todos[m.cursor]
	rows := []string{
		titleStyle.Render("Delete Todo"),
		"",
		fmt.Sprintf("  Are you sure you want to delete %q?", t.Text),
		"",
		mutedStyle.Render("  y: delete  n: cancel"),
	}
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m todosModel) renderDeadlinePicker(w int) string {
	t := m.todos[m.cursor]

	var rows []string
	rows = append(rows, titleStyle.Render("Set Todo Deadline"))
	current := "Default (15 hours)"
	if t.DeadlineHours != nil {
		current = formatDelay(time.Duration(*t.DeadlineHours * float64(time.Hour)))
	}
	rows = append(rows, mutedStyle.Render("  Current: "+current))
	rows = append(rows, "")

	for i, opt := range deadlineOptions {
		cursor := "  "
		style := normalItemStyle
		if i == m.deadlineCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+opt.label))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: set  esc: cancel"))

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
