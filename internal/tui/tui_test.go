package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sadopc/nudge/internal/notify"
	"github.com/sadopc/nudge/internal/store"
	"github.com/sadopc/nudge/internal/todo"
)

func newTestService(t *testing.T, granted bool) (*todo.Service, *store.Store, *notify.Memory) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	sched := notify.NewMemory(granted)
	return todo.New(s, sched, log.New(io.Discard)), s, sched
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

// ============================================================
// Todos view
// ============================================================

func TestTodosAddFlow(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	m := newTodosModel(svc)
	m.setSize(80, 24)

	m, _ = m.update(keyRunes("n"))
	if m.mode != modeAdd {
		t.Fatal("n should enter add mode")
	}
	if !m.capturing() {
		t.Fatal("add mode should capture input")
	}

	m, _ = m.update(keyRunes("Buy milk"))
	m, cmd := m.update(keyEnter)
	if cmd == nil {
		t.Fatal("enter should produce a create command")
	}
	if !m.busy {
		t.Fatal("model should be busy while the create runs")
	}

	msg := cmd()
	op, ok := msg.(todoOpMsg)
	if !ok {
		t.Fatalf("expected todoOpMsg, got %T", msg)
	}
	if op.isError {
		t.Fatalf("create failed: %s", op.status)
	}

	m, _ = m.update(op)
	if m.busy {
		t.Fatal("op result should clear busy")
	}

	todos, err := svc.Todos()
	if err != nil {
		t.Fatal(err)
	}
	if len(todos) != 1 || todos[0].Text != "Buy milk" {
		t.Fatalf("unexpected todos: %+v", todos)
	}
}

func TestTodosAddCancelled(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	m := newTodosModel(svc)

	m, _ = m.update(keyRunes("n"))
	m, _ = m.update(keyRunes("half typed"))
	m, _ = m.update(keyEsc)
	if m.mode != modeBrowse {
		t.Fatal("esc should return to browse")
	}

	todos, _ := svc.Todos()
	if len(todos) != 0 {
		t.Fatal("cancelled add should create nothing")
	}
}

func TestTodosEmptyInputIgnored(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	m := newTodosModel(svc)

	m, _ = m.update(keyRunes("n"))
	m, cmd := m.update(keyEnter)
	if cmd != nil {
		t.Fatal("empty input should not produce a command")
	}
	if m.mode != modeAdd {
		t.Fatal("should stay in add mode")
	}
}

func TestTodosToggleFlow(t *testing.T) {
	svc, _, sched := newTestService(t, true)
	created, err := svc.Create("Buy milk")
	if err != nil {
		t.Fatal(err)
	}
	notifID := *created.NotificationID

	m := newTodosModel(svc)
	todos, _ := svc.Todos()
	m, _ = m.update(todosDataMsg{todos: todos})

	m, cmd := m.update(keySpace)
	if cmd == nil {
		t.Fatal("space should produce a toggle command")
	}
	if !m.busy {
		t.Fatal("toggle should set busy")
	}

	msg := cmd()
	op := msg.(todoOpMsg)
	if op.isError {
		t.Fatalf("toggle failed: %s", op.status)
	}
	if sched.Pending(notifID) {
		t.Fatal("completing should cancel the reminder")
	}
}

func TestTodosBusyBlocksInput(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	svc.Create("a")

	m := newTodosModel(svc)
	todos, _ := svc.Todos()
	m, _ = m.update(todosDataMsg{todos: todos})

	m.busy = true
	m, cmd := m.update(keySpace)
	if cmd != nil {
		t.Fatal("busy model should ignore keys")
	}
}

func TestTodosDeleteConfirm(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	svc.Create("doomed")

	m := newTodosModel(svc)
	todos, _ := svc.Todos()
	m, _ = m.update(todosDataMsg{todos: todos})

	m, _ = m.update(keyRunes("d"))
	if m.mode != modeConfirmDelete {
		t.Fatal("d should ask for confirmation")
	}

	// Declining keeps the todo.
	m, _ = m.update(keyRunes("n"))
	if m.mode != modeBrowse {
		t.Fatal("n should return to browse")
	}
	if todos, _ := svc.Todos(); len(todos) != 1 {
		t.Fatal("declined delete should keep the todo")
	}

	m, _ = m.update(keyRunes("d"))
	m, cmd := m.update(keyRunes("y"))
	if cmd == nil {
		t.Fatal("y should produce a delete command")
	}
	if op := cmd().(todoOpMsg); op.isError {
		t.Fatalf("delete failed: %s", op.status)
	}
	if todos, _ := svc.Todos(); len(todos) != 0 {
		t.Fatal("todo should be gone")
	}
}

func TestTodosDeadlinePicker(t *testing.T) {
	svc, s, sched := newTestService(t, true)
	created, err := svc.Create("Buy milk")
	if err != nil {
		t.Fatal(err)
	}

	m := newTodosModel(svc)
	todos, _ := svc.Todos()
	m, _ = m.update(todosDataMsg{todos: todos})

	m, _ = m.update(keyRunes("t"))
	if m.mode != modeDeadline {
		t.Fatal("t should open the deadline picker")
	}
	if m.deadlineCursor != 6 {
		t.Fatalf("picker should start on the default option, got %d", m.deadlineCursor)
	}

	m, _ = m.update(keyRunes("j")) // 24 hours
	m, cmd := m.update(keyEnter)
	if cmd == nil {
		t.Fatal("enter should produce a deadline command")
	}
	if op := cmd().(todoOpMsg); op.isError {
		t.Fatalf("set deadline failed: %s", op.status)
	}

	stored, err := s.GetTodo(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.DeadlineHours == nil || *stored.DeadlineHours != 24 {
		t.Fatalf("expected 24h deadline, got %v", stored.DeadlineHours)
	}
	if sched.PendingCount() != 1 {
		t.Fatalf("expected exactly one pending reminder, got %d", sched.PendingCount())
	}
}

func TestTodosDeadlineWithoutPermission(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	svc.Create("Buy milk")

	m := newTodosModel(svc)
	todos, _ := svc.Todos()
	m, _ = m.update(todosDataMsg{todos: todos})

	m, _ = m.update(keyRunes("t"))
	m, cmd := m.update(keyEnter)
	op := cmd().(todoOpMsg)
	if !op.isError {
		t.Fatal("expected an error status")
	}
	if !strings.Contains(op.status, "Settings") {
		t.Fatalf("status should point at Settings: %q", op.status)
	}
}

// ============================================================
// History view
// ============================================================

func TestHistoryClearConfirm(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	svc.Create("a")
	svc.Create("b")

	m := newHistoryModel(svc)
	entries, _ := svc.History()
	m, _ = m.update(historyDataMsg{entries: entries})

	m, _ = m.update(keyRunes("c"))
	if !m.confirmClear {
		t.Fatal("c should ask for confirmation")
	}

	m, cmd := m.update(keyRunes("y"))
	if cmd == nil {
		t.Fatal("y should produce a clear command")
	}
	cleared, ok := cmd().(historyClearedMsg)
	if !ok {
		t.Fatal("expected historyClearedMsg")
	}
	if cleared.deleted != 2 {
		t.Fatalf("expected 2 cleared, got %d", cleared.deleted)
	}

	entries, _ = svc.History()
	if len(entries) != 0 {
		t.Fatal("history should be empty")
	}
}

func TestHistoryClearNoEntries(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	m := newHistoryModel(svc)

	m, _ = m.update(keyRunes("c"))
	if m.confirmClear {
		t.Fatal("empty history should not prompt")
	}
}

// ============================================================
// Stats view
// ============================================================

func TestStatsView(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	m := newStatsModel(svc)
	m.setSize(80, 24)

	m, _ = m.update(statsDataMsg{stats: store.HistoryStats{
		TotalCreated:   4,
		TotalCompleted: 3,
		TotalDeleted:   1,
		CompletionRate: 75,
	}})

	out := m.view()
	if !strings.Contains(out, "75%") {
		t.Fatal("view should show the completion rate")
	}
}

func TestStatsViewEmpty(t *testing.T) {
	svc, _, _ := newTestService(t, false)
	m := newStatsModel(svc)
	m.setSize(80, 24)

	out := m.view()
	if !strings.Contains(out, "No todos created yet") {
		t.Fatal("empty ledger should show the placeholder")
	}
}

// ============================================================
// Root model
// ============================================================

func newTestApp(t *testing.T) App {
	t.Helper()
	svc, s, _ := newTestService(t, false)
	sched := notify.NewMemory(false)
	app := NewApp(s, svc, sched)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return model.(App)
}

func TestAppTabSwitching(t *testing.T) {
	a := newTestApp(t)

	model, _ := a.Update(keyRunes("2"))
	a = model.(App)
	if a.activeView != viewHistory {
		t.Fatalf("expected history view, got %v", a.activeView)
	}

	model, _ = a.Update(keyRunes("5"))
	a = model.(App)
	if a.activeView != viewSettings {
		t.Fatalf("expected settings view, got %v", a.activeView)
	}

	// Tab wraps around past the last view.
	model, _ = a.Update(keyTab)
	a = model.(App)
	if a.activeView != viewTodos {
		t.Fatalf("expected wrap to todos, got %v", a.activeView)
	}
}

func TestAppExportPicker(t *testing.T) {
	a := newTestApp(t)

	model, _ := a.Update(keyRunes("E"))
	a = model.(App)
	if !a.exportPicking {
		t.Fatal("E should open the export picker")
	}

	model, _ = a.Update(keyEsc)
	a = model.(App)
	if a.exportPicking {
		t.Fatal("esc should close the export picker")
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(t)

	_, cmd := a.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected a quit message")
	}
}

func TestAppViewRenders(t *testing.T) {
	a := newTestApp(t)
	out := a.View()
	if !strings.Contains(out, "nudge") {
		t.Fatal("header should carry the app name")
	}
	if !strings.Contains(out, "Todos") {
		t.Fatal("header should list the tabs")
	}
}

// ============================================================
// Helpers
// ============================================================

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	cases := []struct {
		at   time.Time
		want string
	}{
		{now, "Just now"},
		{now.Add(-time.Minute), "1 min ago"},
		{now.Add(-5 * time.Minute), "5 mins ago"},
		{now.Add(-3 * time.Hour), "3 hours ago"},
	}
	for _, c := range cases {
		if got := relativeTime(c.at); got != c.want {
			t.Errorf("relativeTime(%v) = %q, want %q", c.at, got, c.want)
		}
	}
}

func TestRelativeTimeOldDates(t *testing.T) {
	old := time.Now().Add(-48 * time.Hour)
	got := relativeTime(old)
	if strings.Contains(got, "ago") {
		t.Fatalf("old dates should render as full dates, got %q", got)
	}
}

func TestFormatDelay(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Minute, "30 minutes"},
		{time.Hour, "1 hour"},
		{15 * time.Hour, "15 hours"},
		{48 * time.Hour, "2 days"},
	}
	for _, c := range cases {
		if got := formatDelay(c.d); got != c.want {
			t.Errorf("formatDelay(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestInitials(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"", "?"},
		{"Ada", "A"},
		{"Ada Lovelace", "AL"},
		{"ada king lovelace", "AL"},
	}
	for _, c := range cases {
		if got := initials(c.name); got != c.want {
			t.Errorf("initials(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}
