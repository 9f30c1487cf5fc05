package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/nudge/internal/store"
)

var avatarIcons = []string{"person", "rocket", "star", "heart", "planet", "paw", "leaf", "flash"}
var avatarColors = []string{"#6366F1", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#9B59B6", "#3498DB", "#E74C3C"}

type profileModel struct {
	store  *store.Store
	width  int
	height int

	profile      store.Profile
	formActive   bool
	confirmClear bool
	form         *huh.Form

	// Form field pointers (survive value copies)
	formName  *string
	formIcon  *string
	formColor *string
	formDesc  *string
}

func newProfileModel(s *store.Store) profileModel {
	name, icon, color, desc := "", avatarIcons[0], avatarColors[0], ""
	return profileModel{
		store:     s,
		formName:  &name,
		formIcon:  &icon,
		formColor: &color,
		formDesc:  &desc,
	}
}

func (m *profileModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m profileModel) capturing() bool {
	return m.formActive || m.confirmClear
}

func (m profileModel) refresh() tea.Cmd {
	return func() tea.Msg {
		profile, err := m.store.GetProfile()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return profileDataMsg{profile: profile}
	}
}

func (m profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case profileDataMsg:
		m.profile = msg.profile
		return m, nil

	case tea.KeyMsg:
		if m.confirmClear {
			switch msg.String() {
			case "y", "enter":
				m.confirmClear = false
				m.store.ClearProfile()
				return m, m.refresh()
			case "n", "esc":
				m.confirmClear = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return m.showForm()
		case key.Matches(msg, keys.Clear):
			if m.profile.Name != "" {
				m.confirmClear = true
			}
		}
	}
	return m, nil
}

func (m profileModel) showForm() (profileModel, tea.Cmd) {
	*m.formName = m.profile.Name
	*m.formIcon = m.profile.AvatarIcon
	*m.formColor = m.profile.AvatarColor
	*m.formDesc = m.profile.Description

	iconOptions := make([]huh.Option[string], len(avatarIcons))
	for i, icon := range avatarIcons {
		iconOptions[i] = huh.NewOption(icon, icon)
	}
	colorOptions := make([]huh.Option[string], len(avatarColors))
	for i, c := range avatarColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(m.formName),
			huh.NewSelect[string]().Title("Avatar Icon").Options(iconOptions...).Value(m.formIcon),
			huh.NewSelect[string]().Title("Avatar Color").Options(colorOptions...).Value(m.formColor),
			huh.NewInput().Title("About you").Value(m.formDesc),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m profileModel) updateForm(msg tea.Msg) (profileModel, tea.Cmd) {
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
		m.store.SaveProfile(store.Profile{
			Name:        strings.TrimSpace(*m.formName),
			AvatarIcon:  *m.formIcon,
			AvatarColor: *m.formColor,
			Description: strings.TrimSpace(*m.formDesc),
		})
		return m, m.refresh()
	}

	return m, cmd
}

// initials derives the avatar letters from the profile name.
func initials(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return "?"
	}
	first := strings.ToUpper(fields[0][:1])
	if len(fields) == 1 {
		return first
	}
	last := fields[len(fields)-1]
	return first + strings.ToUpper(last[:1])
}

func (m profileModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Edit Profile")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	if m.confirmClear {
		rows := []string{
			titleStyle.Render("Clear Profile"),
			"",
			"  Reset your profile to defaults?",
			"",
			mutedStyle.Render("  y: clear  n: cancel"),
		}
		return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	title := titleStyle.Render("Profile")

	avatarStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(m.profile.AvatarColor)).
		Padding(1, 3)
	avatar := avatarStyle.Render(initials(m.profile.Name))

	name := m.profile.Name
	if name == "" {
		name = mutedStyle.Render("No name set")
	} else {
		name = highlightStyle.Render(name)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, avatar)
	rows = append(rows, "")
	rows = append(rows, "  "+name)
	rows = append(rows, mutedStyle.Render("  icon: "+m.profile.AvatarIcon))
	if m.profile.Description != "" {
		rows = append(rows, "")
		rows = append(rows, "  "+m.profile.Description)
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit  c: clear profile"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
