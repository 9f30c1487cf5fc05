package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/nudge/internal/store"
	"github.com/sadopc/nudge/internal/todo"
)

type statsModel struct {
	svc    *todo.Service
	width  int
	height int

	stats store.HistoryStats
	chart barchart.Model
}

func newStatsModel(svc *todo.Service) statsModel {
	return statsModel{
		svc:   svc,
		chart: barchart.New(40, 10),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.svc.Stats()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return statsDataMsg{stats: stats}
	}
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	if msg, ok := msg.(statsDataMsg); ok {
		m.stats = msg.stats
		m.buildChart()
	}
	return m, nil
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 10
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 28 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	bars := []barchart.BarData{
		{
			Label: "Created",
			Values: []barchart.BarValue{{
				Name:  "Created",
				Value: float64(m.stats.TotalCreated),
				Style: lipgloss.NewStyle().Foreground(colorHighlight),
			}},
		},
		{
			Label: "Completed",
			Values: []barchart.BarValue{{
				Name:  "Completed",
				Value: float64(m.stats.TotalCompleted),
				Style: lipgloss.NewStyle().Foreground(colorSuccess),
			}},
		},
		{
			Label: "Deleted",
			Values: []barchart.BarValue{{
				Name:  "Deleted",
				Value: float64(m.stats.TotalDeleted),
				Style: lipgloss.NewStyle().Foreground(colorError),
			}},
		},
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Progress Stats")

	if m.stats.TotalCreated == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No todos created yet. Your stats will show up here."),
		)
		return panelStyle.Width(w).Render(content)
	}

	counts := fmt.Sprintf("  %s %d   %s %d   %s %d",
		highlightStyle.Render("Created:"), m.stats.TotalCreated,
		successStyle.Render("Completed:"), m.stats.TotalCompleted,
		errorStyle.Render("Deleted:"), m.stats.TotalDeleted,
	)

	rate := fmt.Sprintf("  Completion rate: %s",
		successStyle.Render(fmt.Sprintf("%d%%", m.stats.CompletionRate)))

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title, "", counts, rate, "", m.chart.View(),
		),
	)
}
