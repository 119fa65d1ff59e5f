package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDetail:
		content = m.detail.View()
	case StateConfirm:
		content = lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center, m.form.View())
	default:
		content = m.days.View()
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.viewStatus(),
		m.help.View(m),
	))
}

func (m Model) viewHeader() string {
	view := m.board.View()
	mode := "saved days"
	if m.showAll {
		mode = "all days"
	}
	summary := fmt.Sprintf("%d saved · window %d · %s", len(view.Persisted()), view.Window, mode)
	return lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render("daycard"), subtleStyle.Render(summary))
}

func (m Model) viewStatus() string {
	switch {
	case m.errMsg != "":
		return dangerStyle.Render(m.errMsg)
	case m.status != "":
		return statusStyle.Render(m.status)
	case m.validationWarning != "":
		return warningStyle.Render(m.validationWarning)
	}
	return ""
}
