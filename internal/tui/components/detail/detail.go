package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daycard/internal/models"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(13)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model shows every field of one slot in a scrollable pane.
type Model struct {
	viewport viewport.Model
	Slot     *models.DaySlot
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Slot == nil {
		return "No day selected."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetSlot(slot models.DaySlot) {
	m.Slot = &slot
	m.viewport.GotoTop()
	m.Render()
}

func (m *Model) Render() {
	if m.Slot == nil {
		m.viewport.SetContent("")
		return
	}
	s := m.Slot

	var b strings.Builder
	b.WriteString(headingStyle.Render(s.Label()) + "\n\n")
	field := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(label), value)
	}
	field("Key", s.ID)
	field("Date", s.Date)
	field("Source", string(s.Provenance))
	field("Updated", strings.TrimSpace(s.UpdatedAt+" "+s.UpdatedBy))
	if s.Imported {
		field("Import batch", s.ImportBatch)
	}

	for _, d := range models.Difficulties {
		q := s.Question(d)
		b.WriteString("\n" + headingStyle.Render(strings.ToUpper(string(d))) + "\n")
		if q.IsEmpty() {
			b.WriteString(emptyStyle.Render("empty") + "\n")
			continue
		}
		field("Title", q.Title)
		field("Description", q.Description)
		field("Link", q.Link)
		field("Tags", strings.Join(q.Tags, ", "))
	}
	m.viewport.SetContent(b.String())
}
