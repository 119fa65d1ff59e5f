package daylist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daycard/internal/models"
)

type ClearDayMsg struct {
	Slot models.DaySlot
}

type DeleteDayMsg struct {
	Slot models.DaySlot
}

type ShowDayMsg struct {
	Slot models.DaySlot
}

type Item struct {
	Slot models.DaySlot
}

func (i Item) Title() string {
	return i.Slot.Label()
}

func (i Item) Description() string {
	var filled []string
	for _, d := range models.Difficulties {
		if !i.Slot.Question(d).IsEmpty() {
			filled = append(filled, string(d))
		}
	}
	questions := "no questions"
	if len(filled) > 0 {
		questions = strings.Join(filled, ", ")
	}
	desc := fmt.Sprintf("%s | %s", questions, i.Slot.Provenance)
	if i.Slot.Date == "" {
		desc += " | no date"
	}
	if i.Slot.Extended {
		desc += " | extended"
	}
	return desc
}

func (i Item) FilterValue() string {
	return fmt.Sprintf("%d %s %s %s %s", i.Slot.DayNumber, i.Slot.Date, i.Slot.Easy.Title, i.Slot.Medium.Title, i.Slot.Hard.Title)
}

type KeyMap struct {
	Show   key.Binding
	Clear  key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Show: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(slots []models.DaySlot, width, height int) Model {
	l := list.New(items(slots), list.NewDefaultDelegate(), width, height)
	l.Title = "Days"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Show, keys.Clear, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Show, keys.Clear, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func items(slots []models.DaySlot) []list.Item {
	out := make([]list.Item, len(slots))
	for i, s := range slots {
		out[i] = Item{Slot: s}
	}
	return out
}

// SetSlots replaces the listed slots and keeps the cursor in range.
func (m *Model) SetSlots(slots []models.DaySlot) {
	idx := m.list.Index()
	m.list.SetItems(items(slots))
	if idx >= len(slots) {
		idx = len(slots) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

// Selected returns the highlighted slot.
func (m Model) Selected() (models.DaySlot, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Slot, true
	}
	return models.DaySlot{}, false
}

// Filtering reports whether the filter input has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		slot, ok := m.Selected()
		switch {
		case key.Matches(msg, m.keys.Show) && ok:
			return m, func() tea.Msg { return ShowDayMsg{Slot: slot} }
		case key.Matches(msg, m.keys.Clear) && ok:
			return m, func() tea.Msg { return ClearDayMsg{Slot: slot} }
		case key.Matches(msg, m.keys.Delete) && ok:
			return m, func() tea.Msg { return DeleteDayMsg{Slot: slot} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No saved days yet.\n  Press 'a' to show template days."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
