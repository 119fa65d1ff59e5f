package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daycard/internal/models"
	"github.com/julianstephens/daycard/internal/mutator"
	"github.com/julianstephens/daycard/internal/tui/components/daylist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateConfirm {
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.days.SetSize(msg.Width-h, msg.Height-v-4)
		m.detail.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil

	case reloadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.refreshLists()
		return m, nil

	case mutatedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.status = ""
			return m, nil
		}
		m.errMsg = ""
		m.status = msg.status
		if msg.removeID != "" {
			view := m.board.View()
			if i := view.ByID(msg.removeID); i >= 0 {
				m.board.Replace(view.Remove(i))
			}
			m.refreshLists()
			return m, nil
		}
		return m, m.reload()

	case daylist.ShowDayMsg:
		m.detail.SetSlot(msg.Slot)
		m.state = StateDetail
		return m, nil

	case daylist.ClearDayMsg:
		return m.askClear(msg.Slot)

	case daylist.DeleteDayMsg:
		return m.askDelete(msg.Slot)

	case tea.KeyMsg:
		if m.state == StateBrowse && m.days.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case m.state == StateDetail && key.Matches(msg, m.keys.Back):
			m.state = StateBrowse
			return m, nil
		case m.state == StateBrowse && key.Matches(msg, m.keys.Reload):
			m.status = ""
			m.errMsg = ""
			return m, m.reload()
		case m.state == StateBrowse && key.Matches(msg, m.keys.ShowAll):
			m.showAll = !m.showAll
			m.days.SetSlots(m.visible())
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.state == StateDetail {
		m.detail, cmd = m.detail.Update(msg)
	} else {
		m.days, cmd = m.days.Update(msg)
	}
	return m, cmd
}

// refreshLists pushes the board's current view into the components.
func (m *Model) refreshLists() {
	m.days.SetSlots(m.visible())
	if m.detail.Slot != nil {
		view := m.board.View()
		if i := view.ByID(m.detail.Slot.ID); i >= 0 {
			m.detail.SetSlot(view.Slots[i])
		}
	}
	m.updateValidationStatus()
}

func (m Model) askClear(slot models.DaySlot) (tea.Model, tea.Cmd) {
	mut, ctx := m.mutator, m.ctx
	return m.ask(
		fmt.Sprintf("Clear all questions of %s?", slot.Label()),
		"The day keeps its date and number.",
		func() tea.Cmd {
			return func() tea.Msg {
				res, err := mut.Clear(ctx, slot)
				if err != nil {
					return mutatedMsg{err: err}
				}
				return mutatedMsg{status: "Cleared " + res.Slot.Label()}
			}
		},
	)
}

func (m Model) askDelete(slot models.DaySlot) (tea.Model, tea.Cmd) {
	if !mutator.Deletable(slot, m.board.Settings()) {
		m.errMsg = fmt.Sprintf("%s is part of the first %d days and cannot be removed", slot.Label(), m.board.Settings().DeletableAfter)
		return m, nil
	}
	mut, ctx := m.mutator, m.ctx
	return m.ask(
		fmt.Sprintf("Delete %s?", slot.Label()),
		"Saved questions for this day are removed.",
		func() tea.Cmd {
			return func() tea.Msg {
				res, err := mut.Delete(ctx, slot)
				if err != nil {
					return mutatedMsg{err: err}
				}
				if res.LocalOnly {
					return mutatedMsg{status: "Hid " + slot.Label() + " until the next reload", removeID: slot.ID}
				}
				return mutatedMsg{status: "Deleted " + slot.Label()}
			}
		},
	)
}

// ask opens a confirmation form and runs action when it is accepted.
func (m Model) ask(title, description string, action func() tea.Cmd) (tea.Model, tea.Cmd) {
	m.confirm.Confirmed = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&m.confirm.Confirmed),
		),
	)
	m.pendingAction = action
	m.previousState = m.state
	m.state = StateConfirm
	m.errMsg = ""
	return m, m.form.Init()
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.pendingAction = nil
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if m.confirm.Confirmed && m.pendingAction != nil {
			cmds = append(cmds, m.pendingAction())
		}
		m.pendingAction = nil
		m.state = m.previousState
	case huh.StateAborted:
		m.pendingAction = nil
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}
