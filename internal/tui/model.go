package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daycard/internal/board"
	"github.com/julianstephens/daycard/internal/models"
	"github.com/julianstephens/daycard/internal/mutator"
	"github.com/julianstephens/daycard/internal/schedule"
	"github.com/julianstephens/daycard/internal/storage"
	"github.com/julianstephens/daycard/internal/tui/components/daylist"
	"github.com/julianstephens/daycard/internal/tui/components/detail"
	"github.com/julianstephens/daycard/internal/validation"
)

type SessionState int

const (
	StateBrowse SessionState = iota
	StateDetail
	StateConfirm
)

// confirmation is shared with the huh form, which writes through the pointer.
type confirmation struct {
	Confirmed bool
}

// reloadedMsg carries a freshly reconciled view.
type reloadedMsg struct {
	view schedule.View
	err  error
}

// mutatedMsg reports the outcome of a clear or delete.
type mutatedMsg struct {
	status string
	err    error
	// removeID names a template slot dropped from the view only.
	removeID string
}

type Model struct {
	ctx     context.Context
	store   storage.Provider
	board   *board.Board
	mutator *mutator.Mutator

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	days          daylist.Model
	detail        detail.Model

	form          *huh.Form
	confirm       *confirmation
	pendingAction func() tea.Cmd

	showAll           bool
	status            string
	errMsg            string
	validationWarning string
	quitting          bool
	width             int
	height            int
}

// NewModel loads the schedule once so the first frame is populated.
func NewModel(ctx context.Context, store storage.Provider, actor string) (Model, error) {
	b := board.New(store)
	if _, err := b.Refresh(ctx); err != nil {
		return Model{}, err
	}

	m := Model{
		ctx:     ctx,
		store:   store,
		board:   b,
		mutator: mutator.New(store, actor),
		state:   StateBrowse,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		detail:  detail.New(0, 0),
		confirm: &confirmation{},
	}
	m.days = daylist.New(m.visible(), 0, 0)
	m.updateValidationStatus()
	return m, nil
}

// visible returns the slots the list shows: saved ones, or the whole view.
func (m Model) visible() []models.DaySlot {
	view := m.board.View()
	if m.showAll {
		return view.Slots
	}
	return view.Persisted()
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateDetail:
		return []key.Binding{m.keys.Back, m.keys.Quit}
	default:
		return []key.Binding{m.keys.Quit, m.keys.Help, m.keys.ShowAll, m.keys.Reload}
	}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Quit, m.keys.Help, m.keys.Back}
	browse := []key.Binding{m.keys.ShowAll, m.keys.Reload}
	actions := daylist.DefaultKeyMap()
	return [][]key.Binding{global, browse, {actions.Show, actions.Clear, actions.Delete}}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) reload() tea.Cmd {
	b, ctx := m.board, m.ctx
	return func() tea.Msg {
		view, err := b.Refresh(ctx)
		return reloadedMsg{view: view, err: err}
	}
}

// updateValidationStatus counts problems in the saved records.
func (m *Model) updateValidationStatus() {
	slots, err := m.store.GetAll(m.ctx)
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}
	result := validation.ValidateSlots(slots)
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s), run 'daycard validate'", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}
