package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daycard/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	defer ctx.BeginSession()()

	model, err := tui.NewModel(ctx.context(), ctx.Store, ctx.Actor)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx.context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal browser failed: %w", err)
	}
	return nil
}
