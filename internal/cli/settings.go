package cli

import (
	"fmt"

	apperrors "github.com/julianstephens/daycard/internal/errors"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Window         *int `help:"Number of challenge days. The window never shrinks."`
	Margin         *int `help:"Empty days kept after the highest saved day."`
	DeletableAfter *int `help:"Template days after this one may be removed."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List || (c.Window == nil && c.Margin == nil && c.DeletableAfter == nil) {
		ctx.printf("Current Settings:\n")
		ctx.printf("  Window:          %d days\n", settings.WindowSize)
		ctx.printf("  Safety Margin:   %d days\n", settings.SafetyMargin)
		ctx.printf("  Deletable After: day %d\n", settings.DeletableAfter)
		if !c.List {
			ctx.printf("\nUse --window, --margin or --deletable-after to change them.\n")
		}
		return nil
	}

	if c.Window != nil {
		if *c.Window < settings.WindowSize {
			return fmt.Errorf("%w: window can grow but not shrink (currently %d)", apperrors.ErrValidation, settings.WindowSize)
		}
		settings.WindowSize = *c.Window
	}
	if c.Margin != nil {
		settings.SafetyMargin = *c.Margin
	}
	if c.DeletableAfter != nil {
		settings.DeletableAfter = *c.DeletableAfter
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	// A larger margin can grow the window right away.
	if _, err := ctx.Board().Refresh(ctx.context()); err != nil {
		return err
	}
	ctx.printf("Settings updated successfully.\n")
	return nil
}
