package cli

import (
	"errors"

	"github.com/julianstephens/daycard/internal/validation"
)

type ValidateCmd struct {
	AutoFix bool `help:"Remove duplicate day numbers, keeping the most recently updated slot."`
}

func (c *ValidateCmd) Run(ctx *Context) error {
	slots, err := ctx.Store.GetAll(ctx.context())
	if err != nil {
		return err
	}
	result := validation.ValidateSlots(slots)
	ctx.printf("%s\n", result.FormatReport())
	if !result.HasConflicts() {
		return nil
	}

	if c.AutoFix {
		defer ctx.BeginSession()()
		actions := validation.AutoFixDuplicateDays(ctx.context(), result.Conflicts, slots, ctx.Store.Delete)
		for _, a := range actions {
			ctx.printf("✓ %s\n", a.Action)
		}
		if len(actions) == 0 {
			ctx.printf("Nothing could be fixed automatically.\n")
		}
		return nil
	}
	return errors.New("validation found problems, rerun with --auto-fix to resolve duplicate days")
}
