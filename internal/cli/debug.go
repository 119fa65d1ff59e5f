package cli

import (
	"fmt"

	"github.com/julianstephens/daycard/internal/logger"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" name:"db-path" help:"Print the resolved storage target."`
	Dump   DebugDumpCmd   `cmd:"" help:"Print one slot of the reconciled view as JSON."`
}

type DebugDBPathCmd struct{}

func (c *DebugDBPathCmd) Run(ctx *Context) error {
	ctx.printf("%s (%s, from %s)\n", ctx.Store.GetConfigPath(), ctx.Target.Kind, ctx.Target.Source)
	if dir := ctx.Target.Dir(); dir != "" {
		ctx.printf("Config directory: %s\n", dir)
		ctx.printf("Log file: %s\n", logger.Path(dir))
	}
	return nil
}

type DebugDumpCmd struct {
	Ref string `arg:"" help:"Day number, date (YYYY-MM-DD) or slot key."`
}

func (c *DebugDumpCmd) Run(ctx *Context) error {
	b := ctx.Board()
	if _, err := b.Refresh(ctx.context()); err != nil {
		return err
	}
	i, err := b.Lookup(c.Ref)
	if err != nil {
		return err
	}
	if err := encode(ctx.out(), FormatJSON, b.View().Slots[i]); err != nil {
		return fmt.Errorf("failed to encode slot: %w", err)
	}
	return nil
}
