package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/daycard/internal/config"
	"github.com/julianstephens/daycard/internal/logger"
)

type InitCmd struct {
	Force  bool   `help:"Delete an existing SQLite or JSON store before initializing."`
	Source string `help:"Store (path or connection string) to copy settings and slots from."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized %s storage at: %s\n", ctx.Target.Kind, ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.printf("Copying data from: %s\n", c.Source)
		n, err := c.copyFrom(ctx)
		if err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.printf("Copied settings and %d slot(s).\n", n)
	}
	return nil
}

func (c *InitCmd) reset(ctx *Context) error {
	if ctx.Target.Kind == config.KindPostgres {
		return errors.New("--force is not supported for PostgreSQL, drop the daycard schema instead")
	}
	path := ctx.Store.GetConfigPath()
	if c.Source != "" {
		src, err1 := filepath.Abs(config.ExpandPath(c.Source))
		dst, err2 := filepath.Abs(path)
		if err1 == nil && err2 == nil && src == dst {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dst)
		}
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	logger.Info("Deleted existing store", "path", path)
	ctx.printf("Deleted existing database at: %s\n", path)
	return nil
}

// copyFrom copies settings and every saved slot from the --source store.
func (c *InitCmd) copyFrom(ctx *Context) (int, error) {
	target, err := config.ResolveTarget(c.Source)
	if err != nil {
		return 0, err
	}
	src := config.OpenStore(target)
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer src.Close()

	settings, err := src.GetSettings()
	if err != nil {
		return 0, fmt.Errorf("failed to read source settings: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return 0, fmt.Errorf("failed to save settings: %w", err)
	}

	slots, err := src.GetAll(ctx.context())
	if err != nil {
		return 0, fmt.Errorf("failed to read source slots: %w", err)
	}
	for _, s := range slots {
		if err := ctx.Store.Upsert(ctx.context(), s.ID, s); err != nil {
			return 0, fmt.Errorf("failed to copy slot %s: %w", s.ID, err)
		}
	}
	return len(slots), nil
}
