package cli

import (
	"fmt"

	"github.com/julianstephens/daycard/internal/migration"
)

// migratable is implemented by stores with a versioned SQL schema.
type migratable interface {
	Runner() (*migration.Runner, error)
}

func runnerFor(ctx *Context) (*migration.Runner, error) {
	m, ok := ctx.Store.(migratable)
	if !ok {
		return nil, fmt.Errorf("%s storage has no schema migrations", ctx.Target.Kind)
	}
	return m.Runner()
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	runner, err := runnerFor(ctx)
	if err != nil {
		return err
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		ctx.printf("%s\n", msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.printf("No migrations to apply. Database is up to date.\n")
	} else {
		ctx.printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
