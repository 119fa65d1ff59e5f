package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/daycard/internal/config"
	"github.com/julianstephens/daycard/internal/keyring"
	"github.com/julianstephens/daycard/internal/session"
	"github.com/julianstephens/daycard/internal/validation"
)

type DoctorCmd struct {
	Fix bool `help:"Remove duplicate day numbers, keeping the most recently updated slot."`
}

type checkStatus int

const (
	checkOK checkStatus = iota
	checkWarn
	checkFail
	checkSkipped
)

func (c *Context) report(name string, status checkStatus, err error) {
	switch status {
	case checkOK:
		c.printf("✓ %s: OK\n", name)
	case checkWarn:
		c.printf("⚠ %s: WARNING\n   %v\n", name, err)
	case checkFail:
		c.printf("❌ %s: FAIL\n   Error: %v\n", name, err)
	case checkSkipped:
		c.printf("⊘ %s: SKIPPED (database not reachable)\n", name)
	}
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.printf("Running diagnostics...\n\n")
	failed := false
	check := func(name string, reachable bool, fn func() error) {
		if !reachable {
			ctx.report(name, checkSkipped, nil)
			return
		}
		if err := fn(); err != nil {
			ctx.report(name, checkFail, err)
			failed = true
			return
		}
		ctx.report(name, checkOK, nil)
	}
	warn := func(name string, fn func() error) {
		if err := fn(); err != nil {
			ctx.report(name, checkWarn, err)
			return
		}
		ctx.report(name, checkOK, nil)
	}

	reachable := true
	if err := ctx.Store.Load(); err != nil {
		ctx.report("Database reachable", checkFail, err)
		failed = true
		reachable = false
	} else {
		ctx.report("Database reachable", checkOK, nil)
	}

	check("Schema version", reachable, func() error { return checkSchema(ctx) })
	check("Migrations complete", reachable, func() error { return checkMigrations(ctx) })
	check("Data validation", reachable, func() error { return cmd.checkSlots(ctx) })
	if ctx.Target.Kind == config.KindSQLite {
		warn("Backups present", func() error { return checkBackups(ctx) })
	}
	if ctx.Target.Kind == config.KindPostgres {
		warn("Keyring", checkKeyring)
	}
	warn("Session", func() error { return checkSession(ctx) })

	ctx.printf("\n")
	if failed {
		ctx.printf("Diagnostics completed with errors.\n")
		return errors.New("one or more health checks failed")
	}
	ctx.printf("All diagnostics passed!\n")
	return nil
}

func checkSchema(ctx *Context) error {
	runner, err := runnerFor(ctx)
	if err != nil {
		// JSON stores carry no schema version.
		return nil
	}
	return runner.ValidateVersion()
}

func checkMigrations(ctx *Context) error {
	runner, err := runnerFor(ctx)
	if err != nil {
		return nil
	}
	pending, err := runner.Pending()
	if err != nil {
		return err
	}
	if pending > 0 {
		return fmt.Errorf("%d migration(s) pending, run 'daycard migrate'", pending)
	}
	return nil
}

func (cmd *DoctorCmd) checkSlots(ctx *Context) error {
	slots, err := ctx.Store.GetAll(ctx.context())
	if err != nil {
		return err
	}
	result := validation.ValidateSlots(slots)
	if !result.HasConflicts() {
		return nil
	}

	if cmd.Fix && result.Count(validation.ConflictDuplicateDayNumber) > 0 {
		for _, a := range validation.AutoFixDuplicateDays(ctx.context(), result.Conflicts, slots, ctx.Store.Delete) {
			ctx.printf("   fixed: %s\n", a.Action)
		}
		if slots, err = ctx.Store.GetAll(ctx.context()); err != nil {
			return err
		}
		result = validation.ValidateSlots(slots)
		if !result.HasConflicts() {
			return nil
		}
	}
	return fmt.Errorf("%d problem(s) found\n%s", len(result.Conflicts), result.FormatReport())
}

func checkBackups(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.GetBackupDir())
	}
	return nil
}

func checkKeyring() error {
	if !keyring.Default.Available() {
		return keyring.ErrUnavailable
	}
	return nil
}

func checkSession(ctx *Context) error {
	holder, active, err := session.Active(ctx.Target.Dir())
	if err != nil {
		return err
	}
	if active {
		return fmt.Errorf("another session is running: %s", holder)
	}
	return nil
}
