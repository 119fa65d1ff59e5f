package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daycard/internal/backup"
	"github.com/julianstephens/daycard/internal/board"
	"github.com/julianstephens/daycard/internal/config"
	"github.com/julianstephens/daycard/internal/logger"
	"github.com/julianstephens/daycard/internal/mutator"
	"github.com/julianstephens/daycard/internal/session"
	"github.com/julianstephens/daycard/internal/storage"
)

// Context is handed to every command's Run method.
type Context struct {
	Ctx    context.Context
	Store  storage.Provider
	Target config.Target
	Actor  string
	// Out receives command output. Nil means stdout.
	Out io.Writer
	// Confirm asks a yes/no question. Nil means an interactive huh prompt.
	Confirm func(title, description string) (bool, error)

	board *board.Board
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// Board returns the schedule board for the store, creating it on first use.
func (c *Context) Board() *board.Board {
	if c.board == nil {
		c.board = board.New(c.Store)
	}
	return c.board
}

// Mutator returns a mutator that writes to gateway on behalf of the actor.
func (c *Context) Mutator(gateway storage.Gateway) *mutator.Mutator {
	return mutator.New(gateway, c.Actor)
}

func (c *Context) confirm(title, description string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title, description)
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

// PerformAutomaticBackup snapshots a SQLite store before a bulk write.
// Failures are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup(reason backup.Reason) string {
	if c.Target.Kind != config.KindSQLite {
		return ""
	}
	path, err := backup.NewManager(c.Store.GetConfigPath()).Create(reason)
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return ""
	}
	return path
}

// BeginSession marks this process as a writing session and warns when
// another one is running against the same config directory. The returned
// func releases the lock.
func (c *Context) BeginSession() func() {
	dir := c.Target.Dir()
	if dir == "" || dir == "." {
		return func() {}
	}
	lock, other, err := session.Acquire(dir, c.Actor)
	if err != nil {
		logger.Debug("Session lock unavailable", "error", err)
		return func() {}
	}
	if other != nil {
		logger.Warn("Another daycard session is running", "holder", other.String())
		c.printf("Warning: another daycard session is active (%s). The last write wins.\n", other)
	}
	return func() {
		if err := lock.Release(); err != nil {
			logger.Debug("Failed to release session lock", "error", err)
		}
	}
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}
