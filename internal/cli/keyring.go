package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/daycard/internal/constants"
	"github.com/julianstephens/daycard/internal/keyring"
	"github.com/julianstephens/daycard/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	Status KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
}

// entry is the keyring slot used by every keyring command.
var entry = keyring.Default

type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store."`
}

func (c *KeyringSetCmd) Run(ctx *Context) error {
	if !postgres.IsConnString(c.ConnectionString) && !strings.Contains(c.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}
	if _, err := postgres.ValidateConnString(c.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		ctx.printf("Warning: the connection string embeds a password. It is stored as-is in the encrypted OS keyring.\n")
	}
	if err := entry.Set(c.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	ctx.printf("✓ Connection string stored in OS keyring\n")
	ctx.printf("  %s will use it when --config and %s are unset\n", constants.AppName, constants.EnvConfig)
	return nil
}

type KeyringGetCmd struct{}

func (c *KeyringGetCmd) Run(ctx *Context) error {
	connStr, err := entry.Get()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no connection string found in keyring, use '%s keyring set' to store one", constants.AppName)
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}
	ctx.printf("%s\n", keyring.MaskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (c *KeyringDeleteCmd) Run(ctx *Context) error {
	if err := entry.Delete(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	ctx.printf("✓ Connection string deleted from OS keyring\n")
	return nil
}

type KeyringStatusCmd struct{}

func (c *KeyringStatusCmd) Run(ctx *Context) error {
	if !entry.Available() {
		ctx.printf("❌ OS keyring is not available on this system\n")
		return keyring.ErrUnavailable
	}
	ctx.printf("✓ OS keyring is available\n")
	if _, err := entry.Get(); err == nil {
		ctx.printf("✓ Connection string is stored in keyring\n")
	} else if errors.Is(err, keyring.ErrNotFound) {
		ctx.printf("ℹ No connection string stored in keyring\n")
	}
	return nil
}
