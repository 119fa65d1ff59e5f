package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/daycard/internal/cli"
	"github.com/julianstephens/daycard/internal/config"
	"github.com/julianstephens/daycard/internal/constants"
	apperrors "github.com/julianstephens/daycard/internal/errors"
	"github.com/julianstephens/daycard/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite path, .json path or PostgreSQL connection string. PostgreSQL passwords belong in the OS keyring or DAYCARD_DB_CONNECTION, not here."`
	Actor   string `help:"Name recorded on every change. Defaults to DAYCARD_ACTOR or the OS user."`
	Debug   bool   `help:"Mirror logs to stderr at debug level." env:"DAYCARD_DEBUG"`
	EnvFile string `help:"Load environment variables from this file." type:"path" name:"env-file"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize daycard storage."`
	Migrate  cli.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Days     cli.DaysCmd     `cmd:"" help:"List and edit assignment days."`
	Import   cli.ImportCmd   `cmd:"" help:"Merge questions from a CSV or XLSX file into existing days."`
	Export   cli.ExportCmd   `cmd:"" help:"Export saved days as JSON or YAML."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage database backups."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage schedule settings."`
	Keyring  cli.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Validate cli.ValidateCmd `cmd:"" help:"Check saved days for conflicts."`
	DebugCmd cli.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Tui      cli.TuiCmd      `cmd:"" help:"Browse the schedule interactively." default:"1"`
}

// selfLoading commands open the store themselves, or never need it.
var selfLoading = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Assignment-day scheduler for coding challenges"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := config.LoadEnv(CLI.EnvFile); err != nil {
		apperrors.Fatal(err)
	}
	target, err := config.ResolveTarget(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	actor := config.ResolveActor(CLI.Actor)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: target.Dir(), Actor: actor}); err != nil {
		apperrors.Fatal(err)
	}
	logger.Debug("Resolved storage target", "kind", target.Kind, "source", target.Source)

	store := config.OpenStore(target)
	command := strings.Fields(kctx.Command())[0]
	if !selfLoading[command] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := &cli.Context{
		Ctx:    ctx,
		Store:  store,
		Target: target,
		Actor:  actor,
	}
	if err := kctx.Run(appCtx); err != nil {
		store.Close()
		stop()
		apperrors.Fatal(err)
	}
}
