package cli

import (
	"fmt"

	"github.com/julianstephens/daycard/internal/backup"
	"github.com/julianstephens/daycard/internal/ingest"
	"github.com/julianstephens/daycard/internal/logger"
	"github.com/julianstephens/daycard/internal/storage"
)

type ImportCmd struct {
	File     string `arg:"" help:"CSV or XLSX file of questions." type:"existingfile"`
	DryRun   bool   `help:"Report what would change without saving."`
	NoBackup bool   `help:"Skip the automatic backup taken before importing."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	rows, err := ingest.ReadFile(c.File)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		ctx.printf("No rows found in %s.\n", c.File)
		return nil
	}

	view, err := ctx.Board().Refresh(ctx.context())
	if err != nil {
		return err
	}

	var gateway storage.Gateway = ctx.Store
	if c.DryRun {
		mem := storage.NewMemoryStore()
		if err := mem.Seed(ctx.context(), ctx.Store); err != nil {
			return fmt.Errorf("failed to prepare dry run: %w", err)
		}
		gateway = mem
	} else {
		defer ctx.BeginSession()()
		if !c.NoBackup {
			if path := ctx.PerformAutomaticBackup(backup.ReasonPreImport); path != "" {
				ctx.printf("Backup saved to %s\n", path)
			}
		}
	}

	pipeline := ingest.New(ctx.Mutator(gateway))
	logger.Info("Importing questions", "file", c.File, "rows", len(rows), "batch", pipeline.Batch(), "dry_run", c.DryRun)
	result, _ := pipeline.Ingest(ctx.context(), rows, view)
	logger.Info("Import finished", "batch", result.Batch, "success", result.SuccessCount, "errors", result.ErrorCount)

	prefix := ""
	if c.DryRun {
		prefix = "[dry run] "
	}
	ctx.printf("%sImported %d row(s), %d error(s).\n", prefix, result.SuccessCount, result.ErrorCount)
	if len(result.Pending) > 0 {
		ctx.printf("%d day(s) have no date yet; their changes were not saved:\n", len(result.Pending))
		for _, s := range result.Pending {
			ctx.printf("  - %s\n", s.Label())
		}
	}
	for _, msg := range result.Surfaced() {
		ctx.printf("  %s\n", msg)
	}
	return nil
}
