package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/daycard/internal/constants"
	"github.com/julianstephens/daycard/internal/models"
)

type ExportCmd struct {
	Format string `help:"Output format." enum:"json,yaml" default:"json"`
	Out    string `help:"Write to this file instead of stdout." type:"path"`
	All    bool   `help:"Include template days without saved data."`
}

// exportDocument is the top-level shape of an export file.
type exportDocument struct {
	App      string           `json:"app" yaml:"app"`
	Version  string           `json:"version" yaml:"version"`
	Window   int              `json:"window" yaml:"window"`
	Settings models.Settings  `json:"settings" yaml:"settings"`
	Slots    []models.DaySlot `json:"slots" yaml:"slots"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	b := ctx.Board()
	view, err := b.Refresh(ctx.context())
	if err != nil {
		return err
	}

	slots := view.Slots
	if !c.All {
		slots = view.Persisted()
	}
	if slots == nil {
		slots = []models.DaySlot{}
	}
	doc := exportDocument{
		App:      constants.AppName,
		Version:  constants.Version,
		Window:   view.Window,
		Settings: b.Settings(),
		Slots:    slots,
	}

	var w io.Writer = ctx.out()
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.Out, err)
		}
		defer f.Close()
		w = f
	}
	if err := encode(w, c.Format, doc); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	if c.Out != "" {
		ctx.printf("Exported %d slot(s) to %s\n", len(slots), c.Out)
	}
	return nil
}
