package cli

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/julianstephens/daycard/internal/errors"
	"github.com/julianstephens/daycard/internal/ingest"
	"github.com/julianstephens/daycard/internal/models"
	"github.com/julianstephens/daycard/internal/mutator"
)

type DaysCmd struct {
	List   DaysListCmd   `cmd:"" help:"List day slots." default:"1"`
	Show   DaysShowCmd   `cmd:"" help:"Show one day slot."`
	Edit   DaysEditCmd   `cmd:"" help:"Assign a date, renumber, or edit a question."`
	Clear  DaysClearCmd  `cmd:"" help:"Clear the questions of a saved day."`
	Delete DaysDeleteCmd `cmd:"" help:"Delete a day slot."`
}

type DaysListCmd struct {
	All    bool   `help:"Include template days without saved data."`
	Format string `help:"Output format." enum:"table,json,yaml" default:"table"`
}

func (c *DaysListCmd) Run(ctx *Context) error {
	view, err := ctx.Board().Refresh(ctx.context())
	if err != nil {
		return err
	}

	slots := view.Slots
	if !c.All {
		slots = view.Persisted()
	}

	if c.Format != FormatTable && c.Format != "" {
		return encode(ctx.out(), c.Format, slots)
	}
	if len(slots) == 0 {
		ctx.printf("No saved days yet. Use --all to list the %d template days.\n", view.Window)
		return nil
	}
	ctx.printf("%s\n", slotTable(slots))
	ctx.printf("%d of %d slots shown (window %d).\n", len(slots), len(view.Slots), view.Window)
	return nil
}

type DaysShowCmd struct {
	Ref string `arg:"" help:"Day number, date (YYYY-MM-DD) or slot key."`
}

func (c *DaysShowCmd) Run(ctx *Context) error {
	b := ctx.Board()
	if _, err := b.Refresh(ctx.context()); err != nil {
		return err
	}
	i, err := b.Lookup(c.Ref)
	if err != nil {
		return err
	}
	describeSlot(ctx.out(), b.View().Slots[i])
	return nil
}

type DaysEditCmd struct {
	Ref         string  `arg:"" help:"Day number, date (YYYY-MM-DD) or slot key."`
	Date        *string `help:"New date. Accepts the same formats as imports."`
	Day         *int    `help:"New day number."`
	Difficulty  string  `help:"Question to edit: easy, medium or hard."`
	Title       *string `help:"Question title."`
	Description *string `help:"Question description."`
	Link        *string `help:"Question link."`
	Tags        *string `help:"Comma-separated question tags."`
}

func (c *DaysEditCmd) questionEdited() bool {
	return c.Title != nil || c.Description != nil || c.Link != nil || c.Tags != nil
}

// edit converts the flags into a mutator edit against current.
func (c *DaysEditCmd) edit(current models.DaySlot) (mutator.Edit, error) {
	var e mutator.Edit
	if c.Date != nil {
		date := strings.TrimSpace(*c.Date)
		if parsed := ingest.ParseDate(date); parsed != "" {
			date = parsed
		}
		e.Date = &date
	} else if current.Date == "" {
		return e, fmt.Errorf("%w: %s has no date yet, pass --date", apperrors.ErrValidation, current.Label())
	}
	e.DayNumber = c.Day

	if c.questionEdited() {
		d, ok := models.ParseDifficulty(c.Difficulty)
		if !ok {
			return e, fmt.Errorf("%w: --difficulty is required when editing a question", apperrors.ErrValidation)
		}
		q := current.Question(d)
		if q.IsEmpty() {
			day := current.DayNumber
			if c.Day != nil {
				day = *c.Day
			}
			q = models.DefaultQuestion(day, d)
		}
		q.Difficulty = d
		if c.Title != nil {
			q.Title = *c.Title
		}
		if c.Description != nil {
			q.Description = *c.Description
		}
		if c.Link != nil {
			q.Link = *c.Link
		}
		if c.Tags != nil {
			q.Tags = ingest.ParseTags(*c.Tags)
		}
		e.Questions = append(e.Questions, q)
	}
	return e, nil
}

func (c *DaysEditCmd) Run(ctx *Context) error {
	if c.Date == nil && c.Day == nil && !c.questionEdited() {
		return errors.New("nothing to change: pass --date, --day or question flags")
	}
	defer ctx.BeginSession()()

	b := ctx.Board()
	view, err := b.Refresh(ctx.context())
	if err != nil {
		return err
	}
	i, err := b.Lookup(c.Ref)
	if err != nil {
		return err
	}
	current := view.Slots[i]

	edit, err := c.edit(current)
	if err != nil {
		return err
	}
	res, err := ctx.Mutator(ctx.Store).Apply(ctx.context(), view, current, edit)
	if err != nil {
		return err
	}

	ctx.printf("✓ Saved %s\n", res.Slot.Label())
	if res.Moved && res.Orphaned == "" {
		ctx.printf("  Moved from %s\n", current.ID)
	}
	if res.Orphaned != "" {
		ctx.printf("Warning: the old record %s could not be removed and is now orphaned.\n", res.Orphaned)
	}
	_, err = b.Refresh(ctx.context())
	return err
}

type DaysClearCmd struct {
	Ref        string `arg:"" help:"Day number, date (YYYY-MM-DD) or slot key."`
	Difficulty string `help:"Only clear this question: easy, medium or hard."`
}

func (c *DaysClearCmd) Run(ctx *Context) error {
	defer ctx.BeginSession()()

	b := ctx.Board()
	view, err := b.Refresh(ctx.context())
	if err != nil {
		return err
	}
	i, err := b.Lookup(c.Ref)
	if err != nil {
		return err
	}

	var difficulties []models.Difficulty
	if c.Difficulty != "" {
		d, ok := models.ParseDifficulty(c.Difficulty)
		if !ok {
			return fmt.Errorf("%w: unknown difficulty %q", apperrors.ErrValidation, c.Difficulty)
		}
		difficulties = append(difficulties, d)
	}
	res, err := ctx.Mutator(ctx.Store).Clear(ctx.context(), view.Slots[i], difficulties...)
	if err != nil {
		return err
	}
	ctx.printf("✓ Cleared %s\n", res.Slot.Label())
	return nil
}

type DaysDeleteCmd struct {
	Ref string `arg:"" help:"Day number, date (YYYY-MM-DD) or slot key."`
	Yes bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *DaysDeleteCmd) Run(ctx *Context) error {
	defer ctx.BeginSession()()

	b := ctx.Board()
	view, err := b.Refresh(ctx.context())
	if err != nil {
		return err
	}
	i, err := b.Lookup(c.Ref)
	if err != nil {
		return err
	}
	slot := view.Slots[i]

	if !mutator.Deletable(slot, b.Settings()) {
		return fmt.Errorf("%w: %s is part of the first %d days and has no saved data", apperrors.ErrValidation, slot.Label(), b.Settings().DeletableAfter)
	}
	if !c.Yes {
		ok, err := ctx.confirm(fmt.Sprintf("Delete %s?", slot.Label()), "Saved questions for this day will be removed.")
		if err != nil {
			return err
		}
		if !ok {
			ctx.printf("Delete cancelled.\n")
			return nil
		}
	}

	res, err := ctx.Mutator(ctx.Store).Delete(ctx.context(), slot)
	if err != nil {
		return err
	}
	if res.LocalOnly {
		b.Replace(view.Remove(i))
		ctx.printf("%s has no saved data; nothing was removed from the store.\n", slot.Label())
		return nil
	}
	ctx.printf("✓ Deleted %s\n", slot.Label())
	return nil
}
