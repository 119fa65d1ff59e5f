package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/daycard/internal/constants"
	apperrors "github.com/julianstephens/daycard/internal/errors"
	"github.com/julianstephens/daycard/internal/logger"
	"github.com/julianstephens/daycard/internal/models"
	"github.com/julianstephens/daycard/internal/mutator"
	"github.com/julianstephens/daycard/internal/schedule"
)

// Outcome is the terminal state of one row.
type Outcome string

const (
	OutcomeRejected  Outcome = "rejected"
	OutcomeNoTarget  Outcome = "no_target"
	OutcomePersisted Outcome = "persisted"
	OutcomeInMemory  Outcome = "in_memory"
	OutcomeFailed    Outcome = "failed"
)

// RowOutcome reports what happened to one row.
type RowOutcome struct {
	Line    int
	Outcome Outcome
	// Key is the storage key written, or the pending id for in-memory merges.
	Key string
	Err error
}

type Result struct {
	SuccessCount int
	ErrorCount   int
	Errors       []string
	Outcomes     []RowOutcome
	// Pending holds merges into slots without a date. They were not saved.
	Pending []models.DaySlot
	Batch   string
}

// Surfaced returns the first few errors plus a count of the rest.
func (r Result) Surfaced() []string {
	if len(r.Errors) <= constants.MaxSurfacedErrors {
		return r.Errors
	}
	out := append([]string(nil), r.Errors[:constants.MaxSurfacedErrors]...)
	return append(out, fmt.Sprintf("... and %d more", len(r.Errors)-constants.MaxSurfacedErrors))
}

// Pipeline merges import rows into existing slots. It never creates slots.
type Pipeline struct {
	mutator *mutator.Mutator
	now     func() time.Time
	batch   string
}

func New(m *mutator.Mutator) *Pipeline {
	return &Pipeline{mutator: m, now: time.Now, batch: uuid.NewString()}
}

// WithClock replaces the time source used for audit stamps.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Batch is the id stamped on every slot this pipeline touches.
func (p *Pipeline) Batch() string {
	return p.batch
}

// Ingest processes rows in order against view and returns the counts along
// with the view as it stands after the last row. Each row sees the merges of
// the rows before it. A failing row never stops the run.
func (p *Pipeline) Ingest(ctx context.Context, rows []Row, view schedule.View) (Result, schedule.View) {
	res := Result{Batch: p.batch}
	var pending []string
	logger.Info("Starting import", "rows", len(rows), "batch", p.batch)

	for i, row := range rows {
		if row.Line == 0 {
			row.Line = i + 2
		}
		out, next := p.row(ctx, row, view)
		view = next
		res.Outcomes = append(res.Outcomes, out)

		switch out.Outcome {
		case OutcomePersisted:
			res.SuccessCount++
		case OutcomeInMemory:
			res.SuccessCount++
			pending = appendUnique(pending, out.Key)
		default:
			res.ErrorCount++
			res.Errors = append(res.Errors, out.Err.Error())
			logger.Warn("Import row skipped", "line", out.Line, "outcome", out.Outcome, "error", out.Err)
		}
	}

	for _, key := range pending {
		if j := view.ByID(key); j >= 0 {
			res.Pending = append(res.Pending, view.Slots[j])
		}
	}
	logger.Info("Finished import", "batch", p.batch, "succeeded", res.SuccessCount, "failed", res.ErrorCount)
	return res, view
}

type parsedRow struct {
	day         int
	date        string
	rawDate     string
	title       string
	description string
	link        string
	difficulty  models.Difficulty
	tags        []string
	hasTags     bool
}

func parseRow(row Row) parsedRow {
	var pr parsedRow
	if v, ok := row.Resolve(FieldDayNumber); ok {
		pr.day = ParseDayNumber(v)
	}
	if v, ok := row.Resolve(FieldDate); ok {
		pr.rawDate = v
		pr.date = ParseDate(v)
	}
	pr.title, _ = row.Resolve(FieldTitle)
	pr.description, _ = row.Resolve(FieldDescription)
	pr.link, _ = row.Resolve(FieldLink)
	diff, _ := row.Resolve(FieldDifficulty)
	pr.difficulty = NormalizeDifficulty(diff)
	if v, ok := row.Resolve(FieldTags); ok {
		pr.tags = ParseTags(v)
		pr.hasTags = true
	}
	return pr
}

func (pr parsedRow) identifier() string {
	if pr.day > 0 {
		return fmt.Sprintf("day %d", pr.day)
	}
	return "date " + pr.date
}

func (p *Pipeline) row(ctx context.Context, row Row, view schedule.View) (RowOutcome, schedule.View) {
	out := RowOutcome{Line: row.Line}
	pr := parseRow(row)

	if pr.day == 0 && pr.date == "" {
		out.Outcome = OutcomeRejected
		out.Err = fmt.Errorf("row %d: missing both day number and date: %w", row.Line, apperrors.ErrValidation)
		return out, view
	}
	if pr.rawDate != "" && pr.date == "" {
		logger.Debug("Ignoring unparseable date", "line", row.Line, "value", pr.rawDate)
	}

	i, ok := view.Find(pr.day, pr.date)
	if !ok {
		out.Outcome = OutcomeNoTarget
		out.Err = fmt.Errorf("row %d: no existing card for %s (CSV only updates existing cards): %w", row.Line, pr.identifier(), apperrors.ErrLookup)
		return out, view
	}
	target := view.Slots[i]

	next := target.WithQuestion(merge(target, pr))
	if next.DayNumber == 0 && pr.day > 0 {
		next.DayNumber = pr.day
	}
	if next.Date == "" && pr.date != "" {
		if j := view.Conflicting(target.ID, 0, pr.date); j >= 0 {
			out.Outcome = OutcomeFailed
			out.Err = fmt.Errorf("row %d: date %s already belongs to %s: %w", row.Line, pr.date, view.Slots[j].Label(), apperrors.ErrConflict)
			return out, view
		}
		next.Date = pr.date
	}
	next.UpdatedAt = p.now().UTC().Format(time.RFC3339)
	next.UpdatedBy = p.mutator.Actor()
	next.Imported = true
	next.ImportBatch = p.batch

	if next.Date == "" {
		if !target.IsPersisted() {
			next.ID = models.PendingID(next.DayNumber)
		}
		out.Outcome = OutcomeInMemory
		out.Key = next.ID
		return out, view.Set(i, next)
	}

	saved, err := p.mutator.Persist(ctx, target, next)
	if err != nil {
		out.Outcome = OutcomeFailed
		out.Err = fmt.Errorf("row %d: failed to save %s: %w", row.Line, next.Label(), err)
		return out, view
	}
	saved.Slot.Extended = target.Extended
	out.Outcome = OutcomePersisted
	out.Key = saved.Slot.ID
	return out, view.Set(i, saved.Slot)
}

// merge builds the question for the row's difficulty. Supplied values win,
// then whatever the slot already held, then the placeholders.
func merge(target models.DaySlot, pr parsedRow) models.QuestionSlot {
	day := target.DayNumber
	if day == 0 {
		day = pr.day
	}
	existing := target.Question(pr.difficulty)
	def := models.DefaultQuestion(day, pr.difficulty)

	q := models.QuestionSlot{Difficulty: pr.difficulty}
	q.Title = first(pr.title, existing.Title, def.Title)
	q.Description = first(pr.description, existing.Description, def.Description)
	q.Link = first(pr.link, existing.Link, def.Link)
	switch {
	case pr.hasTags:
		q.Tags = pr.tags
	case existing.Tags != nil:
		q.Tags = existing.Tags
	default:
		q.Tags = def.Tags
	}
	return q.Normalize()
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func appendUnique(keys []string, key string) []string {
	for _, k := range keys {
		if k == key {
			return keys
		}
	}
	return append(keys, key)
}
