package board

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/daycard/internal/constants"
	apperrors "github.com/julianstephens/daycard/internal/errors"
	"github.com/julianstephens/daycard/internal/logger"
	"github.com/julianstephens/daycard/internal/models"
	"github.com/julianstephens/daycard/internal/schedule"
	"github.com/julianstephens/daycard/internal/storage"
)

// Board holds the reconciled schedule for one store. Callers refresh it
// after every mutation instead of patching it.
type Board struct {
	store    storage.Provider
	memo     schedule.Memo
	settings models.Settings
	view     schedule.View
}

func New(store storage.Provider) *Board {
	return &Board{store: store}
}

// Refresh re-reads settings and saved slots and rebuilds the view. When the
// view needed a larger window than the stored one, the new size is saved so
// the window never shrinks.
func (b *Board) Refresh(ctx context.Context) (schedule.View, error) {
	settings, err := b.store.GetSettings()
	if err != nil {
		return schedule.View{}, fmt.Errorf("failed to load settings: %w", err)
	}
	persisted, err := b.store.GetAll(ctx)
	if err != nil {
		return schedule.View{}, fmt.Errorf("failed to load slots: %w", err)
	}

	view := b.memo.Reconcile(settings.WindowSize, persisted, Options(settings))
	if view.Window > settings.WindowSize {
		logger.Info("Growing schedule window", "from", settings.WindowSize, "to", view.Window)
		settings.WindowSize = view.Window
		if err := b.store.SaveSettings(settings); err != nil {
			logger.Warn("Failed to save grown window", "window", view.Window, "error", err)
		}
	}

	b.settings = settings
	b.view = view
	return view, nil
}

// Options derives reconcile options from stored settings.
func Options(s models.Settings) schedule.Options {
	return schedule.Options{SafetyMargin: s.SafetyMargin, BaseDays: constants.BaseDays}
}

func (b *Board) View() schedule.View {
	return b.view
}

func (b *Board) Settings() models.Settings {
	return b.settings
}

// Replace swaps in a view produced locally, such as one with template
// slots removed or pending import merges.
func (b *Board) Replace(view schedule.View) {
	b.view = view
}

// Lookup resolves a day number, a YYYY-MM-DD date or a slot id to an index
// in the current view.
func (b *Board) Lookup(ref string) (int, error) {
	return Lookup(b.view, ref)
}

func Lookup(view schedule.View, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if i := view.ByDay(n); i >= 0 {
			return i, nil
		}
		return -1, fmt.Errorf("%w: day %d", apperrors.ErrLookup, n)
	}
	if models.IsValidDate(ref) {
		if i := view.ByDate(ref); i >= 0 {
			return i, nil
		}
		return -1, fmt.Errorf("%w: date %s", apperrors.ErrLookup, ref)
	}
	if i := view.ByID(ref); i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("%w: %q", apperrors.ErrLookup, ref)
}
