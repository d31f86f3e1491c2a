package service

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/document"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
)

var errEmptyStore = errors.New("no stored state")

// txRepos bundles the repositories bound to one transaction.
type txRepos struct {
	timelines repository.TimelineRepo
	phases    repository.PhaseRepo
	holidays  repository.HolidayRepo
	meta      repository.MetaRepo
}

func newTxRepos(tx db.DBTX) txRepos {
	return txRepos{
		timelines: repository.NewSQLiteTimelineRepo(tx),
		phases:    repository.NewSQLitePhaseRepo(tx),
		holidays:  repository.NewSQLiteHolidayRepo(tx),
		meta:      repository.NewSQLiteMetaRepo(tx),
	}
}

func (r txRepos) load(ctx context.Context) (*domain.AppState, error) {
	timelines, err := r.timelines.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(timelines) == 0 {
		return nil, errEmptyStore
	}
	for _, t := range timelines {
		if t.Data.Phases, err = r.phases.ListByTimeline(ctx, t.ID); err != nil {
			return nil, err
		}
	}
	holidays, err := r.holidays.List(ctx)
	if err != nil {
		return nil, err
	}
	active, _, err := r.meta.Get(ctx, repository.MetaActiveTimeline)
	if err != nil {
		return nil, err
	}

	state := &domain.AppState{
		ActiveTimelineID: active,
		Holidays:         holidays,
		Timelines:        timelines,
	}
	if t := state.Active(); t != nil {
		state.ActiveTimelineID = t.ID
	}
	return state, nil
}

// save replaces everything stored with state.
func (r txRepos) save(ctx context.Context, state *domain.AppState) error {
	if err := r.timelines.DeleteAll(ctx); err != nil {
		return err
	}
	for i, t := range state.Timelines {
		if err := r.timelines.Create(ctx, t, i); err != nil {
			return err
		}
		if err := r.phases.ReplaceForTimeline(ctx, t.ID, t.Data.Phases); err != nil {
			return err
		}
	}
	if err := r.holidays.Replace(ctx, state.Holidays); err != nil {
		return err
	}
	if err := r.meta.Set(ctx, repository.MetaSchemaVersion, string(document.ShapeV3)); err != nil {
		return err
	}
	return r.meta.Set(ctx, repository.MetaActiveTimeline, state.ActiveTimelineID)
}

// stateLoader resolves the state a command works on. It never fails on bad
// stored data: an empty store is seeded from the legacy document when one is
// configured, and anything unreadable falls back to the default state.
type stateLoader struct {
	legacyPath string
	now        func() time.Time
	logger     *slog.Logger
}

// resolve returns the current state and whether it was freshly generated and
// still needs saving.
func (l stateLoader) resolve(ctx context.Context, repos txRepos) (*domain.AppState, bool) {
	state, err := repos.load(ctx)
	if err == nil {
		return state, false
	}
	if !errors.Is(err, errEmptyStore) {
		l.logger.WarnContext(ctx, "stored state unreadable, using default", "error", err)
		return domain.NewDefaultState(l.now()), true
	}
	if legacy, ok := l.fromLegacy(ctx); ok {
		return legacy, true
	}
	return domain.NewDefaultState(l.now()), true
}

func (l stateLoader) fromLegacy(ctx context.Context) (*domain.AppState, bool) {
	if l.legacyPath == "" {
		return nil, false
	}
	doc, shape, err := document.Load(l.legacyPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.WarnContext(ctx, "legacy state unreadable, using default", "path", l.legacyPath, "error", err)
		}
		return nil, false
	}
	state, err := document.ToState(doc, l.now())
	if err != nil {
		l.logger.WarnContext(ctx, "legacy state invalid, using default", "path", l.legacyPath, "error", err)
		return nil, false
	}
	l.logger.InfoContext(ctx, "migrated legacy state", "path", l.legacyPath, "shape", string(shape), "timelines", len(state.Timelines))
	return state, true
}
