package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/calendar"
	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/document"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/reconciler"
	"github.com/alexanderramin/gantry/internal/scheduler"
	"github.com/google/uuid"
)

// DefaultPhaseDays is the duration given to a new phase when none is set.
const DefaultPhaseDays = 5

// PlannerOptions tunes a PlannerService. Zero values pick defaults.
type PlannerOptions struct {
	DefaultPhaseDays int
	// LegacyStatePath is a JSON state document imported when the database
	// holds no state yet.
	LegacyStatePath string
	Now             func() time.Time
	Logger          *slog.Logger
}

type plannerService struct {
	uow         db.UnitOfWork
	loader      stateLoader
	defaultDays int
	now         func() time.Time
	observer    UseCaseObserver
}

func NewPlannerService(uow db.UnitOfWork, opts PlannerOptions, observers ...UseCaseObserver) PlannerService {
	if opts.DefaultPhaseDays < 1 {
		opts.DefaultPhaseDays = DefaultPhaseDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &plannerService{
		uow: uow,
		loader: stateLoader{
			legacyPath: opts.LegacyStatePath,
			now:        opts.Now,
			logger:     opts.Logger,
		},
		defaultDays: opts.DefaultPhaseDays,
		now:         opts.Now,
		observer:    combineObservers(observers),
	}
}

func (s *plannerService) track(ctx context.Context, name string, startedAt time.Time, fields map[string]any, errp *error) {
	err := *errp
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

// update loads the state, hands it to fn and saves it when fn reports a
// change. Nothing is written when fn fails.
func (s *plannerService) update(ctx context.Context, fn func(state *domain.AppState) (bool, error)) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := newTxRepos(tx)
		state, seeded := s.loader.resolve(ctx, repos)

		changed, err := fn(state)
		if err != nil {
			return err
		}
		if !changed && !seeded {
			return nil
		}
		if err := repos.save(ctx, state); err != nil {
			return fmt.Errorf("saving state: %w", err)
		}
		return nil
	})
}

// updateActive is update scoped to the active timeline.
func (s *plannerService) updateActive(ctx context.Context, fn func(t *domain.Timeline, cal calendar.Calendar) (bool, error)) error {
	return s.update(ctx, func(state *domain.AppState) (bool, error) {
		t := state.Active()
		changed, err := fn(t, calendar.New(state.Holidays))
		if changed {
			t.UpdatedAt = s.now().UTC()
		}
		return changed, err
	})
}

// updatePhase is updateActive for a single phase.
func (s *plannerService) updatePhase(ctx context.Context, phaseID string, fn func(t *domain.Timeline, p *domain.Phase, cal calendar.Calendar) (bool, error)) error {
	return s.updateActive(ctx, func(t *domain.Timeline, cal calendar.Calendar) (bool, error) {
		p, err := t.Data.Phase(phaseID)
		if err != nil {
			return false, err
		}
		return fn(t, p, cal)
	})
}

func (s *plannerService) State(ctx context.Context) (*domain.AppState, error) {
	var out *domain.AppState
	err := s.update(ctx, func(state *domain.AppState) (bool, error) {
		out = state
		return false, nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	return out, nil
}

func newSchedule(state *domain.AppState, t *domain.Timeline, rows []scheduler.ScheduledPhase) *TimelineSchedule {
	return &TimelineSchedule{
		Timeline: t,
		Active:   state.Active() == t,
		Rows:     rows,
		Summary:  scheduler.Summarize(rows),
	}
}

func (s *plannerService) Schedule(ctx context.Context, timelineID string) (*TimelineSchedule, error) {
	var out *TimelineSchedule
	err := s.update(ctx, func(state *domain.AppState) (bool, error) {
		t, err := state.Timeline(timelineID)
		if err != nil {
			return false, err
		}
		rows, repaired := scheduler.Run(&t.Data, calendar.New(state.Holidays))
		out = newSchedule(state, t, rows)
		return repaired, nil
	})
	if err != nil {
		return nil, fmt.Errorf("computing schedule: %w", err)
	}
	return out, nil
}

func (s *plannerService) ScheduleAll(ctx context.Context) ([]*TimelineSchedule, error) {
	var out []*TimelineSchedule
	err := s.update(ctx, func(state *domain.AppState) (bool, error) {
		cal := calendar.New(state.Holidays)
		anyRepaired := false
		for _, t := range state.Timelines {
			rows, repaired := scheduler.Run(&t.Data, cal)
			anyRepaired = anyRepaired || repaired
			out = append(out, newSchedule(state, t, rows))
		}
		return anyRepaired, nil
	})
	if err != nil {
		return nil, fmt.Errorf("computing schedules: %w", err)
	}
	return out, nil
}

func (s *plannerService) AddPhase(ctx context.Context, name string, days int) (phase *domain.Phase, err error) {
	defer s.track(ctx, "add-phase", time.Now(), map[string]any{"name": name, "days": days}, &err)

	if days < 1 {
		days = s.defaultDays
	}
	err = s.updateActive(ctx, func(t *domain.Timeline, _ calendar.Calendar) (bool, error) {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Phase %d", len(t.Data.Phases)+1)
		}
		p := domain.Phase{
			ID:   uuid.New().String(),
			Name: name,
			Days: days,
			Mode: domain.ModeSequential,
		}
		t.Data.Phases = append(t.Data.Phases, p)
		if len(t.Data.Phases) == 1 {
			t.Data.AnchorPhaseID = p.ID
		}
		phase = &p
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("adding phase: %w", err)
	}
	return phase, nil
}

func (s *plannerService) DeletePhase(ctx context.Context, phaseID string) (err error) {
	defer s.track(ctx, "delete-phase", time.Now(), map[string]any{"phase_id": phaseID}, &err)

	err = s.updateActive(ctx, func(t *domain.Timeline, _ calendar.Calendar) (bool, error) {
		i := t.Data.IndexOf(phaseID)
		if i < 0 {
			return false, fmt.Errorf("%w: %s", domain.ErrPhaseNotFound, phaseID)
		}
		wasAnchor := t.Data.IsAnchor(phaseID)
		t.Data.Phases = append(t.Data.Phases[:i], t.Data.Phases[i+1:]...)
		if wasAnchor {
			t.Data.AnchorPhaseID = ""
			if len(t.Data.Phases) > 0 {
				t.Data.AnchorPhaseID = t.Data.Phases[0].ID
			}
		}
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return nil
}

func (s *plannerService) ReorderPhase(ctx context.Context, from, to int) (err error) {
	defer s.track(ctx, "reorder-phase", time.Now(), map[string]any{"from": from, "to": to}, &err)

	err = s.updateActive(ctx, func(t *domain.Timeline, _ calendar.Calendar) (bool, error) {
		n := len(t.Data.Phases)
		if from < 0 || from >= n || to < 0 || to >= n {
			return false, fmt.Errorf("%w: %d -> %d (have %d phases)", domain.ErrIndexOutOfRange, from, to, n)
		}
		if from == to {
			return false, nil
		}
		p := t.Data.Phases[from]
		rest := append(t.Data.Phases[:from:from], t.Data.Phases[from+1:]...)
		phases := make([]domain.Phase, 0, n)
		phases = append(phases, rest[:to]...)
		phases = append(phases, p)
		phases = append(phases, rest[to:]...)
		t.Data.Phases = phases
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("reordering phases: %w", err)
	}
	return nil
}

func (s *plannerService) RenamePhase(ctx context.Context, phaseID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("renaming phase: %w", domain.ErrEmptyName)
	}
	err := s.updatePhase(ctx, phaseID, func(_ *domain.Timeline, p *domain.Phase, _ calendar.Calendar) (bool, error) {
		if p.Name == name {
			return false, nil
		}
		p.Name = name
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("renaming phase: %w", err)
	}
	return nil
}

// SetPhaseDays floors days at 1. A parallel phase keeps its start and has
// its manual end moved so the range covers days calendar days.
func (s *plannerService) SetPhaseDays(ctx context.Context, phaseID string, days int) error {
	if days < 1 {
		days = 1
	}
	err := s.updatePhase(ctx, phaseID, func(t *domain.Timeline, p *domain.Phase, _ calendar.Calendar) (bool, error) {
		if p.IsParallel() && p.ManualStart != nil {
			p.SetManualRange(*p.ManualStart, domain.AddDays(*p.ManualStart, days-1))
			return true, nil
		}
		p.Days = days
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("setting phase days: %w", err)
	}
	return nil
}

// SetPhaseParallel switches a phase in or out of the chain. A phase entering
// parallel mode without a manual range takes its current computed span, so
// the chart does not jump.
func (s *plannerService) SetPhaseParallel(ctx context.Context, phaseID string, on bool) (err error) {
	defer s.track(ctx, "set-phase-parallel", time.Now(), map[string]any{"phase_id": phaseID, "parallel": on}, &err)

	err = s.updatePhase(ctx, phaseID, func(t *domain.Timeline, p *domain.Phase, cal calendar.Calendar) (bool, error) {
		if on && t.Data.IsAnchor(phaseID) {
			return false, domain.ErrAnchorParallel
		}
		if p.IsParallel() == on {
			return false, nil
		}
		if !on {
			p.Mode = domain.ModeSequential
			return true, nil
		}

		start, end := p.ManualStart, p.ManualEnd
		if start == nil || end == nil {
			row, _ := scheduler.Find(scheduler.Compute(t.Data, cal), phaseID)
			p.Promote(row.Start, row.End)
			return true, nil
		}
		p.Promote(*start, *end)
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("setting parallel mode: %w", err)
	}
	return nil
}

// SetManualStart stores the manual start date. An end before the new start
// is pulled up to it. Days is refreshed from the range only when the phase is
// parallel; on a sequential phase Days stays authoritative and the range is
// kept for a later switch to parallel.
func (s *plannerService) SetManualStart(ctx context.Context, phaseID string, date time.Time) error {
	err := s.updatePhase(ctx, phaseID, func(_ *domain.Timeline, p *domain.Phase, _ calendar.Calendar) (bool, error) {
		start := domain.Truncate(date)
		end := start
		if p.ManualEnd != nil && !p.ManualEnd.Before(start) {
			end = *p.ManualEnd
		}
		applyManualRange(p, start, end)
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("setting manual start: %w", err)
	}
	return nil
}

// SetManualEnd stores the manual end date. A start after the new end is
// pulled back to it. Like SetManualStart it leaves Days unchanged on a
// sequential phase.
func (s *plannerService) SetManualEnd(ctx context.Context, phaseID string, date time.Time) error {
	err := s.updatePhase(ctx, phaseID, func(_ *domain.Timeline, p *domain.Phase, _ calendar.Calendar) (bool, error) {
		end := domain.Truncate(date)
		start := end
		if p.ManualStart != nil && !p.ManualStart.After(end) {
			start = *p.ManualStart
		}
		applyManualRange(p, start, end)
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("setting manual end: %w", err)
	}
	return nil
}

// applyManualRange leaves Days alone on a sequential phase, where the manual
// range is only remembered for a later switch to parallel.
func applyManualRange(p *domain.Phase, start, end time.Time) {
	if p.IsParallel() {
		p.SetManualRange(start, end)
		return
	}
	p.ManualStart = &start
	p.ManualEnd = &end
}

func (s *plannerService) SetAnchor(ctx context.Context, phaseID string) (err error) {
	defer s.track(ctx, "set-anchor", time.Now(), map[string]any{"phase_id": phaseID}, &err)

	err = s.updatePhase(ctx, phaseID, func(t *domain.Timeline, p *domain.Phase, _ calendar.Calendar) (bool, error) {
		if p.IsParallel() {
			return false, domain.ErrAnchorParallel
		}
		if t.Data.AnchorPhaseID == phaseID {
			return false, nil
		}
		t.Data.AnchorPhaseID = phaseID
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("setting anchor: %w", err)
	}
	return nil
}

func (s *plannerService) SetAnchorType(ctx context.Context, anchorType domain.AnchorType) error {
	if !anchorType.Valid() {
		return fmt.Errorf("setting anchor type: %w: %q", domain.ErrInvalidOption, anchorType)
	}
	err := s.updateActive(ctx, func(t *domain.Timeline, _ calendar.Calendar) (bool, error) {
		changed := t.Data.AnchorType != anchorType
		t.Data.AnchorType = anchorType
		return changed, nil
	})
	if err != nil {
		return fmt.Errorf("setting anchor type: %w", err)
	}
	return nil
}

func (s *plannerService) SetAnchorDate(ctx context.Context, date time.Time) error {
	date = domain.Truncate(date)
	err := s.updateActive(ctx, func(t *domain.Timeline, _ calendar.Calendar) (bool, error) {
		changed := !t.Data.AnchorDate.Equal(date)
		t.Data.AnchorDate = date
		return changed, nil
	})
	if err != nil {
		return fmt.Errorf("setting anchor date: %w", err)
	}
	return nil
}

func (s *plannerService) SetSortOrder(ctx context.Context, order domain.SortOrder) error {
	if !order.Valid() {
		return fmt.Errorf("setting sort order: %w: %q", domain.ErrInvalidOption, order)
	}
	err := s.updateActive(ctx, func(t *domain.Timeline, _ calendar.Calendar) (bool, error) {
		changed := t.Data.SortOrder != order
		t.Data.SortOrder = order
		return changed, nil
	})
	if err != nil {
		return fmt.Errorf("setting sort order: %w", err)
	}
	return nil
}

func (s *plannerService) SetHolidays(ctx context.Context, text string) (holidays []string, err error) {
	holidays = calendar.ParseHolidayList(text)
	defer s.track(ctx, "set-holidays", time.Now(), map[string]any{"count": len(holidays)}, &err)

	err = s.update(ctx, func(state *domain.AppState) (bool, error) {
		state.Holidays = holidays
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("setting holidays: %w", err)
	}
	return holidays, nil
}

func (s *plannerService) SelectTimeline(ctx context.Context, timelineID string) error {
	err := s.update(ctx, func(state *domain.AppState) (bool, error) {
		if timelineID == "" {
			return false, domain.ErrTimelineNotFound
		}
		t, err := state.Timeline(timelineID)
		if err != nil {
			return false, err
		}
		changed := state.ActiveTimelineID != t.ID
		state.ActiveTimelineID = t.ID
		return changed, nil
	})
	if err != nil {
		return fmt.Errorf("selecting timeline: %w", err)
	}
	return nil
}

// AddTimeline creates a timeline with the default phases and makes it
// active.
func (s *plannerService) AddTimeline(ctx context.Context, name string) (timeline *domain.Timeline, err error) {
	defer s.track(ctx, "add-timeline", time.Now(), map[string]any{"name": name}, &err)

	err = s.update(ctx, func(state *domain.AppState) (bool, error) {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Timeline %d", len(state.Timelines)+1)
		}
		timeline = domain.NewDefaultTimeline(name, s.now())
		state.Timelines = append(state.Timelines, timeline)
		state.ActiveTimelineID = timeline.ID
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("adding timeline: %w", err)
	}
	return timeline, nil
}

func (s *plannerService) RenameTimeline(ctx context.Context, timelineID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("renaming timeline: %w", domain.ErrEmptyName)
	}
	err := s.update(ctx, func(state *domain.AppState) (bool, error) {
		t, err := state.Timeline(timelineID)
		if err != nil {
			return false, err
		}
		if t.Name == name {
			return false, nil
		}
		t.Name = name
		t.UpdatedAt = s.now().UTC()
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("renaming timeline: %w", err)
	}
	return nil
}

func (s *plannerService) DeleteTimeline(ctx context.Context, timelineID string) (err error) {
	defer s.track(ctx, "delete-timeline", time.Now(), map[string]any{"timeline_id": timelineID}, &err)

	err = s.update(ctx, func(state *domain.AppState) (bool, error) {
		if timelineID == "" {
			return false, domain.ErrTimelineNotFound
		}
		t, err := state.Timeline(timelineID)
		if err != nil {
			return false, err
		}
		if len(state.Timelines) <= 1 {
			return false, domain.ErrLastTimeline
		}
		kept := state.Timelines[:0]
		for _, other := range state.Timelines {
			if other != t {
				kept = append(kept, other)
			}
		}
		state.Timelines = kept
		if state.ActiveTimelineID == t.ID {
			state.ActiveTimelineID = kept[0].ID
		}
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("deleting timeline: %w", err)
	}
	return nil
}

// Drag commits a finished chart drag on the active timeline. A zero delta
// writes nothing. A collision leaves the stored state untouched.
func (s *plannerService) Drag(ctx context.Context, req reconciler.Request) (outcome *DragOutcome, err error) {
	defer s.track(ctx, "drag", time.Now(), map[string]any{
		"phase_id": req.PhaseID,
		"kind":     string(req.Kind),
		"delta":    req.DeltaDays,
	}, &err)

	err = s.update(ctx, func(state *domain.AppState) (bool, error) {
		t := state.Active()
		cal := calendar.New(state.Holidays)
		repaired := scheduler.RepairAnchor(&t.Data)

		res, err := reconciler.Reconcile(&t.Data, cal, req)
		if err != nil {
			return false, err
		}
		if res.Changed || repaired {
			t.UpdatedAt = s.now().UTC()
		}
		outcome = &DragOutcome{
			Result:   res,
			Schedule: newSchedule(state, t, scheduler.Compute(t.Data, cal)),
		}
		return res.Changed || repaired, nil
	})
	if err != nil {
		return nil, fmt.Errorf("committing drag: %w", err)
	}
	return outcome, nil
}

func (s *plannerService) Export(ctx context.Context) (data []byte, err error) {
	defer s.track(ctx, "export", time.Now(), nil, &err)

	state, err := s.State(ctx)
	if err != nil {
		return nil, err
	}
	return document.Encode(document.FromState(state))
}

// Import accepts any supported document shape. A full document replaces the
// stored state; a bare single-timeline document is appended as a new active
// timeline and its holidays are merged into the shared list.
func (s *plannerService) Import(ctx context.Context, raw []byte) (result *ImportResult, err error) {
	fields := map[string]any{"bytes": len(raw)}
	defer s.track(ctx, "import", time.Now(), fields, &err)

	doc, shape, err := document.Upgrade(raw)
	if err != nil {
		return nil, fmt.Errorf("importing document: %w", err)
	}
	fields["shape"] = string(shape)

	imported, err := document.ToState(doc, s.now())
	if err != nil {
		return nil, fmt.Errorf("importing document: %w", err)
	}

	result = &ImportResult{Shape: shape}
	err = s.update(ctx, func(state *domain.AppState) (bool, error) {
		if shape != document.ShapeV1 {
			*state = *imported
			result.Timelines = len(state.Timelines)
			result.Holidays = len(state.Holidays)
			return true, nil
		}

		t := imported.Timelines[0]
		t.Name = fmt.Sprintf("Imported timeline %d", len(state.Timelines)+1)
		state.Timelines = append(state.Timelines, t)
		state.ActiveTimelineID = t.ID
		state.Holidays = calendar.ParseHolidayList(
			calendar.FormatHolidayList(append(state.Holidays, imported.Holidays...)))

		result.Appended = true
		result.Timelines = 1
		result.Holidays = len(imported.Holidays)
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing document: %w", err)
	}
	return result, nil
}
