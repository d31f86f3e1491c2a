package document

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/calendar"
	"github.com/alexanderramin/gantry/internal/domain"
)

// ToState validates doc and converts it into domain state. now stamps the
// created and updated times of every timeline.
func ToState(doc *Document, now time.Time) (*domain.AppState, error) {
	if errs := Validate(doc); len(errs) > 0 {
		return nil, fmt.Errorf("validating document: %w", errors.Join(errs...))
	}

	state := &domain.AppState{
		ActiveTimelineID: string(doc.ActiveTimelineID),
		Holidays:         calendar.ParseHolidayList(calendar.FormatHolidayList(doc.GlobalHolidays)),
	}
	for _, td := range doc.Timelines {
		t, err := TimelineFromDoc(td, now)
		if err != nil {
			return nil, err
		}
		state.Timelines = append(state.Timelines, t)
	}
	if active := state.Active(); active != nil {
		state.ActiveTimelineID = active.ID
	}
	return state, nil
}

// TimelineFromDoc converts a single timeline entry.
func TimelineFromDoc(td TimelineDoc, now time.Time) (*domain.Timeline, error) {
	anchor, err := domain.ParseDate(td.Data.AnchorDate)
	if err != nil {
		return nil, fmt.Errorf("converting timeline %q: %w", td.Name, err)
	}

	data := domain.TimelineData{
		AnchorDate:    anchor,
		AnchorPhaseID: string(td.Data.AnchorPhaseID),
		AnchorType:    domain.AnchorType(td.Data.AnchorType),
		SortOrder:     domain.SortOrder(td.Data.SortOrder),
		Phases:        make([]domain.Phase, 0, len(td.Data.Phases)),
	}
	if !data.AnchorType.Valid() {
		data.AnchorType = domain.AnchorStart
	}
	if !data.SortOrder.Valid() {
		data.SortOrder = domain.SortAsc
	}

	for _, pd := range td.Data.Phases {
		p, err := phaseFromDoc(pd)
		if err != nil {
			return nil, fmt.Errorf("converting timeline %q: %w", td.Name, err)
		}
		data.Phases = append(data.Phases, p)
	}

	name := td.Name
	if name == "" {
		name = "Untitled timeline"
	}
	return &domain.Timeline{
		ID:        string(td.ID),
		Name:      name,
		Data:      data,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}

func phaseFromDoc(pd PhaseDoc) (domain.Phase, error) {
	p := domain.Phase{
		ID:   string(pd.ID),
		Name: pd.Name,
		Days: pd.Days,
		Mode: domain.ModeSequential,
	}
	if p.Days < 1 {
		p.Days = 1
	}
	if pd.IsParallel {
		p.Mode = domain.ModeParallel
	}
	if pd.ManualStartDate != "" {
		t, err := domain.ParseDate(pd.ManualStartDate)
		if err != nil {
			return p, fmt.Errorf("phase %q manual start: %w", pd.Name, err)
		}
		p.ManualStart = &t
	}
	if pd.ManualEndDate != "" {
		t, err := domain.ParseDate(pd.ManualEndDate)
		if err != nil {
			return p, fmt.Errorf("phase %q manual end: %w", pd.Name, err)
		}
		p.ManualEnd = &t
	}
	if p.IsParallel() && p.ManualStart != nil && p.ManualEnd != nil {
		p.SetManualRange(*p.ManualStart, *p.ManualEnd)
	}
	return p, nil
}

// FromState renders domain state as a current-shape document.
func FromState(state *domain.AppState) *Document {
	doc := &Document{
		ActiveTimelineID: FlexID(state.ActiveTimelineID),
		GlobalHolidays:   append([]string{}, state.Holidays...),
		Timelines:        make([]TimelineDoc, 0, len(state.Timelines)),
	}
	for _, t := range state.Timelines {
		doc.Timelines = append(doc.Timelines, TimelineDoc{
			ID:   FlexID(t.ID),
			Name: t.Name,
			Data: dataToDoc(&t.Data),
		})
	}
	return doc
}

func dataToDoc(d *domain.TimelineData) TimelineDataDoc {
	out := TimelineDataDoc{
		AnchorDate:    domain.FormatDate(d.AnchorDate),
		AnchorPhaseID: FlexID(d.AnchorPhaseID),
		AnchorType:    string(d.AnchorType),
		SortOrder:     string(d.SortOrder),
		Phases:        make([]PhaseDoc, 0, len(d.Phases)),
	}
	for _, p := range d.Phases {
		pd := PhaseDoc{
			ID:         FlexID(p.ID),
			Name:       p.Name,
			Days:       p.Duration(),
			IsParallel: p.IsParallel(),
		}
		if p.ManualStart != nil {
			pd.ManualStartDate = domain.FormatDate(*p.ManualStart)
		}
		if p.ManualEnd != nil {
			pd.ManualEndDate = domain.FormatDate(*p.ManualEnd)
		}
		out.Phases = append(out.Phases, pd)
	}
	return out
}
