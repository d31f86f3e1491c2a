package document

import (
	"fmt"

	"github.com/alexanderramin/gantry/internal/domain"
)

// Validate checks an upgraded document before conversion and returns every
// problem found. Malformed holiday entries are not errors; conversion drops
// them.
func Validate(doc *Document) []error {
	var errs []error

	if len(doc.Timelines) == 0 {
		errs = append(errs, fmt.Errorf("timelines: at least one timeline is required"))
	}

	seen := make(map[FlexID]bool)
	for i, t := range doc.Timelines {
		prefix := fmt.Sprintf("timelines[%d]", i)
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if seen[t.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, t.ID))
		}
		seen[t.ID] = true
		errs = append(errs, validateData(prefix+".data", &t.Data)...)
	}
	return errs
}

func validateData(prefix string, d *TimelineDataDoc) []error {
	var errs []error

	if d.AnchorDate == "" {
		errs = append(errs, fmt.Errorf("%s.anchorDate is required", prefix))
	} else if _, err := domain.ParseDate(d.AnchorDate); err != nil {
		errs = append(errs, fmt.Errorf("%s.anchorDate: invalid date format %q (expected YYYY-MM-DD)", prefix, d.AnchorDate))
	}
	if d.AnchorType != "" && !domain.AnchorType(d.AnchorType).Valid() {
		errs = append(errs, fmt.Errorf("%s.anchorType: invalid value %q", prefix, d.AnchorType))
	}
	if d.SortOrder != "" && !domain.SortOrder(d.SortOrder).Valid() {
		errs = append(errs, fmt.Errorf("%s.sortOrder: invalid value %q", prefix, d.SortOrder))
	}

	ids := make(map[FlexID]bool)
	for j, p := range d.Phases {
		pp := fmt.Sprintf("%s.phases[%d]", prefix, j)
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", pp))
		} else if ids[p.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", pp, p.ID))
		}
		ids[p.ID] = true
		if p.IsParallel && p.ID != "" && p.ID == d.AnchorPhaseID {
			errs = append(errs, fmt.Errorf("%s.anchorPhaseId: phase %q is parallel", prefix, p.ID))
		}
		if p.Days < 1 && !p.IsParallel {
			errs = append(errs, fmt.Errorf("%s.days must be positive, got %d", pp, p.Days))
		}
		if p.ManualStartDate != "" {
			if _, err := domain.ParseDate(p.ManualStartDate); err != nil {
				errs = append(errs, fmt.Errorf("%s.manualStartDate: invalid date format %q (expected YYYY-MM-DD)", pp, p.ManualStartDate))
			}
		}
		if p.ManualEndDate != "" {
			if _, err := domain.ParseDate(p.ManualEndDate); err != nil {
				errs = append(errs, fmt.Errorf("%s.manualEndDate: invalid date format %q (expected YYYY-MM-DD)", pp, p.ManualEndDate))
			}
		}
	}
	return errs
}
