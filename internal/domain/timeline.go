package domain

import (
	"fmt"
	"time"
)

// TimelineData is the scheduling input of one timeline. Phase order defines
// chain adjacency.
type TimelineData struct {
	AnchorDate    time.Time
	AnchorPhaseID string
	AnchorType    AnchorType
	SortOrder     SortOrder
	Phases        []Phase
}

type Timeline struct {
	ID        string
	Name      string
	Data      TimelineData
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IndexOf returns the position of the phase with the given id, or -1.
func (d *TimelineData) IndexOf(id string) int {
	for i := range d.Phases {
		if d.Phases[i].ID == id {
			return i
		}
	}
	return -1
}

// Phase returns a pointer into Phases for the given id.
func (d *TimelineData) Phase(id string) (*Phase, error) {
	i := d.IndexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrPhaseNotFound, id)
	}
	return &d.Phases[i], nil
}

// IsAnchor reports whether id is the current anchor phase.
func (d *TimelineData) IsAnchor(id string) bool {
	return id != "" && d.AnchorPhaseID == id
}

// Clone returns a deep copy of the data.
func (d TimelineData) Clone() TimelineData {
	c := d
	c.Phases = make([]Phase, len(d.Phases))
	for i, p := range d.Phases {
		c.Phases[i] = p.Clone()
	}
	return c
}
