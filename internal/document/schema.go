// Package document is the JSON boundary of the planner: the persisted and
// exported document, the legacy shapes it replaced, and conversion to and
// from domain state.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Document is the current (V3) shape.
type Document struct {
	ActiveTimelineID FlexID        `json:"activeTimelineId"`
	GlobalHolidays   []string      `json:"globalHolidays"`
	Timelines        []TimelineDoc `json:"timelines"`
}

// TimelineDoc is one timeline entry of a Document.
type TimelineDoc struct {
	ID   FlexID          `json:"id"`
	Name string          `json:"name"`
	Data TimelineDataDoc `json:"data"`
}

// TimelineDataDoc is also the whole of a V1 document. Holidays only appears in
// legacy shapes and is never written.
type TimelineDataDoc struct {
	AnchorDate    string     `json:"anchorDate"`
	AnchorPhaseID FlexID     `json:"anchorPhaseId"`
	AnchorType    string     `json:"anchorType"`
	SortOrder     string     `json:"sortOrder"`
	Holidays      []string   `json:"holidays,omitempty"`
	Phases        []PhaseDoc `json:"phases"`
}

// PhaseDoc is one phase. Manual dates may be present on a sequential phase
// and are ignored there.
type PhaseDoc struct {
	ID              FlexID `json:"id"`
	Name            string `json:"name"`
	Days            int    `json:"days"`
	IsParallel      bool   `json:"isParallel,omitempty"`
	ManualStartDate string `json:"manualStartDate,omitempty"`
	ManualEndDate   string `json:"manualEndDate,omitempty"`
}

// FlexID accepts either a JSON string or a JSON number. Older documents used
// numeric ids.
type FlexID string

// UnmarshalJSON implements custom unmarshaling for FlexID.
func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %s", data)
	}
	if i, err := n.Int64(); err == nil {
		*id = FlexID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = FlexID(n.String())
	return nil
}

// Encode renders a document as indented JSON.
func Encode(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return append(data, '\n'), nil
}

// Load reads and upgrades a document file of any supported shape.
func Load(path string) (*Document, Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return Upgrade(data)
}

// Save writes doc to path.
func Save(path string, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}
