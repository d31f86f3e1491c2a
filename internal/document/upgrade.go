package document

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/google/uuid"
)

// Shape identifies which generation of the document format a payload uses.
type Shape string

const (
	// ShapeV1 is a single flat timeline with its own holiday list.
	ShapeV1 Shape = "v1"
	// ShapeV2 has a timelines array with per-timeline holidays.
	ShapeV2 Shape = "v2"
	// ShapeV3 is the current shape with globalHolidays.
	ShapeV3 Shape = "v3"
)

// Detect classifies a raw payload without fully decoding it.
func Detect(raw []byte) (Shape, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnrecognizedDocument, err)
	}
	if tl, ok := probe["timelines"]; ok {
		var arr []json.RawMessage
		if err := json.Unmarshal(tl, &arr); err != nil {
			return "", fmt.Errorf("%w: timelines is not an array", domain.ErrUnrecognizedDocument)
		}
		if _, ok := probe["globalHolidays"]; ok {
			return ShapeV3, nil
		}
		return ShapeV2, nil
	}
	if _, ok := probe["phases"]; ok {
		return ShapeV1, nil
	}
	return "", fmt.Errorf("%w: neither timelines nor phases present", domain.ErrUnrecognizedDocument)
}

// Upgrade decodes any supported shape into the current one. Holiday lists
// end up in GlobalHolidays only.
func Upgrade(raw []byte) (*Document, Shape, error) {
	shape, err := Detect(raw)
	if err != nil {
		return nil, "", err
	}

	switch shape {
	case ShapeV1:
		var data TimelineDataDoc
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, shape, fmt.Errorf("decoding v1 document: %w", err)
		}
		return upgradeV1(data), shape, nil
	default:
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, shape, fmt.Errorf("decoding %s document: %w", shape, err)
		}
		if shape == ShapeV2 {
			doc.GlobalHolidays = firstHolidayList(doc.Timelines)
		}
		for i := range doc.Timelines {
			doc.Timelines[i].Data.Holidays = nil
		}
		if doc.GlobalHolidays == nil {
			doc.GlobalHolidays = []string{}
		}
		return &doc, shape, nil
	}
}

// upgradeV1 wraps a flat document into a single timeline with a fresh id.
func upgradeV1(data TimelineDataDoc) *Document {
	holidays := data.Holidays
	if holidays == nil {
		holidays = []string{}
	}
	data.Holidays = nil
	id := FlexID(uuid.New().String())
	return &Document{
		ActiveTimelineID: id,
		GlobalHolidays:   holidays,
		Timelines: []TimelineDoc{
			{ID: id, Name: "Main timeline", Data: data},
		},
	}
}

// firstHolidayList returns the first non-empty per-timeline holiday list.
func firstHolidayList(timelines []TimelineDoc) []string {
	for _, t := range timelines {
		if len(t.Data.Holidays) > 0 {
			out := make([]string, len(t.Data.Holidays))
			copy(out, t.Data.Holidays)
			return out
		}
	}
	return []string{}
}
