package document

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const v1Doc = `{
  "anchorDate": "2024-06-03",
  "anchorPhaseId": 2,
  "anchorType": "start",
  "sortOrder": "asc",
  "holidays": ["2024-05-01"],
  "phases": [
    {"id": 1, "name": "Design", "days": 5},
    {"id": 2, "name": "Build", "days": 10}
  ]
}`

const v2Doc = `{
  "activeTimelineId": "b",
  "timelines": [
    {"id": "a", "name": "First", "data": {"anchorDate": "2024-06-03", "anchorPhaseId": "p1", "anchorType": "start", "sortOrder": "asc", "holidays": [], "phases": [{"id": "p1", "name": "One", "days": 3}]}},
    {"id": "b", "name": "Second", "data": {"anchorDate": "2024-06-03", "anchorPhaseId": "p2", "anchorType": "end", "sortOrder": "desc", "holidays": ["2024-12-25", "2024-12-26"], "phases": [{"id": "p2", "name": "Two", "days": 4}]}},
    {"id": "c", "name": "Third", "data": {"anchorDate": "2024-06-03", "anchorPhaseId": "p3", "anchorType": "start", "sortOrder": "asc", "holidays": ["2025-01-01"], "phases": [{"id": "p3", "name": "Three", "days": 2}]}}
  ]
}`

const v3Doc = `{
  "activeTimelineId": "a",
  "globalHolidays": ["2024-07-04"],
  "timelines": [
    {"id": "a", "name": "Main", "data": {"anchorDate": "2024-06-03", "anchorPhaseId": "p1", "anchorType": "start", "sortOrder": "asc", "phases": [{"id": "p1", "name": "One", "days": 3}]}}
  ]
}`

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Shape
	}{
		{"flat phases", v1Doc, ShapeV1},
		{"timelines without global holidays", v2Doc, ShapeV2},
		{"global holidays", v3Doc, ShapeV3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_Unrecognized(t *testing.T) {
	for _, raw := range []string{`{"foo": 1}`, `not json`, `[1,2]`, `{"timelines": 3}`} {
		_, err := Detect([]byte(raw))
		assert.True(t, errors.Is(err, domain.ErrUnrecognizedDocument), raw)
	}
}

func TestUpgrade_V1LiftsHolidays(t *testing.T) {
	doc, shape, err := Upgrade([]byte(v1Doc))
	require.NoError(t, err)
	assert.Equal(t, ShapeV1, shape)

	assert.Equal(t, []string{"2024-05-01"}, doc.GlobalHolidays)
	require.Len(t, doc.Timelines, 1)
	assert.Equal(t, doc.ActiveTimelineID, doc.Timelines[0].ID)
	assert.NotEmpty(t, doc.Timelines[0].ID)
	assert.Nil(t, doc.Timelines[0].Data.Holidays)
	assert.Equal(t, FlexID("2"), doc.Timelines[0].Data.AnchorPhaseID)
	assert.Equal(t, FlexID("1"), doc.Timelines[0].Data.Phases[0].ID)

	out, err := Encode(doc)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(out, &generic))
	timelines := generic["timelines"].([]any)
	data := timelines[0].(map[string]any)["data"].(map[string]any)
	_, hasHolidays := data["holidays"]
	assert.False(t, hasHolidays)
}

func TestUpgrade_V2TakesFirstNonEmptyList(t *testing.T) {
	doc, shape, err := Upgrade([]byte(v2Doc))
	require.NoError(t, err)
	assert.Equal(t, ShapeV2, shape)

	assert.Equal(t, []string{"2024-12-25", "2024-12-26"}, doc.GlobalHolidays)
	assert.Equal(t, FlexID("b"), doc.ActiveTimelineID)
	require.Len(t, doc.Timelines, 3)
	for _, tl := range doc.Timelines {
		assert.Nil(t, tl.Data.Holidays)
	}
}

func TestUpgrade_V2WithoutHolidays(t *testing.T) {
	raw := `{"activeTimelineId": "a", "timelines": [{"id": "a", "name": "A", "data": {"anchorDate": "2024-06-03", "phases": []}}]}`
	doc, _, err := Upgrade([]byte(raw))
	require.NoError(t, err)
	assert.NotNil(t, doc.GlobalHolidays)
	assert.Empty(t, doc.GlobalHolidays)
}

func TestUpgrade_V3Unchanged(t *testing.T) {
	doc, shape, err := Upgrade([]byte(v3Doc))
	require.NoError(t, err)
	assert.Equal(t, ShapeV3, shape)
	assert.Equal(t, []string{"2024-07-04"}, doc.GlobalHolidays)
	assert.Equal(t, "Main", doc.Timelines[0].Name)
}

func TestFlexID(t *testing.T) {
	var got struct {
		A FlexID `json:"a"`
		B FlexID `json:"b"`
		C FlexID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 17, "b": "x-1", "c": null}`), &got))
	assert.Equal(t, FlexID("17"), got.A)
	assert.Equal(t, FlexID("x-1"), got.B)
	assert.Equal(t, FlexID(""), got.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a": true}`), &got))
}
