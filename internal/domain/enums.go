package domain

type PhaseMode string

const (
	ModeSequential PhaseMode = "sequential"
	ModeParallel   PhaseMode = "parallel"
)

type AnchorType string

const (
	AnchorStart AnchorType = "start"
	AnchorEnd   AnchorType = "end"
)

// Valid reports whether a is a known anchor type.
func (a AnchorType) Valid() bool {
	return a == AnchorStart || a == AnchorEnd
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Valid reports whether s is a known sort order.
func (s SortOrder) Valid() bool {
	return s == SortAsc || s == SortDesc
}
