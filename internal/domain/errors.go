package domain

import "errors"

var (
	ErrPhaseNotFound        = errors.New("phase not found")
	ErrTimelineNotFound     = errors.New("timeline not found")
	ErrAnchorParallel       = errors.New("the anchor phase cannot be parallel")
	ErrLastTimeline         = errors.New("cannot delete the last remaining timeline")
	ErrCollision            = errors.New("phase would overlap a sequential phase")
	ErrIndexOutOfRange      = errors.New("phase index out of range")
	ErrInvalidDate          = errors.New("invalid date (expected YYYY-MM-DD)")
	ErrUnrecognizedDocument = errors.New("unrecognized document shape")
	ErrDragActive           = errors.New("a drag is already in progress")
	ErrNoDrag               = errors.New("no drag in progress")
	ErrEmptyName            = errors.New("name must not be empty")
	ErrInvalidOption        = errors.New("invalid option")
)
