package repository

import (
	"context"

	"github.com/alexanderramin/gantry/internal/domain"
)

// TimelineRepo stores timeline headers: name, anchor settings and list
// position. Phases live in PhaseRepo.
type TimelineRepo interface {
	Create(ctx context.Context, t *domain.Timeline, position int) error
	List(ctx context.Context) ([]*domain.Timeline, error)
	DeleteAll(ctx context.Context) error
}

// PhaseRepo stores the ordered phase list of each timeline.
type PhaseRepo interface {
	ListByTimeline(ctx context.Context, timelineID string) ([]domain.Phase, error)
	ReplaceForTimeline(ctx context.Context, timelineID string, phases []domain.Phase) error
}

// HolidayRepo stores the shared holiday list.
type HolidayRepo interface {
	List(ctx context.Context) ([]string, error)
	Replace(ctx context.Context, days []string) error
}

// MetaRepo is a small key/value table for application-level settings such
// as the active timeline.
type MetaRepo interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
