package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
)

// SQLiteTimelineRepo implements TimelineRepo.
type SQLiteTimelineRepo struct {
	db db.DBTX
}

// NewSQLiteTimelineRepo creates a new SQLiteTimelineRepo.
func NewSQLiteTimelineRepo(conn db.DBTX) *SQLiteTimelineRepo {
	return &SQLiteTimelineRepo{db: conn}
}

const timelineColumns = `id, name, anchor_date, anchor_phase_id, anchor_type, sort_order, created_at, updated_at`

func (r *SQLiteTimelineRepo) Create(ctx context.Context, t *domain.Timeline, position int) error {
	query := `INSERT INTO timelines (` + timelineColumns + `, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		domain.FormatDate(t.Data.AnchorDate),
		t.Data.AnchorPhaseID,
		string(t.Data.AnchorType),
		string(t.Data.SortOrder),
		formatTimestamp(t.CreatedAt),
		formatTimestamp(t.UpdatedAt),
		position,
	)
	if err != nil {
		return fmt.Errorf("inserting timeline: %w", err)
	}
	return nil
}

func (r *SQLiteTimelineRepo) List(ctx context.Context) ([]*domain.Timeline, error) {
	query := `SELECT ` + timelineColumns + ` FROM timelines ORDER BY position, created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing timelines: %w", err)
	}
	defer rows.Close()

	var timelines []*domain.Timeline
	for rows.Next() {
		t, err := scanTimeline(rows)
		if err != nil {
			return nil, err
		}
		timelines = append(timelines, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timelines: %w", err)
	}
	return timelines, nil
}

func (r *SQLiteTimelineRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM timelines`); err != nil {
		return fmt.Errorf("deleting timelines: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTimeline(row rowScanner) (*domain.Timeline, error) {
	var t domain.Timeline
	var anchorDate, anchorType, sortOrder, createdAt, updatedAt string

	err := row.Scan(&t.ID, &t.Name, &anchorDate, &t.Data.AnchorPhaseID,
		&anchorType, &sortOrder, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("scanning timeline: %w", err)
	}

	t.Data.AnchorType = domain.AnchorType(anchorType)
	t.Data.SortOrder = domain.SortOrder(sortOrder)

	var parseErr error
	if t.Data.AnchorDate, parseErr = domain.ParseDate(anchorDate); parseErr != nil {
		return nil, fmt.Errorf("parsing anchor_date: %w", parseErr)
	}
	if t.CreatedAt, parseErr = parseTimestamp(createdAt); parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	if t.UpdatedAt, parseErr = parseTimestamp(updatedAt); parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &t, nil
}
