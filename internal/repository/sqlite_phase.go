package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/domain"
)

// SQLitePhaseRepo implements PhaseRepo.
type SQLitePhaseRepo struct {
	db db.DBTX
}

// NewSQLitePhaseRepo creates a new SQLitePhaseRepo.
func NewSQLitePhaseRepo(conn db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: conn}
}

func (r *SQLitePhaseRepo) ListByTimeline(ctx context.Context, timelineID string) ([]domain.Phase, error) {
	query := `SELECT id, name, days, mode, manual_start, manual_end
		FROM phases WHERE timeline_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, timelineID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	phases := []domain.Phase{}
	for rows.Next() {
		var p domain.Phase
		var mode string
		var manualStart, manualEnd sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Days, &mode, &manualStart, &manualEnd); err != nil {
			return nil, fmt.Errorf("scanning phase row: %w", err)
		}
		p.Mode = domain.PhaseMode(mode)
		p.ManualStart = parseNullableDate(manualStart)
		p.ManualEnd = parseNullableDate(manualEnd)
		phases = append(phases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}

// ReplaceForTimeline rewrites the phase list of a timeline, keeping the
// slice order as the stored position.
func (r *SQLitePhaseRepo) ReplaceForTimeline(ctx context.Context, timelineID string, phases []domain.Phase) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM phases WHERE timeline_id = ?`, timelineID); err != nil {
		return fmt.Errorf("clearing phases: %w", err)
	}

	query := `INSERT INTO phases (id, timeline_id, position, name, days, mode, manual_start, manual_end)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range phases {
		p := &phases[i]
		mode := p.Mode
		if mode == "" {
			mode = domain.ModeSequential
		}
		_, err := r.db.ExecContext(ctx, query,
			p.ID,
			timelineID,
			i,
			p.Name,
			p.Duration(),
			string(mode),
			nullableDateToString(p.ManualStart),
			nullableDateToString(p.ManualEnd),
		)
		if err != nil {
			return fmt.Errorf("inserting phase %q: %w", p.Name, err)
		}
	}
	return nil
}
