package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantry/internal/db"
)

// SQLiteHolidayRepo implements HolidayRepo.
type SQLiteHolidayRepo struct {
	db db.DBTX
}

// NewSQLiteHolidayRepo creates a new SQLiteHolidayRepo.
func NewSQLiteHolidayRepo(conn db.DBTX) *SQLiteHolidayRepo {
	return &SQLiteHolidayRepo{db: conn}
}

func (r *SQLiteHolidayRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT day FROM holidays ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	days := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning holiday row: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return days, nil
}

// Replace stores days as the full holiday list. Duplicates are ignored.
func (r *SQLiteHolidayRepo) Replace(ctx context.Context, days []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM holidays`); err != nil {
		return fmt.Errorf("clearing holidays: %w", err)
	}
	for i, d := range days {
		if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO holidays (day, position) VALUES (?, ?)`, d, i); err != nil {
			return fmt.Errorf("inserting holiday %s: %w", d, err)
		}
	}
	return nil
}
