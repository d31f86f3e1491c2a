package repository

import (
	"database/sql"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
)

// parseNullableDate parses a nullable YYYY-MM-DD column. Returns nil if the
// value is NULL, empty, or fails to parse.
func parseNullableDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := domain.ParseDate(s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableDateToString converts a *time.Time to a value suitable for SQLite
// storage, or SQL NULL.
func nullableDateToString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return domain.FormatDate(*t)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
