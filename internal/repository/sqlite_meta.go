package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/gantry/internal/db"
)

// Meta keys.
const (
	MetaActiveTimeline = "active_timeline_id"
	MetaSchemaVersion  = "document_version"
)

// SQLiteMetaRepo implements MetaRepo.
type SQLiteMetaRepo struct {
	db db.DBTX
}

// NewSQLiteMetaRepo creates a new SQLiteMetaRepo.
func NewSQLiteMetaRepo(conn db.DBTX) *SQLiteMetaRepo {
	return &SQLiteMetaRepo{db: conn}
}

func (r *SQLiteMetaRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading meta %s: %w", key, err)
	}
	return value, true, nil
}

func (r *SQLiteMetaRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("writing meta %s: %w", key, err)
	}
	return nil
}
