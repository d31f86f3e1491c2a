package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB returns a migrated in-memory database closed at test cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
