package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/gantry/internal/db"
)

// FailOnNthExecUoW behaves like the SQLite unit of work except that the
// FailOn-th write (counting from 1) returns Err. Reads are never counted.
// It is used to prove that a failed save leaves nothing behind, or that an
// operation performs no write at all (FailOn: 1).
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	execs atomic.Int32
}

// Execs reports how many writes were attempted across all transactions.
func (u *FailOnNthExecUoW) Execs() int {
	return int(u.execs.Load())
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &countingTx{DBTX: tx, uow: u, seen: new(atomic.Int32)})
	})
}

// countingTx numbers writes per transaction.
type countingTx struct {
	db.DBTX
	uow  *FailOnNthExecUoW
	seen *atomic.Int32
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.uow.execs.Add(1)
	if c.seen.Add(1) == c.uow.FailOn {
		return nil, c.uow.Err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
