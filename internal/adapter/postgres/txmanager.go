package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// txBeginner is satisfied by *pgxpool.Pool and pgxmock pools.
type txBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// readSnapshot gives every query of a report or audit the same view of the store.
var readSnapshot = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

// TxManager opens read-only snapshots and carries them in the context so
// repositories pick them up through QuerierFromCtx.
type TxManager struct {
	db               txBeginner
	statementTimeout time.Duration
}

// TxOption configures a TxManager.
type TxOption func(*TxManager)

// WithStatementTimeout bounds each statement inside a snapshot.
// A zero duration leaves the server default in place.
func WithStatementTimeout(d time.Duration) TxOption {
	return func(m *TxManager) { m.statementTimeout = d }
}

// NewTxManager creates a TxManager over db.
func NewTxManager(db txBeginner, opts ...TxOption) *TxManager {
	m := &TxManager{db: db}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RunReadOnly executes fn within a read-only REPEATABLE READ transaction,
// so every query in fn observes one consistent snapshot. A call made while
// the context already carries a snapshot joins it. The transaction is
// always rolled back: nothing is written, so there is nothing to commit.
func (m *TxManager) RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := txFromCtx(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, readSnapshot)
	if err != nil {
		return MapError(err, "begin snapshot")
	}
	defer func() {
		// A rollback failure after fn succeeded loses nothing.
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	if m.statementTimeout > 0 {
		// SET does not take bind parameters.
		stmt := fmt.Sprintf("SET LOCAL statement_timeout = %d", m.statementTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return MapError(err, "set statement timeout")
		}
	}

	return fn(withTx(ctx, tx))
}
