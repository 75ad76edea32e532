package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

// SQLSTATE codes MapError distinguishes.
const (
	codeQueryCanceled      = "57014"
	codeAdminShutdown      = "57P01"
	codeCannotConnectNow   = "57P03"
	codeTooManyConnections = "53300"
	codeUndefinedTable     = "42P01"
	codeUndefinedColumn    = "42703"
	codeReadOnlyTx         = "25006"
)

// MapError labels err with what was being read and translates the store
// failures callers branch on into domain sentinels. Context errors keep
// their identity.
func MapError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", what, err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeQueryCanceled:
			return fmt.Errorf("%s: statement timeout: %w", what, domain.ErrUnavailable)
		case codeUndefinedTable, codeUndefinedColumn:
			return fmt.Errorf("%s: schema not migrated (%s): %w", what, pgErr.Message, domain.ErrUnavailable)
		case codeAdminShutdown, codeCannotConnectNow, codeTooManyConnections:
			return fmt.Errorf("%s: %s: %w", what, pgErr.Message, domain.ErrUnavailable)
		case codeReadOnlyTx:
			return fmt.Errorf("%s: write inside read-only snapshot: %w", what, err)
		}
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %v: %w", what, err, domain.ErrUnavailable)
	}

	return fmt.Errorf("%s: %w", what, err)
}
