package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MapError(nil, "list matters"))
}

func TestMapError_NoRows(t *testing.T) {
	t.Parallel()

	got := MapError(fmt.Errorf("scan row: %w", pgx.ErrNoRows), "legislative house")

	assert.ErrorIs(t, got, domain.ErrNotFound)
	assert.EqualError(t, got, "legislative house: not found")
}

func TestMapError_Unavailable(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"57014", "42P01", "42703", "57P01", "57P03", "53300"} {
		t.Run(code, func(t *testing.T) {
			t.Parallel()

			got := MapError(&pgconn.PgError{Code: code, Message: "x"}, "list protocols")
			assert.ErrorIs(t, got, domain.ErrUnavailable)
		})
	}
}

func TestMapError_ReadOnlyTransactionKeepsPgError(t *testing.T) {
	t.Parallel()

	got := MapError(&pgconn.PgError{Code: "25006"}, "app config")

	var target *pgconn.PgError
	assert.True(t, errors.As(got, &target))
	assert.NotErrorIs(t, got, domain.ErrUnavailable)
}

func TestMapError_ContextErrorsPassThrough(t *testing.T) {
	t.Parallel()

	for _, ctxErr := range []error{context.DeadlineExceeded, context.Canceled} {
		got := MapError(ctxErr, "count sessions")
		assert.ErrorIs(t, got, ctxErr)
		assert.NotErrorIs(t, got, domain.ErrNotFound)
	}
}

func TestMapError_UnknownError(t *testing.T) {
	t.Parallel()

	original := errors.New("something unexpected")
	got := MapError(original, "list meetings")

	assert.ErrorIs(t, got, original)
	assert.EqualError(t, got, "list meetings: something unexpected")
}
