package lookup_test

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres/lookup"
	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/sapl-backend/internal/domain"
)

func TestRepo_Labels_InClause(t *testing.T) {
	t.Parallel()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name FROM tramitacao_units WHERE id IN \(\$1,\$2\)`).
		WithArgs(int64(3), int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(int64(3), "CCJ"))

	got, err := lookup.New(mock).Labels(context.Background(), domain.LabelUnit, []int64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{3: "CCJ"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Labels_EmptyIDsSkipQuery(t *testing.T) {
	t.Parallel()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	got, err := lookup.New(mock).Labels(context.Background(), domain.LabelCommittee, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Labels_UnknownKind(t *testing.T) {
	t.Parallel()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = lookup.New(mock).Labels(context.Background(), domain.LabelKind("users; DROP"), []int64{1})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestRepo_Integration(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := lookup.New(pool)
	ctx := context.Background()

	mt := testhelper.SeedMatterType(t, pool, "Moção")
	st := testhelper.SeedStatus(t, pool, "Aprovado")

	types, err := repo.Labels(ctx, domain.LabelMatterType, []int64{mt.ID, -1})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{mt.ID: "Moção"}, types)

	statuses, err := repo.Labels(ctx, domain.LabelStatus, []int64{st.ID})
	require.NoError(t, err)
	assert.Equal(t, st.Acronym+" - Aprovado", statuses[st.ID])

	choices, err := repo.All(ctx, domain.LabelMatterType)
	require.NoError(t, err)
	assert.Contains(t, choices, domain.Choice{ID: mt.ID, Label: "Moção"})
}
