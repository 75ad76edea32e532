package system_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres/system"
	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/sapl-backend/internal/domain"
)

var appConfigCols = []string{
	"id", "documents_visibility", "numbering_sequence", "panel_open",
	"articulated_text_proposition", "articulated_text_matter", "articulated_text_norm",
	"proposition_incorporation", "speech_timer", "aside_timer", "order_timer",
}

func newMockRepo(t *testing.T) (*system.Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return system.New(mock), mock
}

func TestRepo_House_NotFound(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM legislative_houses`).WillReturnError(pgx.ErrNoRows)

	_, err := repo.House(context.Background())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRepo_GetOrCreateAppConfig_Existing(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM app_config`).
		WillReturnRows(pgxmock.NewRows(appConfigCols).AddRow(
			int64(1), "R", "U", true, false, false, true, "C",
			pgtype.Interval{Microseconds: int64(5 * time.Minute / time.Microsecond), Valid: true},
			pgtype.Interval{},
			pgtype.Interval{Days: 1, Valid: true},
		))

	cfg, err := repo.GetOrCreateAppConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentsRestricted, cfg.DocumentsVisibility)
	assert.Equal(t, domain.NumberingUnique, cfg.Numbering)
	assert.Equal(t, domain.IncorporationOptional, cfg.PropositionIncorporation)
	require.NotNil(t, cfg.SpeechTimer)
	assert.Equal(t, 5*time.Minute, *cfg.SpeechTimer)
	assert.Nil(t, cfg.AsideTimer)
	require.NotNil(t, cfg.OrderTimer)
	assert.Equal(t, 24*time.Hour, *cfg.OrderTimer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetOrCreateAppConfig_CreatesDefaults(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .* FROM app_config`).WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO app_config DEFAULT VALUES`).
		WillReturnRows(pgxmock.NewRows(appConfigCols).AddRow(
			int64(1), "O", "A", false, false, false, false, "O",
			pgtype.Interval{}, pgtype.Interval{}, pgtype.Interval{},
		))

	cfg, err := repo.GetOrCreateAppConfig(context.Background())
	require.NoError(t, err)

	want := domain.DefaultAppConfig()
	want.ID = 1
	assert.Equal(t, want, cfg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ListUsers_Integration(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := system.New(pool)

	testhelper.SeedUser(t, pool)
	testhelper.SeedUser(t, pool)

	users, total, err := repo.ListUsers(context.Background(), 100, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, 2)
	for i := 1; i < len(users); i++ {
		assert.LessOrEqual(t, users[i-1].Username, users[i].Username)
	}
}

func TestRepo_UserByUsername(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	joined := time.Date(2019, 2, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM users\s+WHERE username = \$1`).
		WithArgs("secretaria").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "username", "email", "first_name", "last_name", "is_active", "is_superuser", "date_joined",
		}).AddRow(int64(3), "secretaria", "sec@camara.leg.br", "Maria", "Souza", true, true, joined))

	u, err := repo.UserByUsername(context.Background(), "secretaria")
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	assert.True(t, u.IsSuperuser)
	assert.Equal(t, joined, u.DateJoined)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_UserByUsername_NotFound(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM users`).WithArgs("ninguem").WillReturnError(pgx.ErrNoRows)

	_, err := repo.UserByUsername(context.Background(), "ninguem")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
