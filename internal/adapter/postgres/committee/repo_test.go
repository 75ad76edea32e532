package committee_test

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres/committee"
	"github.com/heartmarshall/sapl-backend/internal/domain"
)

var june = domain.DateRange{
	From: time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC),
	To:   time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC),
}

func TestRepo_Meetings_CommitteeFilter(t *testing.T) {
	t.Parallel()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	day := time.Date(2022, 6, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM meetings WHERE date BETWEEN \$1 AND \$2 AND committee_id = \$3 ORDER BY date DESC, id DESC`).
		WithArgs(june.From, june.To, int64(8)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "committee_id", "number", "name", "date"}).
			AddRow(int64(1), int64(8), 3, "Reunião ordinária", day))

	cid := int64(8)
	got, err := committee.New(mock).Meetings(context.Background(), domain.MeetingFilter{Range: june, CommitteeID: &cid})
	require.NoError(t, err)
	assert.Equal(t, []domain.Meeting{{ID: 1, CommitteeID: 8, Number: 3, Name: "Reunião ordinária", Date: day}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Hearings_RangeOnly(t *testing.T) {
	t.Parallel()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM public_hearings WHERE date BETWEEN \$1 AND \$2 ORDER BY`).
		WithArgs(june.From, june.To).
		WillReturnRows(pgxmock.NewRows([]string{"id", "type_id", "number", "name", "date"}))

	got, err := committee.New(mock).Hearings(context.Background(), domain.HearingFilter{Range: june})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
