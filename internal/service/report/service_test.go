package report

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/sapl-backend/internal/domain"
	"github.com/heartmarshall/sapl-backend/internal/filter"
)

var march = domain.DateRange{
	From: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
	To:   time.Date(2021, 3, 31, 0, 0, 0, 0, time.UTC),
}

// ---------------------------------------------------------------------------
// Attendance
// ---------------------------------------------------------------------------

func TestPercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		count, total int
		want         float64
	}{
		{3, 10, 30.0},
		{0, 0, 0},
		{5, 0, 0},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{10, 10, 100},
		{1, 800, 0.12},
		{3, 800, 0.38},
		{5, 800, 0.62},
		{7, 800, 0.88},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.count, tt.total), "%d/%d", tt.count, tt.total)
	}
}

func TestAttendance(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	fx.sessions.people = []domain.Parliamentarian{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bruno"}}
	fx.sessions.sessionCounts = map[int64]int{1: 3}
	fx.sessions.agendaCounts = map[int64]int{}
	fx.sessions.sessions = 10
	fx.sessions.agendas = 0

	rep, err := fx.service().Attendance(context.Background(), march)
	require.NoError(t, err)

	assert.Equal(t, march, rep.Period)
	assert.Equal(t, 10, rep.TotalSessions)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "Ana", rep.Rows[0].Parliamentarian.Name)
	assert.Equal(t, 3, rep.Rows[0].SessionCount)
	assert.Equal(t, 30.0, rep.Rows[0].SessionPercentage)
	assert.Equal(t, 0.0, rep.Rows[0].AgendaPercentage, "zero agenda sessions yield 0")
	assert.Equal(t, 0, rep.Rows[1].SessionCount, "missing row counts as zero")
	assert.Equal(t, 1, fx.tx.runs)
}

func TestAttendance_StoreError(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	boom := errors.New("statement timeout")
	fx.sessions.err = boom

	_, err := fx.service().Attendance(context.Background(), march)
	assert.ErrorIs(t, err, boom)
}

// ---------------------------------------------------------------------------
// Counts and groupings
// ---------------------------------------------------------------------------

func TestCountByType_OmitsZero(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	fx.matters.types = []domain.MatterType{
		{ID: 1, Description: "Indicação"},
		{ID: 2, Description: "Projeto de Lei"},
	}
	fx.matters.counts = map[int64]int{2: 5}

	got, err := fx.service().CountByType(context.Background(), domain.MatterFilter{})
	require.NoError(t, err)
	assert.Equal(t, []domain.TypeCount{{TypeID: 2, Label: "Projeto de Lei", Count: 5}}, got)
}

func TestGroupByAuthor_Example(t *testing.T) {
	t.Parallel()

	const (
		a, b int64 = 1, 2
		x, y int64 = 10, 11
	)
	counts := []domain.AuthorshipCount{
		{AuthorID: a, TypeID: x, Count: 1},
		{AuthorID: a, TypeID: y, Count: 2},
		{AuthorID: b, TypeID: x, Count: 3},
	}
	names := map[int64]string{a: "A", b: "B"}
	labels := map[int64]string{x: "X", y: "Y"}

	got := GroupByAuthor(counts, func(id int64) string { return names[id] }, labels)

	assert.Equal(t, []domain.AuthorGroup{
		{AuthorID: a, Author: "A", Matters: []domain.TypeCount{{TypeID: x, Label: "X", Count: 1}, {TypeID: y, Label: "Y", Count: 2}}, Total: 3},
		{AuthorID: b, Author: "B", Matters: []domain.TypeCount{{TypeID: x, Label: "X", Count: 3}}, Total: 3},
	}, got)
}

func TestGroupByAuthor_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GroupByAuthor(nil, func(int64) string { return "" }, nil))
}

func TestMattersByAuthorYear(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	fx.matters.types = []domain.MatterType{{ID: 10, Description: "Projeto de Lei"}}
	fx.matters.counts = map[int64]int{10: 4}
	fx.matters.primary = []domain.AuthorshipCount{{AuthorID: 1, TypeID: 10, Count: 3}}
	fx.matters.coAuthors = []domain.AuthorshipCount{{AuthorID: 2, TypeID: 10, Count: 1}}
	fx.labels.labels[domain.LabelMatterType] = map[int64]string{10: "Projeto de Lei"}
	fx.labels.authors = map[int64]domain.ResolvedAuthor{
		1: {Author: domain.Author{ID: 1}, Subject: domain.Parliamentarian{Name: "Ana"}},
	}

	rep, err := fx.service().MattersByAuthorYear(context.Background(), 2020)
	require.NoError(t, err)

	assert.Equal(t, 2020, rep.Year)
	assert.Equal(t, []domain.TypeCount{{TypeID: 10, Label: "Projeto de Lei", Count: 4}}, rep.TypeCounts)
	require.Len(t, rep.Primary, 1)
	assert.Equal(t, "Ana", rep.Primary[0].Author)
	require.Len(t, rep.CoAuthors, 1)
	assert.Equal(t, "", rep.CoAuthors[0].Author, "unresolved author degrades to an empty name")
	assert.Equal(t, 1, rep.CoAuthors[0].Total)
	assert.Equal(t, 1, fx.tx.runs)
}

// ---------------------------------------------------------------------------
// Matter listings
// ---------------------------------------------------------------------------

func TestMattersInTramitacao_FromForm(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	fx.matters.matters = []domain.Matter{{ID: 1, TypeID: 10}}
	fx.matters.types = []domain.MatterType{{ID: 10, Description: "Requerimento"}}
	fx.matters.counts = map[int64]int{10: 1}
	fx.labels.labels[domain.LabelMatterType] = map[int64]string{10: "Requerimento"}

	form := filter.Parse(url.Values{
		FieldYear:        {"2021"},
		FieldDestination: {"7"},
	}, MattersInTramitacaoSpec)
	require.True(t, form.Ready)

	rep, err := fx.service().MattersInTramitacao(context.Background(), MattersInTramitacaoFilterFrom(form))
	require.NoError(t, err)

	require.Len(t, rep.Matters, 1)
	assert.Equal(t, "Requerimento", rep.Matters[0].TypeLabel)
	assert.True(t, fx.matters.lastFilter.InTramitacao)
	assert.Equal(t, 2021, *fx.matters.lastFilter.Year)
	assert.Equal(t, []domain.LatestTramitacaoFilter{{Field: domain.LatestByDestination, ID: 7}}, fx.matters.lastFilter.Latest)
}

func TestMattersByAuthor_FromForm(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	form := filter.Parse(url.Values{
		FieldPresentation + "_0": {"01/03/2021"},
		FieldPresentation + "_1": {"31/03/2021"},
		FieldAuthor:              {"4"},
	}, MattersByAuthorSpec)
	require.True(t, form.Ready)

	_, err := fx.service().MattersByAuthor(context.Background(), MattersByAuthorFilterFrom(form))
	require.NoError(t, err)

	got := fx.matters.lastFilter
	require.NotNil(t, got.Presented)
	assert.Equal(t, march, *got.Presented)
	assert.Equal(t, int64(4), *got.AuthorID)
	assert.Nil(t, got.TypeID)
	assert.False(t, got.InTramitacao)
}

// ---------------------------------------------------------------------------
// Tramitação
// ---------------------------------------------------------------------------

func TestTramitacoes_LabelsAndTypeCounts(t *testing.T) {
	t.Parallel()

	origin := int64(5)
	fx := newFixture()
	fx.matters.types = []domain.MatterType{{ID: 10, Description: "Projeto de Lei"}}
	fx.matters.tramitacoes = []domain.TramitacaoLine{
		{Tramitacao: domain.Tramitacao{ID: 1, MatterID: 100, OriginUnitID: &origin, DestinationUnitID: 6, StatusID: 20}, MatterTypeID: 10},
		{Tramitacao: domain.Tramitacao{ID: 2, MatterID: 100, DestinationUnitID: 7, StatusID: 21}, MatterTypeID: 10},
		{Tramitacao: domain.Tramitacao{ID: 3, MatterID: 101, DestinationUnitID: 6, StatusID: 20}, MatterTypeID: 10},
	}
	fx.labels.labels[domain.LabelMatterType] = map[int64]string{10: "Projeto de Lei"}
	fx.labels.labels[domain.LabelStatus] = map[int64]string{20: "AP - Aguardando parecer"}
	fx.labels.labels[domain.LabelUnit] = map[int64]string{5: "Protocolo", 6: "CCJ"}

	rep, err := fx.service().Tramitacoes(context.Background(), domain.TramitacaoFilter{
		DateField: domain.TramitacaoRecorded,
		Range:     march,
	})
	require.NoError(t, err)

	require.Len(t, rep.Rows, 3)
	assert.Equal(t, "Protocolo", rep.Rows[0].OriginLabel)
	assert.Equal(t, "CCJ", rep.Rows[0].DestinationLabel)
	assert.Equal(t, "AP - Aguardando parecer", rep.Rows[0].StatusLabel)
	assert.Equal(t, "", rep.Rows[1].DestinationLabel, "unknown unit degrades to empty label")
	assert.Equal(t, "", rep.Rows[1].StatusLabel)
	assert.Equal(t, []domain.TypeCount{{TypeID: 10, Label: "Projeto de Lei", Count: 2}}, rep.TypeCounts, "counts distinct matters")
}

func TestTramitacaoFilterFrom_Deadline(t *testing.T) {
	t.Parallel()

	form := filter.Parse(url.Values{
		FieldTramitacaoDueDate + "_0": {"01/03/2021"},
		FieldTramitacaoDueDate + "_1": {"31/03/2021"},
		FieldStatus:                   {"3"},
	}, TramitacaoDeadlineSpec)
	require.True(t, form.Ready)

	got := TramitacaoFilterFrom(form, domain.TramitacaoDeadline)
	assert.Equal(t, domain.TramitacaoDeadline, got.DateField)
	assert.Equal(t, march, got.Range)
	assert.Equal(t, int64(3), *got.StatusID)
	assert.Nil(t, got.OriginUnitID)
}

// ---------------------------------------------------------------------------
// Committees
// ---------------------------------------------------------------------------

func TestMeetingsAndHearings_Labels(t *testing.T) {
	t.Parallel()

	fx := newFixture()
	fx.committees.meetings = []domain.Meeting{{ID: 1, CommitteeID: 3}, {ID: 2, CommitteeID: 4}}
	fx.committees.hearings = []domain.PublicHearing{{ID: 1, TypeID: 8}}
	fx.labels.labels[domain.LabelCommittee] = map[int64]string{3: "CCJ"}
	fx.labels.labels[domain.LabelHearingType] = map[int64]string{8: "Audiência temática"}

	svc := fx.service()

	meetings, err := svc.Meetings(context.Background(), domain.MeetingFilter{Range: march})
	require.NoError(t, err)
	assert.Equal(t, "CCJ", meetings[0].CommitteeLabel)
	assert.Equal(t, "", meetings[1].CommitteeLabel)

	hearings, err := svc.Hearings(context.Background(), domain.HearingFilter{Range: march})
	require.NoError(t, err)
	assert.Equal(t, "Audiência temática", hearings[0].TypeLabel)
}

func TestMinutes(t *testing.T) {
	t.Parallel()

	path := "atas/1.pdf"
	fx := newFixture()
	fx.sessions.minutes = []domain.Session{{ID: 1, MinutesPath: &path}}

	got, err := fx.service().Minutes(context.Background(), march)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
