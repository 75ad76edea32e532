package testhelper

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

var yearSeq atomic.Int64

// UniqueYear returns a legislative year no other test in the binary uses.
// Tests that share the container scope their rows by year.
func UniqueYear() int {
	return int(2200 + yearSeq.Add(1))
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ---------------------------------------------------------------------------
// System
// ---------------------------------------------------------------------------

// SeedUser creates an active user with a unique username.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	u := domain.User{
		Username:  "user-" + suffix,
		Email:     "user-" + suffix + "@camara.example",
		FirstName: "Test",
		LastName:  suffix,
		IsActive:  true,
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (username, email, first_name, last_name, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, date_joined`,
		u.Username, u.Email, u.FirstName, u.LastName, u.IsActive,
	).Scan(&u.ID, &u.DateJoined)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return u
}

// ---------------------------------------------------------------------------
// Parliament
// ---------------------------------------------------------------------------

// SeedParliamentarian creates a parliamentarian holding one mandate from
// start to end. A nil end leaves the mandate open.
func SeedParliamentarian(t *testing.T, pool *pgxpool.Pool, name string, start time.Time, end *time.Time) domain.Parliamentarian {
	t.Helper()
	ctx := context.Background()

	p := domain.Parliamentarian{FullName: name + " da Silva", Name: name, Party: "PX", Active: true}
	err := pool.QueryRow(ctx,
		`INSERT INTO parliamentarians (full_name, name, party, active) VALUES ($1, $2, $3, $4) RETURNING id`,
		p.FullName, p.Name, p.Party, p.Active,
	).Scan(&p.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedParliamentarian: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO mandates (parliamentarian_id, start_date, end_date) VALUES ($1, $2, $3)`,
		p.ID, start, end,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedParliamentarian mandate: %v", err)
	}
	return p
}

// SeedSession creates a plenary session on the given day.
func SeedSession(t *testing.T, pool *pgxpool.Pool, number int, day time.Time, minutes *string) domain.Session {
	t.Helper()

	s := domain.Session{Number: number, StartDate: day, MinutesPath: minutes}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO plenary_sessions (number, start_date, minutes_path) VALUES ($1, $2, $3) RETURNING id`,
		s.Number, s.StartDate, s.MinutesPath,
	).Scan(&s.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedSession: %v", err)
	}
	return s
}

// SeedPresence records a parliamentarian's presence at a session. When
// agenda is true the presence is recorded for the order of the day.
func SeedPresence(t *testing.T, pool *pgxpool.Pool, sessionID, parliamentarianID int64, agenda bool) {
	t.Helper()

	table := "session_presences"
	if agenda {
		table = "agenda_presences"
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO `+table+` (session_id, parliamentarian_id) VALUES ($1, $2)`,
		sessionID, parliamentarianID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPresence: %v", err)
	}
}

// SeedCommittee creates a committee.
func SeedCommittee(t *testing.T, pool *pgxpool.Pool, name string) domain.Committee {
	t.Helper()

	c := domain.Committee{Name: name, Acronym: "C" + uniqueSuffix()[:3]}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO committees (name, acronym) VALUES ($1, $2) RETURNING id`,
		c.Name, c.Acronym,
	).Scan(&c.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedCommittee: %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// Matters
// ---------------------------------------------------------------------------

// SeedMatterType creates a matter type with a unique acronym.
func SeedMatterType(t *testing.T, pool *pgxpool.Pool, description string) domain.MatterType {
	t.Helper()

	mt := domain.MatterType{Acronym: "T" + uniqueSuffix()[:4], Description: description}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO matter_types (acronym, description) VALUES ($1, $2) RETURNING id`,
		mt.Acronym, mt.Description,
	).Scan(&mt.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedMatterType: %v", err)
	}
	return mt
}

// SeedMatter creates a matter in tramitação presented on January 10th of year.
func SeedMatter(t *testing.T, pool *pgxpool.Pool, typeID int64, number, year int, protocol *int) domain.Matter {
	t.Helper()

	m := domain.Matter{
		TypeID:           typeID,
		Number:           number,
		Year:             year,
		PresentationDate: Day(year, time.January, 10),
		ProtocolNumber:   protocol,
		InTramitacao:     true,
		Summary:          "Ementa " + uniqueSuffix(),
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO matters (type_id, number, year, presentation_date, protocol_number, in_tramitacao, summary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		m.TypeID, m.Number, m.Year, m.PresentationDate, m.ProtocolNumber, m.InTramitacao, m.Summary,
	).Scan(&m.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedMatter: %v", err)
	}
	return m
}

// SeedProtocol registers a protocol number. Duplicates are allowed.
func SeedProtocol(t *testing.T, pool *pgxpool.Pool, number, year int) domain.Protocol {
	t.Helper()

	p := domain.Protocol{Number: number, Year: year}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO protocols (year, number) VALUES ($1, $2) RETURNING id, created_at`,
		p.Year, p.Number,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedProtocol: %v", err)
	}
	return p
}

// SeedStatus creates a tramitação status.
func SeedStatus(t *testing.T, pool *pgxpool.Pool, description string) domain.TramitacaoStatus {
	t.Helper()

	s := domain.TramitacaoStatus{Acronym: "S" + uniqueSuffix()[:4], Description: description}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO tramitacao_statuses (acronym, description) VALUES ($1, $2) RETURNING id`,
		s.Acronym, s.Description,
	).Scan(&s.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedStatus: %v", err)
	}
	return s
}

// SeedUnit creates a tramitação unit.
func SeedUnit(t *testing.T, pool *pgxpool.Pool, name string) domain.TramitacaoUnit {
	t.Helper()

	u := domain.TramitacaoUnit{Name: name}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO tramitacao_units (name) VALUES ($1) RETURNING id`,
		u.Name,
	).Scan(&u.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedUnit: %v", err)
	}
	return u
}

// SeedTramitacao appends a tramitação record to a matter's history.
// Records inserted later get higher ids and therefore become the latest.
func SeedTramitacao(t *testing.T, pool *pgxpool.Pool, tr domain.Tramitacao) domain.Tramitacao {
	t.Helper()

	err := pool.QueryRow(context.Background(),
		`INSERT INTO tramitacoes (matter_id, origin_unit_id, destination_unit_id, status_id, recorded_date, deadline_date, text)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		tr.MatterID, tr.OriginUnitID, tr.DestinationUnitID, tr.StatusID, tr.RecordedDate, tr.DeadlineDate, tr.Text,
	).Scan(&tr.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedTramitacao: %v", err)
	}
	return tr
}

// ---------------------------------------------------------------------------
// Authors
// ---------------------------------------------------------------------------

// SeedAuthorType creates an author type. A nil content type makes it an
// external author type; otherwise the content type must not be taken yet.
func SeedAuthorType(t *testing.T, pool *pgxpool.Pool, description string, ct *domain.ContentType) domain.AuthorType {
	t.Helper()

	at := domain.AuthorType{Description: description, ContentType: ct}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO author_types (description, content_type) VALUES ($1, $2)
		 ON CONFLICT (content_type) DO UPDATE SET description = EXCLUDED.description
		 RETURNING id`,
		at.Description, at.ContentType,
	).Scan(&at.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedAuthorType: %v", err)
	}
	return at
}

// SeedAuthor creates an author row.
func SeedAuthor(t *testing.T, pool *pgxpool.Pool, a domain.Author) domain.Author {
	t.Helper()

	err := pool.QueryRow(context.Background(),
		`INSERT INTO authors (type_id, content_type, object_id, name, cargo, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		a.TypeID, a.ContentType, a.ObjectID, a.Name, a.Cargo, a.UserID,
	).Scan(&a.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedAuthor: %v", err)
	}
	return a
}

// SeedAuthorship credits an author on a matter.
func SeedAuthorship(t *testing.T, pool *pgxpool.Pool, authorID, matterID int64, primary bool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO authorships (author_id, matter_id, primary_author) VALUES ($1, $2, $3)`,
		authorID, matterID, primary,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAuthorship: %v", err)
	}
}
