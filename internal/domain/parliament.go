package domain

import "time"

// Parliamentarian is a member of the house.
type Parliamentarian struct {
	ID       int64
	FullName string
	Name     string
	Party    string
	Active   bool
}

// DisplayName implements AuthorSubject.
func (p Parliamentarian) DisplayName() string { return p.Name }

// Role implements AuthorSubject.
func (p Parliamentarian) Role() string { return "Parlamentar" }

// Mandate is a period in office. A nil EndDate means the mandate is open.
type Mandate struct {
	ID                int64
	ParliamentarianID int64
	StartDate         time.Time
	EndDate           *time.Time
}

// Session is a plenary session.
type Session struct {
	ID          int64
	Number      int
	StartDate   time.Time
	MinutesPath *string
}

// Committee is a standing or temporary committee.
type Committee struct {
	ID      int64
	Name    string
	Acronym string
}

// DisplayName implements AuthorSubject.
func (c Committee) DisplayName() string { return c.Name }

// Role implements AuthorSubject.
func (c Committee) Role() string { return "Comissão" }

// Collective is a front, bench, bloc or organ. Kind tells which.
type Collective struct {
	ID      int64
	Kind    ContentType
	Name    string
	Acronym string
}

// DisplayName implements AuthorSubject.
func (c Collective) DisplayName() string { return c.Name }

// Role implements AuthorSubject.
func (c Collective) Role() string {
	switch c.Kind {
	case ContentFront:
		return "Frente Parlamentar"
	case ContentBench:
		return "Bancada"
	case ContentBloc:
		return "Bloco Parlamentar"
	case ContentOrgan:
		return "Órgão"
	default:
		return ""
	}
}

// Meeting is a committee meeting.
type Meeting struct {
	ID          int64
	CommitteeID int64
	Number      int
	Name        string
	Date        time.Time
}

// HearingType classifies public hearings.
type HearingType struct {
	ID          int64
	Description string
}

// PublicHearing is a public hearing held by the house.
type PublicHearing struct {
	ID     int64
	TypeID int64
	Number int
	Name   string
	Date   time.Time
}
