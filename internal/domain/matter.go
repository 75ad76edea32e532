package domain

import "time"

// Matter is a legislative proposal tracked through its lifecycle.
type Matter struct {
	ID               int64
	TypeID           int64
	Number           int
	Year             int
	PresentationDate time.Time
	ProtocolNumber   *int
	InTramitacao     bool
	Summary          string
}

// MatterType classifies matters (bill, resolution, motion...).
type MatterType struct {
	ID          int64
	Acronym     string
	Description string
}

// Tramitacao is one status/location transition of a matter.
type Tramitacao struct {
	ID                int64
	MatterID          int64
	OriginUnitID      *int64
	DestinationUnitID int64
	StatusID          int64
	RecordedDate      time.Time
	DeadlineDate      *time.Time
	Text              string
}

// TramitacaoStatus is a named tramitação status.
type TramitacaoStatus struct {
	ID          int64
	Acronym     string
	Description string
}

// TramitacaoUnit is a place a matter can be sent to.
type TramitacaoUnit struct {
	ID   int64
	Name string
}

// TramitacaoLine is a tramitação record joined with the identifying
// fields of its matter, as listed by the history and deadline reports.
type TramitacaoLine struct {
	Tramitacao
	MatterTypeID int64
	MatterNumber int
	MatterYear   int
}

// Protocol is a year-scoped registration number for incoming documents.
// (Year, Number) is expected to be unique but the store does not enforce it.
type Protocol struct {
	ID        int64
	Year      int
	Number    int
	CreatedAt time.Time
}

// ProtocolKey identifies a protocol by number and year.
type ProtocolKey struct {
	Number int
	Year   int
}

// Key returns the composite identity of the protocol.
func (p Protocol) Key() ProtocolKey {
	return ProtocolKey{Number: p.Number, Year: p.Year}
}
