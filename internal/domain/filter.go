package domain

import "time"

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls on a day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	day := dateOf(t)
	return !day.Before(dateOf(r.From)) && !day.After(dateOf(r.To))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LatestField selects which attribute of a matter's latest tramitação
// record is compared by a LatestTramitacaoFilter.
type LatestField int

const (
	LatestByDestination LatestField = iota + 1
	LatestByStatus
)

// LatestTramitacaoFilter keeps matters whose most recent tramitação record
// (highest id) has the given destination unit or status.
type LatestTramitacaoFilter struct {
	Field LatestField
	ID    int64
}

// MatterFilter contains filtering parameters for matter listings.
// Nil fields are not applied.
type MatterFilter struct {
	Year         *int
	TypeID       *int64
	AuthorID     *int64
	Presented    *DateRange
	InTramitacao bool
	Latest       []LatestTramitacaoFilter
}

// TramitacaoDateField selects which tramitação date a TramitacaoFilter ranges over.
type TramitacaoDateField int

const (
	TramitacaoRecorded TramitacaoDateField = iota + 1
	TramitacaoDeadline
)

// TramitacaoFilter contains filtering parameters for tramitação listings.
type TramitacaoFilter struct {
	DateField    TramitacaoDateField
	Range        DateRange
	MatterTypeID *int64
	StatusID     *int64
	OriginUnitID *int64
}

// MeetingFilter contains filtering parameters for committee meetings.
type MeetingFilter struct {
	Range       DateRange
	CommitteeID *int64
}

// HearingFilter contains filtering parameters for public hearings.
type HearingFilter struct {
	Range  DateRange
	TypeID *int64
}
