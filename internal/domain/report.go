package domain

// LabelKind names a lookup table whose rows are shown by label in reports.
type LabelKind string

const (
	LabelMatterType  LabelKind = "matter_type"
	LabelStatus      LabelKind = "tramitacao_status"
	LabelUnit        LabelKind = "tramitacao_unit"
	LabelCommittee   LabelKind = "committee"
	LabelHearingType LabelKind = "hearing_type"
	LabelAuthor      LabelKind = "author"
)

// Choice is one option of a filter select list.
type Choice struct {
	ID    int64
	Label string
}

// AttendanceRow is one parliamentarian's line in the attendance report.
type AttendanceRow struct {
	Parliamentarian   Parliamentarian
	SessionCount      int
	SessionPercentage float64
	AgendaCount       int
	AgendaPercentage  float64
}

// AttendanceReport lists presence counts for parliamentarians active in Period.
type AttendanceReport struct {
	Period              DateRange
	TotalSessions       int
	TotalAgendaSessions int
	Rows                []AttendanceRow
}

// TypeCount is the number of records of one type.
type TypeCount struct {
	TypeID int64
	Label  string
	Count  int
}

// AuthorGroup is one author's per-type matter counts and their total.
type AuthorGroup struct {
	AuthorID int64
	Author   string
	Matters  []TypeCount
	Total    int
}

// MattersByAuthorYearReport groups a year's matters by primary authors
// and by co-authors.
type MattersByAuthorYearReport struct {
	Year       int
	TypeCounts []TypeCount
	Primary    []AuthorGroup
	CoAuthors  []AuthorGroup
}

// MatterRow is a matter with its type label resolved.
type MatterRow struct {
	Matter
	TypeLabel string
}

// MattersReport is a filtered list of matters with per-type totals.
type MattersReport struct {
	Matters    []MatterRow
	TypeCounts []TypeCount
}

// TramitacaoRow is a tramitação line with every referenced label resolved.
type TramitacaoRow struct {
	TramitacaoLine
	MatterTypeLabel  string
	StatusLabel      string
	OriginLabel      string
	DestinationLabel string
}

// TramitacaoReport lists tramitação records matching a history or deadline query.
type TramitacaoReport struct {
	Rows       []TramitacaoRow
	TypeCounts []TypeCount
}

// MeetingRow is a committee meeting with its committee label.
type MeetingRow struct {
	Meeting
	CommitteeLabel string
}

// HearingRow is a public hearing with its type label.
type HearingRow struct {
	PublicHearing
	TypeLabel string
}

// ---------------------------------------------------------------------------
// Consistency findings
// ---------------------------------------------------------------------------

// DuplicateProtocol reports a (number, year) pair registered more than once.
// Protocol is the first row seen in primary-key order.
type DuplicateProtocol struct {
	Protocol Protocol
	Count    int
}

// OverLinkedProtocol reports a protocol referenced by more than one matter.
type OverLinkedProtocol struct {
	Protocol    Protocol
	MatterCount int
}

// OrphanMatter reports a matter whose declared protocol does not exist.
type OrphanMatter struct {
	Matter         Matter
	Year           int
	ProtocolNumber int
}

// AuditSummary holds the size of each consistency listing.
type AuditSummary struct {
	DuplicateProtocols  int
	OverLinkedProtocols int
	OrphanMatters       int
}

// Total returns the number of findings across all listings.
func (s AuditSummary) Total() int {
	return s.DuplicateProtocols + s.OverLinkedProtocols + s.OrphanMatters
}
