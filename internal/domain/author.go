package domain

// ContentType discriminates the kind of entity an author points at.
type ContentType string

const (
	ContentParliamentarian ContentType = "parlamentar"
	ContentCommittee       ContentType = "comissao"
	ContentFront           ContentType = "frente"
	ContentBench           ContentType = "bancada"
	ContentBloc            ContentType = "bloco"
	ContentOrgan           ContentType = "orgao"
)

// AuthorSubject is the capability every author kind exposes to reports.
type AuthorSubject interface {
	DisplayName() string
	Role() string
}

// Author is anyone credited as proposer of a matter. When ContentType and
// ObjectID are set the author stands for that entity; otherwise it is an
// external author described by Name and Cargo.
type Author struct {
	ID          int64
	TypeID      int64
	ContentType *ContentType
	ObjectID    *int64
	Name        string
	Cargo       string
	UserID      *int64
}

// DisplayName implements AuthorSubject for external authors.
func (a Author) DisplayName() string { return a.Name }

// Role implements AuthorSubject for external authors.
func (a Author) Role() string { return a.Cargo }

// Linked reports whether the author points at another entity.
func (a Author) Linked() bool {
	return a.ContentType != nil && a.ObjectID != nil
}

// AuthorType groups authors. A nil ContentType marks an external author type.
type AuthorType struct {
	ID          int64
	Description string
	ContentType *ContentType
}

// ResolvedAuthor pairs an author row with the subject it resolves to.
type ResolvedAuthor struct {
	Author  Author
	Subject AuthorSubject
}

// Authorship credits an author on a matter.
type Authorship struct {
	ID            int64
	AuthorID      int64
	MatterID      int64
	PrimaryAuthor bool
}

// AuthorshipCount is the number of matters of one type credited to one author.
// Rows are delivered ordered by author then type.
type AuthorshipCount struct {
	AuthorID int64
	TypeID   int64
	Count    int
}
