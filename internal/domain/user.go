package domain

import (
	"time"
)

// User is an account of the legislative system.
type User struct {
	ID          int64
	Username    string
	Email       string
	FirstName   string
	LastName    string
	IsActive    bool
	IsSuperuser bool
	DateJoined  time.Time
}

// LegislativeHouse describes the single house served by the installation.
type LegislativeHouse struct {
	ID          int64
	Code        string
	Name        string
	Acronym     string
	Address     string
	ZipCode     string
	City        string
	State       string
	Phone       string
	Fax         string
	LogoPath    *string
	WebAddress  string
	Email       string
	GeneralInfo string
}

// DocumentVisibility controls public access to administrative documents.
type DocumentVisibility string

const (
	DocumentsOstensive  DocumentVisibility = "O"
	DocumentsRestricted DocumentVisibility = "R"
)

// NumberingSequence selects how matter numbers restart.
type NumberingSequence string

const (
	NumberingYearly NumberingSequence = "A"
	NumberingUnique NumberingSequence = "U"
)

// IncorporationRule governs whether received propositions must be incorporated.
type IncorporationRule string

const (
	IncorporationRequired    IncorporationRule = "O"
	IncorporationOptional    IncorporationRule = "C"
	IncorporationNotRequired IncorporationRule = "N"
)

// AppConfig holds installation-wide settings. At most one row is meaningful.
type AppConfig struct {
	ID                         int64
	DocumentsVisibility        DocumentVisibility
	Numbering                  NumberingSequence
	PanelOpen                  bool
	ArticulatedTextProposition bool
	ArticulatedTextMatter      bool
	ArticulatedTextNorm        bool
	PropositionIncorporation   IncorporationRule
	SpeechTimer                *time.Duration
	AsideTimer                 *time.Duration
	OrderTimer                 *time.Duration
}

// DefaultAppConfig returns the settings used when no row exists yet.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DocumentsVisibility:      DocumentsOstensive,
		Numbering:                NumberingYearly,
		PropositionIncorporation: IncorporationRequired,
	}
}
