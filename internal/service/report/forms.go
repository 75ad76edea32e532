package report

import (
	"github.com/heartmarshall/sapl-backend/internal/domain"
	"github.com/heartmarshall/sapl-backend/internal/filter"
)

// Query parameter names shared by the report forms.
const (
	FieldSessionStart      = "data_inicio"
	FieldPresentation      = "data_apresentacao"
	FieldTramitacaoDate    = "tramitacao__data_tramitacao"
	FieldTramitacaoDueDate = "tramitacao__data_fim_prazo"
	FieldDate              = "data"
	FieldYear              = "ano"
	FieldType              = "tipo"
	FieldStatus            = "tramitacao__status"
	FieldDestination       = "tramitacao__unidade_tramitacao_destino"
	FieldOrigin            = "tramitacao__unidade_tramitacao_local"
	FieldAuthor            = "autoria__autor"
	FieldCommittee         = "comissao"
)

// Form specs, one per report.
var (
	MinutesSpec = filter.Spec{
		{Name: FieldSessionStart, Kind: filter.KindDateRange, Required: true},
	}
	AttendanceSpec = filter.Spec{
		{Name: FieldSessionStart, Kind: filter.KindDateRange, Required: true},
	}
	TramitacaoHistorySpec = filter.Spec{
		{Name: FieldTramitacaoDate, Kind: filter.KindDateRange, Required: true},
		{Name: FieldType, Kind: filter.KindID},
		{Name: FieldStatus, Kind: filter.KindID},
		{Name: FieldOrigin, Kind: filter.KindID},
	}
	TramitacaoDeadlineSpec = filter.Spec{
		{Name: FieldTramitacaoDueDate, Kind: filter.KindDateRange, Required: true},
		{Name: FieldType, Kind: filter.KindID},
		{Name: FieldStatus, Kind: filter.KindID},
		{Name: FieldOrigin, Kind: filter.KindID},
	}
	MeetingsSpec = filter.Spec{
		{Name: FieldDate, Kind: filter.KindDateRange, Required: true},
		{Name: FieldCommittee, Kind: filter.KindID},
	}
	HearingsSpec = filter.Spec{
		{Name: FieldDate, Kind: filter.KindDateRange, Required: true},
		{Name: FieldType, Kind: filter.KindID},
	}
	MattersInTramitacaoSpec = filter.Spec{
		{Name: FieldYear, Kind: filter.KindYear, Required: true},
		{Name: FieldType, Kind: filter.KindID},
		{Name: FieldStatus, Kind: filter.KindID},
		{Name: FieldDestination, Kind: filter.KindID},
	}
	MattersByAuthorYearSpec = filter.Spec{
		{Name: FieldYear, Kind: filter.KindYear, Required: true},
	}
	MattersByAuthorSpec = filter.Spec{
		{Name: FieldPresentation, Kind: filter.KindDateRange, Required: true},
		{Name: FieldType, Kind: filter.KindID},
		{Name: FieldAuthor, Kind: filter.KindID},
	}
)

// TramitacaoFilterFrom builds the history (TramitacaoRecorded) or deadline
// (TramitacaoDeadline) filter from a ready form.
func TramitacaoFilterFrom(f filter.Form, field domain.TramitacaoDateField) domain.TramitacaoFilter {
	name := FieldTramitacaoDate
	if field == domain.TramitacaoDeadline {
		name = FieldTramitacaoDueDate
	}
	r, _ := f.Range(name)
	return domain.TramitacaoFilter{
		DateField:    field,
		Range:        r,
		MatterTypeID: f.ID(FieldType),
		StatusID:     f.ID(FieldStatus),
		OriginUnitID: f.ID(FieldOrigin),
	}
}

// MattersInTramitacaoFilterFrom builds the matters-in-tramitação filter from
// a ready form.
func MattersInTramitacaoFilterFrom(f filter.Form) domain.MatterFilter {
	return domain.MatterFilter{
		Year:         f.Year(FieldYear),
		TypeID:       f.ID(FieldType),
		InTramitacao: true,
		Latest:       filter.LatestFromForm(f, FieldDestination, FieldStatus),
	}
}

// MattersByAuthorFilterFrom builds the matters-by-author filter from a ready form.
func MattersByAuthorFilterFrom(f filter.Form) domain.MatterFilter {
	return domain.MatterFilter{
		Presented: f.RangePtr(FieldPresentation),
		TypeID:    f.ID(FieldType),
		AuthorID:  f.ID(FieldAuthor),
	}
}

// MeetingFilterFrom builds the committee meeting filter from a ready form.
func MeetingFilterFrom(f filter.Form) domain.MeetingFilter {
	r, _ := f.Range(FieldDate)
	return domain.MeetingFilter{Range: r, CommitteeID: f.ID(FieldCommittee)}
}

// HearingFilterFrom builds the public hearing filter from a ready form.
func HearingFilterFrom(f filter.Form) domain.HearingFilter {
	r, _ := f.Range(FieldDate)
	return domain.HearingFilter{Range: r, TypeID: f.ID(FieldType)}
}
