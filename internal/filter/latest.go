package filter

import "github.com/heartmarshall/sapl-backend/internal/domain"

// LatestFromForm builds latest-record predicates from the destination and
// status fields of f, in that order. Absent fields are skipped.
func LatestFromForm(f Form, destinationField, statusField string) []domain.LatestTramitacaoFilter {
	var preds []domain.LatestTramitacaoFilter
	if id := f.ID(destinationField); id != nil {
		preds = append(preds, domain.LatestTramitacaoFilter{Field: domain.LatestByDestination, ID: *id})
	}
	if id := f.ID(statusField); id != nil {
		preds = append(preds, domain.LatestTramitacaoFilter{Field: domain.LatestByStatus, ID: *id})
	}
	return preds
}
