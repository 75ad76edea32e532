package filter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

func TestLatestFromForm(t *testing.T) {
	t.Parallel()

	spec := Spec{
		{Name: "tramitacao__unidade_tramitacao_destino", Kind: KindID},
		{Name: "tramitacao__status", Kind: KindID},
	}
	f := Parse(url.Values{"tramitacao__status": {"5"}}, spec)

	got := LatestFromForm(f, "tramitacao__unidade_tramitacao_destino", "tramitacao__status")
	assert.Equal(t, []domain.LatestTramitacaoFilter{{Field: domain.LatestByStatus, ID: 5}}, got)
}
