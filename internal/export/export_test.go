package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/sapl-backend/internal/domain"
	"github.com/heartmarshall/sapl-backend/internal/service/consistency"
)

func sampleReport() consistency.Report {
	return consistency.Report{
		Duplicates: []domain.DuplicateProtocol{{Protocol: domain.Protocol{ID: 1, Year: 2020, Number: 10}, Count: 2}},
		OverLinked: []domain.OverLinkedProtocol{{Protocol: domain.Protocol{ID: 4, Year: 2021, Number: 7}, MatterCount: 3}},
		Orphans:    []domain.OrphanMatter{{Matter: domain.Matter{ID: 9}, Year: 2021, ProtocolNumber: 99}},
	}
}

func TestRecords_Order(t *testing.T) {
	t.Parallel()

	recs := Records(sampleReport())
	require.Len(t, recs, 3)
	assert.Equal(t, consistency.CheckDuplicateProtocols, recs[0].Check)
	assert.Equal(t, 2, recs[0].Count)
	assert.Equal(t, consistency.CheckOverLinkedProtocols, recs[1].Check)
	assert.Equal(t, 3, recs[1].Count)
	assert.Equal(t, Record{Check: consistency.CheckOrphanMatters, MatterID: 9, Year: 2021, Number: 99}, recs[2])
}

func TestWriteJSONL(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteJSONL(&buf, Records(sampleReport())))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, json.Valid([]byte(line)), line)
	}
	assert.JSONEq(t, `{"check":"materias-protocolo-inexistente","matter_id":9,"year":2021,"number":99}`, lines[2])
}

func TestWriteJSONL_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteJSONL(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, Records(sampleReport())))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"CHECK", "PROTOCOL", "MATTER", "YEAR", "NUMBER", "COUNT"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"protocolos-duplicados", "1", "-", "2020", "10", "2"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"materias-protocolo-inexistente", "-", "9", "2021", "99", "-"}, strings.Fields(lines[3]))
}

func TestKey(t *testing.T) {
	t.Parallel()

	at := time.Date(2021, 3, 4, 5, 6, 7, 0, time.FixedZone("BRT", -3*3600))
	assert.Equal(t, "audits/20210304T080607Z.jsonl", Key("audits/", at))
}
