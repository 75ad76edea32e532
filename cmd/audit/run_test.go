package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/sapl-backend/internal/export"
	"github.com/heartmarshall/sapl-backend/internal/service/consistency"
)

func TestParseChecks(t *testing.T) {
	t.Parallel()

	got, err := parseChecks([]string{"materias-protocolo-inexistente", "protocolos-duplicados"})
	require.NoError(t, err)
	assert.Equal(t, []consistency.Check{consistency.CheckOrphanMatters, consistency.CheckDuplicateProtocols}, got)

	got, err = parseChecks(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseChecks([]string{"protocolos"})
	assert.ErrorContains(t, err, `unknown check "protocolos"`)
}

func TestRender(t *testing.T) {
	t.Parallel()

	records := []export.Record{{Check: consistency.CheckOrphanMatters, MatterID: 3, Year: 2022, Number: 8}}

	var jsonl bytes.Buffer
	require.NoError(t, render(&jsonl, "jsonl", records))
	assert.True(t, strings.HasPrefix(jsonl.String(), `{"check":"materias-protocolo-inexistente"`))

	var table bytes.Buffer
	require.NoError(t, render(&table, "table", records))
	assert.True(t, strings.HasPrefix(table.String(), "CHECK"))
}

func TestChecksCommand(t *testing.T) {
	var out bytes.Buffer
	checksCmd.SetOut(&out)
	checksCmd.Run(checksCmd, nil)

	assert.Equal(t, "protocolos-duplicados\nprotocolos-com-materias\nmaterias-protocolo-inexistente\n", out.String())
}
