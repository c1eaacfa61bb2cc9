package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/manifest-reconciler/internal/common"
)

const baseHeader = "DATA,DT,STATUS (P2),MOTORISTA,HORA ESCALA (P2),MOTIVO ATRASO (P2),ORIGEM (ESCALA),DESTINO (ESCALA),EMITO POR (P2),RESPONSAVEL P2\n"

func writeBaseDir(t *testing.T, withRoster bool) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BASE.csv"), []byte(baseHeader), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "PLANILHA MDFS 01-01-2026.csv"), []byte("old"), 0o644))

	for _, p := range []string{
		filepath.Join("MDFs geradas", "SOROCABA", "JOAO PEREIRA (CAMINHAO 12).pdf"),
		filepath.Join("MDFs geradas", "ITU", "SEM CADASTRO.pdf"),
	} {
		full := filepath.Join(dir, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("%PDF-1.4"), 0o644))
	}

	if withRoster {
		f := excelize.NewFile()
		defer f.Close()
		require.NoError(t, f.SetSheetName("Sheet1", "HOJE"))
		require.NoError(t, f.SetSheetRow("HOJE", "A1", &[]any{"MOTORISTA", "ESCALA"}))
		require.NoError(t, f.SetSheetRow("HOJE", "A2", &[]any{"JOAO PEREIRA", "06:00-14:00"}))
		require.NoError(t, f.SaveAs(filepath.Join(dir, "Escala Outubro.xlsx")))
	}
	return dir
}

func testConfig(dir string) *common.Config {
	cfg := common.DefaultConfig()
	cfg.Paths.BaseDir = dir
	return cfg
}

func fixedClock() time.Time {
	return time.Date(2026, 10, 15, 22, 30, 0, 0, time.UTC)
}

func TestBatch_EndToEnd(t *testing.T) {
	t.Parallel()
	dir := writeBaseDir(t, true)
	text := stubText{pages: map[string][]string{"JOAO PEREIRA (CAMINHAO 12).pdf": {manifestPage}}}
	rec := &recorder{}

	sum, err := NewBatch(testConfig(dir), text, rec, nil).WithClock(fixedClock).Run(context.Background(), " maria ")
	require.NoError(t, err)

	assert.Equal(t, "MARIA", sum.Submitter)
	assert.Equal(t, "16/10/2026", sum.ReportDate)
	assert.Equal(t, filepath.Join(dir, "Escala Outubro.xlsx"), sum.RosterPath)
	assert.NoError(t, sum.RosterErr)
	assert.Equal(t, "utf-8", sum.SchemaEncoding)
	assert.Equal(t, 1, sum.RemovedOld)
	assert.EqualValues(t, 1, sum.Scan.MissingFolders)
	assert.Equal(t, 1, sum.Report.Stats.Matched)
	assert.Equal(t, 1, sum.Report.Stats.Unresolved)
	assert.True(t, sum.Export.OK())
	assert.Len(t, sum.Export.Written, 4)
	assert.NotEmpty(t, rec.steps)

	raw, err := os.ReadFile(filepath.Join(dir, "PLANILHA MDFS 16-10-2026.csv"))
	require.NoError(t, err)
	assert.Equal(t, baseHeader+
		"16/10/2026,4455667,FATURADO,JOAO PEREIRA,,VETADO ANTECIPACAO DE MDF,SOROCABA,DHL,MARIA,MARIA\n", string(raw))
	assert.FileExists(t, filepath.Join(dir, "EXCEL", "PLANILHA MDFS 16-10-2026.xlsx"))
	assert.NoFileExists(t, filepath.Join(dir, "PLANILHA MDFS 01-01-2026.csv"))
}

func TestBatch_MissingRosterEndsWithNoRecords(t *testing.T) {
	t.Parallel()
	dir := writeBaseDir(t, false)

	sum, err := NewBatch(testConfig(dir), stubText{}, nil, nil).WithClock(fixedClock).Run(context.Background(), "MARIA")
	assert.ErrorIs(t, err, ErrNoRecords)
	assert.Error(t, sum.RosterErr)
	assert.Equal(t, filepath.Join(dir, "ESCALA MOTORISTAS 2025.xlsx"), sum.RosterPath)
	assert.Equal(t, 2, sum.Report.Stats.Unresolved)
	assert.NoFileExists(t, filepath.Join(dir, "PLANILHA MDFS 16-10-2026.csv"))
}

func TestBatch_SetupFailures(t *testing.T) {
	t.Parallel()

	dir := writeBaseDir(t, true)
	_, err := NewBatch(testConfig(dir), stubText{}, nil, nil).Run(context.Background(), "MARIA 2")
	assert.ErrorIs(t, err, common.ErrValidation)

	require.NoError(t, os.Remove(filepath.Join(dir, "BASE.csv")))
	_, err = NewBatch(testConfig(dir), stubText{}, nil, nil).Run(context.Background(), "MARIA")
	assert.ErrorIs(t, err, common.ErrSetup)
}
