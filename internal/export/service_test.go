package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

var columns = []string{"DATA", "MOTORISTA", "NOME COMPLETO"}

func TestAlign_HealsMissingColumns(t *testing.T) {
	t.Parallel()
	got := Align(columns, []map[string]string{
		{"DATA": "15/10/2026", "MOTORISTA": "JOSE", "EXTRA": "x"},
		{},
	})
	assert.Equal(t, [][]string{
		{"15/10/2026", "JOSE", ""},
		{"", "", ""},
	}, got)
}

func TestBuildPaths(t *testing.T) {
	t.Parallel()
	p := BuildPaths("/base", "15-10-2026")
	assert.Equal(t, filepath.Join("/base", "PLANILHA MDFS 15-10-2026.csv"), p.CSV)
	assert.Equal(t, filepath.Join("/base", "PLANILHA MDFS 15-10-2026.xlsx"), p.XLSX)
	assert.Equal(t, filepath.Join("/base", "CSV", "PLANILHA MDFS 15-10-2026.csv"), p.CSVHistory)
	assert.Equal(t, filepath.Join("/base", "EXCEL", "PLANILHA MDFS 15-10-2026.xlsx"), p.XLSXHistory)
}

func TestExport_WritesAllTargets(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	svc, err := NewService("latin-1", true, nil)
	require.NoError(t, err)

	rows := [][]string{{"15/10/2026", "JOSÉ", "JOSÉ DA CONCEIÇÃO"}}
	paths := BuildPaths(dir, "15-10-2026")
	res := svc.Export(context.Background(), columns, rows, paths)
	require.True(t, res.OK(), "failures: %v", res.Failed)
	assert.Len(t, res.Written, 4)

	raw, err := os.ReadFile(paths.CSV)
	require.NoError(t, err)
	want, err := charmap.ISO8859_1.NewEncoder().String("DATA,MOTORISTA,NOME COMPLETO\n15/10/2026,JOSÉ,JOSÉ DA CONCEIÇÃO\n")
	require.NoError(t, err)
	assert.Equal(t, []byte(want), raw)

	hist, err := os.ReadFile(paths.CSVHistory)
	require.NoError(t, err)
	assert.Equal(t, raw, hist)

	for _, p := range []string{paths.XLSX, paths.XLSXHistory} {
		f, err := excelize.OpenFile(p)
		require.NoError(t, err)
		got, err := f.GetRows("Dados")
		require.NoError(t, err)
		assert.Equal(t, [][]string{columns, rows[0]}, got)
		require.NoError(t, f.Close())
	}
}

func TestExport_UnencodableCharactersReplaced(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	svc, err := NewService("latin-1", false, nil)
	require.NoError(t, err)

	p := filepath.Join(dir, "out.csv")
	require.NoError(t, svc.WriteCSV(p, []string{"A"}, [][]string{{"Ω"}}))
	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "A\n\x1a\n", string(raw))
}

func TestExport_FailureIsNotFatal(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "CSV")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))

	svc, err := NewService("utf-8", true, nil)
	require.NoError(t, err)
	paths := BuildPaths(dir, "15-10-2026")
	res := svc.Export(context.Background(), columns, nil, paths)

	assert.False(t, res.OK())
	assert.Contains(t, res.Failed, paths.CSVHistory)
	assert.Len(t, res.Written, 3)
	assert.FileExists(t, paths.CSV)
	assert.FileExists(t, paths.XLSXHistory)
}

func TestNewService_RejectsUnknownEncoding(t *testing.T) {
	t.Parallel()
	_, err := NewService("ebcdic", false, nil)
	assert.Error(t, err)
}
