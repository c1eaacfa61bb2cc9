package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestScanFolders(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	touch(t, filepath.Join(root, "SOROCABA", "b motorista.pdf"))
	touch(t, filepath.Join(root, "SOROCABA", "A MOTORISTA.PDF"))
	touch(t, filepath.Join(root, "SOROCABA", "notes.txt"))
	touch(t, filepath.Join(root, "SOROCABA", ".hidden.pdf"))
	touch(t, filepath.Join(root, "SOROCABA", "nested", "deep.pdf"))
	touch(t, filepath.Join(root, "ITU", "JOSE (2).pdf"))

	docs, stats, err := ScanFolders(root, []string{"SOROCABA", "ITU", "OUTRAS ORI-DES"}, true, nil)
	require.NoError(t, err)

	require.Len(t, docs, 3)
	assert.Equal(t, Document{Name: "A MOTORISTA", Folder: "SOROCABA", Path: filepath.Join(root, "SOROCABA", "A MOTORISTA.PDF")}, docs[0])
	assert.Equal(t, "b motorista", docs[1].Name)
	assert.Equal(t, "JOSE (2)", docs[2].Name)
	assert.Equal(t, "ITU", docs[2].Folder)

	assert.EqualValues(t, 3, stats.Folders)
	assert.EqualValues(t, 1, stats.MissingFolders)
	assert.EqualValues(t, 3, stats.Matched)
}

func TestScanFolders_RequiresRoot(t *testing.T) {
	t.Parallel()
	_, _, err := ScanFolders(" ", []string{"ITU"}, true, nil)
	assert.Error(t, err)
}

func TestFindRoster(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	got, err := FindRoster(dir, "escala", "ESCALA MOTORISTAS 2025.xlsx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ESCALA MOTORISTAS 2025.xlsx"), got)

	touch(t, filepath.Join(dir, "escala-notes.txt"))
	touch(t, filepath.Join(dir, "Escala Outubro.XLSX"))
	got, err = FindRoster(dir, "escala", "ESCALA MOTORISTAS 2025.xlsx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Escala Outubro.XLSX"), got)
}

func TestRemoveOldOutputs(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "PLANILHA MDFS 14-10-2026.csv"))
	touch(t, filepath.Join(dir, "PLANILHA MDFS 14-10-2026.xlsx"))
	touch(t, filepath.Join(dir, "BASE.csv"))
	touch(t, filepath.Join(dir, "CSV", "PLANILHA MDFS 13-10-2026.csv"))

	removed, failed := RemoveOldOutputs(dir, nil)
	assert.Equal(t, 2, removed)
	assert.Zero(t, failed)

	assert.FileExists(t, filepath.Join(dir, "BASE.csv"))
	assert.FileExists(t, filepath.Join(dir, "CSV", "PLANILHA MDFS 13-10-2026.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "PLANILHA MDFS 14-10-2026.csv"))
}

func TestTrimDocumentExt(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "JOSE", TrimDocumentExt("JOSE.pdf"))
	assert.Equal(t, "JOSE", TrimDocumentExt("JOSE.PDF"))
	assert.Equal(t, "JOSE.txt", TrimDocumentExt("JOSE.txt"))
}
