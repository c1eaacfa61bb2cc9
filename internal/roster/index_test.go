package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var header = []string{"Motorista", "Nome", "Nome Completo", "Escala", "Frota", "GPID", "CPF"}

func sheet(ordinal int, rows ...[]string) SheetSource {
	all := append([][]string{header}, rows...)
	return SheetSource{Ordinal: ordinal, Title: "S", Rows: NewSliceRows(all)}
}

func TestBuild_FirstOccurrenceWins(t *testing.T) {
	t.Parallel()

	idx, stats, err := Build([]SheetSource{
		sheet(1,
			[]string{"José (TURNO A)", "", "JOSE DA SILVA", "06:00-14:00", "F10", "111", "000.000.000-01"},
			[]string{"JOSE", "", "JOSE OUTRO", "14:00-22:00", "F99", "222", "000.000.000-02"},
		),
		sheet(2,
			[]string{"jose", "", "TERCEIRO", "", "F77", "333", ""},
		),
	}, Options{})
	require.NoError(t, err)

	require.Equal(t, 1, idx.Len())
	e := idx.Entries()[0]
	assert.Equal(t, "José", e.ShortName)
	assert.Equal(t, "JOSE DA SILVA", e.FullName)
	assert.Equal(t, "06:00-14:00", e.DutyWindow)
	assert.Equal(t, "F10", e.Fleet)
	assert.Equal(t, "111", e.EmployeeID)
	assert.Equal(t, 1, e.Sheet)
	assert.Equal(t, 2, stats.Duplicates)

	got, ok := idx.Lookup("JOSE")
	require.True(t, ok)
	assert.Same(t, e, got)
}

func TestBuild_FallsBackToNameColumn(t *testing.T) {
	t.Parallel()

	idx, _, err := Build([]SheetSource{
		sheet(1, []string{"", "Carlos Souza (VAN)", "", "", "", "", ""}),
	}, Options{})
	require.NoError(t, err)

	require.Equal(t, 1, idx.Len())
	e := idx.Entries()[0]
	assert.Equal(t, "Carlos Souza", e.ShortName)
	// full name falls back to the raw NOME column
	assert.Equal(t, "Carlos Souza (VAN)", e.FullName)
	assert.Empty(t, idx.Aliases(), "alias equal to the canonical name is not registered")
}

func TestBuild_Aliases(t *testing.T) {
	t.Parallel()

	idx, _, err := Build([]SheetSource{
		sheet(1,
			[]string{"TONHO", "Antônio Carlos 2", "", "", "", "", ""},
			[]string{"BETO", "antonio carlos", "", "", "", "", ""},
			[]string{"MARCOS 2", "Marcos", "", "", "", "", ""},
		),
		sheet(2,
			[]string{"ZE", "José Ribamar", "", "", "", "", ""},
		),
	}, Options{})
	require.NoError(t, err)

	assert.Equal(t, []Alias{
		{Key: "ANTONIO CARLOS", Canonical: "TONHO", Sheet: 1},
		{Key: "JOSE RIBAMAR", Canonical: "ZE", Sheet: 2},
	}, idx.Aliases())
}

func TestBuild_SkipsEmptyNames(t *testing.T) {
	t.Parallel()

	idx, stats, err := Build([]SheetSource{
		sheet(1,
			[]string{"(FOLGA)", "", "", "", "", "", ""},
			[]string{"", "", "", "08:00", "F1", "", ""},
		),
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
	assert.Equal(t, 2, stats.Skipped)
}

func TestBuild_StopsAfterBlankRun(t *testing.T) {
	t.Parallel()

	rows := [][]string{{"ANA"}}
	for i := 0; i < 3; i++ {
		rows = append(rows, []string{"", "  "})
	}
	rows = append(rows, []string{"BIA"})
	for i := 0; i < 5; i++ {
		rows = append(rows, []string{})
	}
	rows = append(rows, []string{"CAIO"})

	idx, stats, err := Build([]SheetSource{sheet(1, rows...)}, Options{StopEmptyRows: 5})
	require.NoError(t, err)

	var got []string
	for _, e := range idx.Entries() {
		got = append(got, e.ShortName)
	}
	assert.Equal(t, []string{"ANA", "BIA"}, got)
	assert.Equal(t, 2, stats.RowsPerSheet[1])
}

func TestBuild_TolerantHeaders(t *testing.T) {
	t.Parallel()

	src := SheetSource{Ordinal: 1, Rows: NewSliceRows([][]string{
		{"  motorista ", "FRÓTA", "gpid"},
		{"LUIZ", "F5", "9"},
	})}
	idx, _, err := Build([]SheetSource{src}, Options{})
	require.NoError(t, err)

	e := idx.Entries()[0]
	assert.Equal(t, "F5", e.Fleet)
	assert.Equal(t, "9", e.EmployeeID)
	assert.Equal(t, "", e.NationalID)
}

func TestBuild_EmptySheet(t *testing.T) {
	t.Parallel()

	idx, _, err := Build([]SheetSource{{Ordinal: 1, Rows: NewSliceRows(nil)}}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
	assert.Equal(t, 0, Empty().Len())
}
