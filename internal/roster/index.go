// Package roster indexes the drivers listed on the duty-roster workbook so
// that manifests can be matched against them by name.
package roster

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/manifest-reconciler/constants"
	"github.com/joseph-ayodele/manifest-reconciler/internal/names"
)

// DefaultStopEmptyRows is how many consecutive blank rows end a sheet.
const DefaultStopEmptyRows = 50

// Entry is one driver. ShortName is the display form with annotations
// removed; Sheet is the ordinal of the sheet the row came from.
type Entry struct {
	ShortName  string
	FullName   string
	DutyWindow string
	Fleet      string
	EmployeeID string
	NationalID string
	Sheet      int
}

// Key is the normalized short name used for dedup and matching.
func (e *Entry) Key() string {
	return names.Normalize(e.ShortName)
}

// Alias is an alternate normalized name pointing at a canonical entry.
type Alias struct {
	Key       string
	Canonical string // Entry.Key() of the target
	Sheet     int
}

// Index is built once and then only read.
type Index struct {
	entries    []*Entry
	byKey      map[string]int
	aliases    []Alias
	aliasByKey map[string]struct{}
}

// BuildStats summarizes what Build read.
type BuildStats struct {
	RowsPerSheet map[int]int
	Entries      int
	Aliases      int
	Duplicates   int
	Skipped      int
}

type Options struct {
	StopEmptyRows int // 0 -> DefaultStopEmptyRows
	Logger        *slog.Logger
}

// Build reads each sheet's header row and data rows, in order, and indexes
// the drivers. The first row seen for a normalized short name wins, as does
// the first alias.
func Build(sheets []SheetSource, opts Options) (*Index, BuildStats, error) {
	if opts.StopEmptyRows <= 0 {
		opts.StopEmptyRows = DefaultStopEmptyRows
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	idx := &Index{
		byKey:      make(map[string]int),
		aliasByKey: make(map[string]struct{}),
	}
	stats := BuildStats{RowsPerSheet: make(map[int]int)}

	for _, sh := range sheets {
		header, rows, err := readSheet(sh.Rows, opts.StopEmptyRows)
		if err != nil {
			return nil, stats, fmt.Errorf("read sheet %q: %w", sh.Title, err)
		}
		stats.RowsPerSheet[sh.Ordinal] = len(rows)
		logger.Info("roster.sheet.read",
			"sheet", sh.Title,
			"ordinal", sh.Ordinal,
			"label", constants.SheetLabel(sh.Ordinal),
			"rows", len(rows),
		)

		cols := newHeaderMap(header)
		for _, row := range rows {
			idx.add(cols, row, sh.Ordinal, &stats)
		}
	}

	stats.Entries = len(idx.entries)
	stats.Aliases = len(idx.aliases)
	logger.Info("roster.index.built",
		"entries", stats.Entries,
		"aliases", stats.Aliases,
		"duplicates", stats.Duplicates,
		"skipped", stats.Skipped,
	)
	return idx, stats, nil
}

func (idx *Index) add(cols headerMap, row []string, sheet int, stats *BuildStats) {
	raw := cols.get(row, constants.RosterColDriver)
	if raw == "" {
		raw = cols.get(row, constants.RosterColName)
	}
	short := names.StripParenthetical(raw)
	if short == "" {
		stats.Skipped++
		return
	}

	e := &Entry{
		ShortName:  short,
		FullName:   cols.first(row, constants.RosterColFullName, constants.RosterColName),
		DutyWindow: cols.get(row, constants.RosterColDutyWindow),
		Fleet:      cols.get(row, constants.RosterColFleet),
		EmployeeID: cols.get(row, constants.RosterColEmployeeID),
		NationalID: cols.get(row, constants.RosterColNationalID),
		Sheet:      sheet,
	}
	key := e.Key()
	if _, dup := idx.byKey[key]; dup {
		stats.Duplicates++
		return
	}
	idx.byKey[key] = len(idx.entries)
	idx.entries = append(idx.entries, e)

	aliasRaw := names.StripParenthetical(cols.get(row, constants.RosterColName))
	if aliasRaw == "" {
		return
	}
	aliasKey := names.Normalize(names.StripDigits(aliasRaw))
	if aliasKey == "" || aliasKey == names.Normalize(names.StripDigits(short)) {
		return
	}
	if _, taken := idx.aliasByKey[aliasKey]; taken {
		return
	}
	idx.aliasByKey[aliasKey] = struct{}{}
	idx.aliases = append(idx.aliases, Alias{Key: aliasKey, Canonical: key, Sheet: sheet})
}

// Entries returns the canonical entries in first-seen order.
func (idx *Index) Entries() []*Entry {
	return idx.entries
}

// Aliases returns the aliases in first-seen order.
func (idx *Index) Aliases() []Alias {
	return idx.aliases
}

// Lookup returns the entry for a normalized short name.
func (idx *Index) Lookup(key string) (*Entry, bool) {
	i, ok := idx.byKey[key]
	if !ok {
		return nil, false
	}
	return idx.entries[i], true
}

// Len is the number of canonical entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Empty returns an index with no drivers.
func Empty() *Index {
	return &Index{byKey: map[string]int{}, aliasByKey: map[string]struct{}{}}
}

// headerMap maps normalized header text to its column position so that
// roster columns may vary in accents, case and surrounding spaces.
type headerMap map[string]int

func newHeaderMap(header []string) headerMap {
	m := make(headerMap, len(header))
	for i, h := range header {
		k := names.Normalize(h)
		if k == "" {
			continue
		}
		if _, ok := m[k]; !ok {
			m[k] = i
		}
	}
	return m
}

func (m headerMap) get(row []string, desired string) string {
	i, ok := m[names.Normalize(desired)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (m headerMap) first(row []string, desired ...string) string {
	for _, d := range desired {
		if v := m.get(row, d); v != "" {
			return v
		}
	}
	return ""
}
