package roster

import "strings"

// RowIterator yields the rows of one sheet, header first.
type RowIterator interface {
	Next() bool
	Values() ([]string, error)
}

// SheetSource is one roster sheet. Ordinal 1 is the current day, 2 the
// previous day.
type SheetSource struct {
	Ordinal int
	Title   string
	Rows    RowIterator
}

// SliceRows iterates over in-memory rows.
type SliceRows struct {
	rows [][]string
	pos  int
}

func NewSliceRows(rows [][]string) *SliceRows {
	return &SliceRows{rows: rows, pos: -1}
}

func (s *SliceRows) Next() bool {
	s.pos++
	return s.pos < len(s.rows)
}

func (s *SliceRows) Values() ([]string, error) {
	return s.rows[s.pos], nil
}

// readSheet returns the header row and the data rows, skipping blank rows and
// stopping after stopEmpty consecutive blank ones.
func readSheet(it RowIterator, stopEmpty int) ([]string, [][]string, error) {
	if it == nil || !it.Next() {
		return nil, nil, nil
	}
	header, err := it.Values()
	if err != nil {
		return nil, nil, err
	}
	trimmed := make([]string, len(header))
	for i, h := range header {
		trimmed[i] = strings.TrimSpace(h)
	}

	var rows [][]string
	blank := 0
	for it.Next() {
		row, err := it.Values()
		if err != nil {
			return trimmed, rows, err
		}
		if isBlank(row) {
			blank++
			if blank >= stopEmpty {
				break
			}
			continue
		}
		blank = 0
		rows = append(rows, row)
	}
	return trimmed, rows, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
