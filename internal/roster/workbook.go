package roster

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/manifest-reconciler/internal/common"
)

// Workbook is an opened roster file.
type Workbook struct {
	file   *excelize.File
	path   string
	open   []*excelize.Rows
	logger *slog.Logger
}

// OpenWorkbook opens the roster XLSX at path.
func OpenWorkbook(path string, logger *slog.Logger) (*Workbook, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("roster workbook %s: %w", path, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open roster workbook: %w", err)
	}
	return &Workbook{file: f, path: path, logger: logger}, nil
}

// Sheets returns up to limit visible sheets in workbook order, numbered from 1
// by visible position.
func (w *Workbook) Sheets(limit int) ([]SheetSource, error) {
	var out []SheetSource
	ordinal := 0
	for _, name := range w.file.GetSheetList() {
		if limit > 0 && len(out) >= limit {
			break
		}
		visible, err := w.file.GetSheetVisible(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %q visibility: %w", name, err)
		}
		if !visible {
			w.logger.Debug("roster.sheet.hidden", "sheet", name)
			continue
		}
		rows, err := w.file.Rows(name)
		if err != nil {
			return nil, fmt.Errorf("sheet %q rows: %w", name, err)
		}
		w.open = append(w.open, rows)
		ordinal++
		out = append(out, SheetSource{Ordinal: ordinal, Title: name, Rows: excelRows{rows}})
	}
	return out, nil
}

// Close releases the row iterators and the file.
func (w *Workbook) Close() error {
	for _, r := range w.open {
		_ = r.Close()
	}
	w.open = nil
	return w.file.Close()
}

type excelRows struct {
	r *excelize.Rows
}

func (e excelRows) Next() bool { return e.r.Next() }

func (e excelRows) Values() ([]string, error) { return e.r.Columns() }

// Load opens path, indexes its first maxSheets visible sheets and closes it.
func Load(path string, maxSheets int, opts Options) (*Index, BuildStats, error) {
	wb, err := OpenWorkbook(path, opts.Logger)
	if err != nil {
		return nil, BuildStats{}, err
	}
	defer func() {
		if cerr := wb.Close(); cerr != nil && opts.Logger != nil {
			opts.Logger.Warn("roster.close.failed", "path", path, "error", cerr)
		}
	}()

	sheets, err := wb.Sheets(maxSheets)
	if err != nil {
		return nil, BuildStats{}, err
	}
	return Build(sheets, opts)
}
