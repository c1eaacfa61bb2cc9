// Package export writes assembled records to the CSV and XLSX outputs.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/joseph-ayodele/manifest-reconciler/constants"
)

// Paths are the four output files of one run.
type Paths struct {
	CSV         string
	XLSX        string
	CSVHistory  string
	XLSXHistory string
}

// BuildPaths names outputs "<OutputPrefix> DD-MM-YYYY" under baseDir and its
// history directories.
func BuildPaths(baseDir, fileLabel string) Paths {
	stem := constants.OutputPrefix + " " + fileLabel
	csvName := stem + "." + constants.CSVExt
	xlsxName := stem + "." + constants.XLSXExt
	return Paths{
		CSV:         filepath.Join(baseDir, csvName),
		XLSX:        filepath.Join(baseDir, xlsxName),
		CSVHistory:  filepath.Join(baseDir, constants.CSVHistoryDir, csvName),
		XLSXHistory: filepath.Join(baseDir, constants.XLSXHistDir, xlsxName),
	}
}

// Result lists which files were written and which failed.
type Result struct {
	Written []string
	Failed  map[string]error
}

func (r Result) OK() bool { return len(r.Failed) == 0 }

type Service struct {
	encoding encoding.Encoding // nil writes UTF-8
	history  bool
	logger   *slog.Logger
}

// NewService builds an exporter writing CSV in csvEncoding. When history is
// set, each output is also copied into the history directories.
func NewService(csvEncoding string, history bool, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	enc, err := lookupEncoding(csvEncoding)
	if err != nil {
		return nil, err
	}
	return &Service{encoding: enc, history: history, logger: logger}, nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "cp1252", "windows-1252":
		return charmap.Windows1252, nil
	case "", "utf-8", "utf8":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported csv encoding %q", name)
	}
}

// Align turns rows into value slices in column order. Columns a row lacks
// are written empty; keys outside columns are dropped.
func Align(columns []string, rows []map[string]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		vals := make([]string, len(columns))
		for j, c := range columns {
			vals[j] = row[c]
		}
		out[i] = vals
	}
	return out
}

// Export writes the CSV and XLSX outputs. A failed write is logged and
// recorded in the result; the remaining writes still run.
func (s *Service) Export(ctx context.Context, columns []string, rows [][]string, paths Paths) Result {
	start := time.Now()
	res := Result{Failed: map[string]error{}}

	record := func(path string, err error) {
		if err != nil {
			s.logger.Error("export.write.failed", "file", path, "error", err)
			res.Failed[path] = err
			return
		}
		s.logger.Info("export.write.ok", "file", path, "rows", len(rows))
		res.Written = append(res.Written, path)
	}

	csvTargets := []string{paths.CSV}
	xlsxTargets := []string{paths.XLSX}
	if s.history {
		csvTargets = append(csvTargets, paths.CSVHistory)
		xlsxTargets = append(xlsxTargets, paths.XLSXHistory)
	}

	for _, p := range csvTargets {
		if err := ctx.Err(); err != nil {
			record(p, err)
			continue
		}
		record(p, s.WriteCSV(p, columns, rows))
	}

	f, err := BuildWorkbook(columns, rows)
	if err != nil {
		for _, p := range xlsxTargets {
			record(p, err)
		}
	} else {
		defer func() { _ = f.Close() }()
		for _, p := range xlsxTargets {
			if err := ctx.Err(); err != nil {
				record(p, err)
				continue
			}
			record(p, saveWorkbook(f, p))
		}
	}

	s.logger.Info("export.done",
		"written", len(res.Written),
		"failed", len(res.Failed),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res
}

// WriteCSV writes header and rows to path in the configured encoding.
// Characters the encoding cannot represent are replaced.
func (s *Service) WriteCSV(path string, columns []string, rows [][]string) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close csv: %w", cerr)
		}
	}()

	var out io.WriteCloser = nopCloser{file}
	if s.encoding != nil {
		out = transform.NewWriter(file, encoding.ReplaceUnsupported(s.encoding.NewEncoder()))
	}
	w := csv.NewWriter(out)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// BuildWorkbook lays columns and rows out on the output sheet.
func BuildWorkbook(columns []string, rows [][]string) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := constants.XLSXSheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, columns); err != nil {
		_ = f.Close()
		return nil, err
	}
	for i, r := range rows {
		if err := setRow(f, sheet, i+2, r); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, vals []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(vals))
	for i, v := range vals {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("xlsx row %d: %w", row, err)
	}
	return nil
}

func saveWorkbook(f *excelize.File, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	return nil
}
