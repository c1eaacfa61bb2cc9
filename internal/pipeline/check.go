package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/joseph-ayodele/manifest-reconciler/internal/common"
	"github.com/joseph-ayodele/manifest-reconciler/internal/ingest"
	"github.com/joseph-ayodele/manifest-reconciler/internal/record"
)

// CheckLevel grades one environment check.
type CheckLevel int

const (
	CheckOK CheckLevel = iota
	CheckWarn
	CheckFail
)

// CheckItem is the result of one environment check.
type CheckItem struct {
	Group  string
	Name   string
	Level  CheckLevel
	Detail string
}

// CheckReport lists every environment check in the order they ran.
type CheckReport struct {
	Items []CheckItem
}

// OK reports whether no check failed. Warnings do not fail the report.
func (r CheckReport) OK() bool {
	for _, it := range r.Items {
		if it.Level == CheckFail {
			return false
		}
	}
	return true
}

func (r *CheckReport) add(group, name string, level CheckLevel, detail string) {
	r.Items = append(r.Items, CheckItem{Group: group, Name: name, Level: level, Detail: detail})
}

// Checker verifies that a base directory is ready for a batch.
type Checker struct {
	cfg      *common.Config
	lookPath func(string) (string, error)
	logger   *slog.Logger
}

func NewChecker(cfg *common.Config, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{cfg: cfg, lookPath: exec.LookPath, logger: logger}
}

// WithLookPath replaces the executable lookup.
func (c *Checker) WithLookPath(fn func(string) (string, error)) *Checker {
	c.lookPath = fn
	return c
}

// Run checks the text extraction tool, the target schema, the roster
// workbook and the document folders. A missing roster is a warning since the
// batch still runs without one.
func (c *Checker) Run() CheckReport {
	var rep CheckReport
	paths := c.cfg.Paths

	if p, err := c.lookPath(c.cfg.PDF.Pdftotext); err != nil {
		rep.add("Tools", c.cfg.PDF.Pdftotext, CheckFail, "not found on PATH")
	} else {
		rep.add("Tools", c.cfg.PDF.Pdftotext, CheckOK, p)
	}

	schemaPath := resolvePath(paths.BaseDir, paths.SchemaFile)
	if s, enc, err := record.ReadSchemaFile(schemaPath); err != nil {
		rep.add("Files", paths.SchemaFile, CheckFail, err.Error())
	} else {
		rep.add("Files", paths.SchemaFile, CheckOK, fmt.Sprintf("%d columns, %s", s.Len(), enc))
	}

	rosterPath, err := ingest.FindRoster(paths.BaseDir, paths.RosterPrefix, paths.RosterFallback)
	switch {
	case err != nil:
		rep.add("Files", "roster", CheckFail, err.Error())
	case !isFile(rosterPath):
		rep.add("Files", "roster", CheckWarn, fmt.Sprintf("no %s*.xlsx workbook found", paths.RosterPrefix))
	default:
		rep.add("Files", "roster", CheckOK, filepath.Base(rosterPath))
	}

	docsDir := resolvePath(paths.BaseDir, paths.DocumentsDir)
	rep.add("Folders", paths.DocumentsDir, dirLevel(docsDir), docsDir)
	for _, f := range paths.Folders {
		p := filepath.Join(docsDir, f)
		rep.add("Folders", filepath.Join(paths.DocumentsDir, f), dirLevel(p), p)
	}

	failed := 0
	for _, it := range rep.Items {
		if it.Level == CheckFail {
			failed++
			c.logger.Warn("check.failed", "group", it.Group, "name", it.Name, "detail", it.Detail)
		}
	}
	c.logger.Info("check.done", "checks", len(rep.Items), "failed", failed)
	return rep
}

func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func isFile(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}

func dirLevel(p string) CheckLevel {
	fi, err := os.Stat(p)
	if err != nil || !fi.IsDir() {
		return CheckFail
	}
	return CheckOK
}
