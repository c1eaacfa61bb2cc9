// Package pdftext turns manifest PDFs into page-ordered plain text using
// poppler's pdftotext.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/manifest-reconciler/internal/common"
)

// ErrTimeout is returned when pdftotext does not finish within Config.Timeout.
var ErrTimeout = errors.New("pdf text extraction timed out")

type Config struct {
	Pdftotext string        // binary name or absolute path; if empty -> "pdftotext"
	Layout    bool          // pass -layout so table rows stay on one line
	Timeout   time.Duration // per document; 0 = no deadline
	MaxPages  int           // 0 = no limit
}

type Result struct {
	Pages    []string // non-empty pages, in document order
	Duration time.Duration
	Warnings []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// WithRunner swaps the command runner; used by tests.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// Extract runs pdftotext on path and splits its output into pages. Pages that
// contain only whitespace are dropped.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	ctx, cancel := common.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	args := []string{"-enc", "UTF-8", "-eol", "unix"}
	if e.cfg.Layout {
		args = append([]string{"-layout"}, args...)
	}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", fmt.Sprintf("%d", e.cfg.MaxPages))
	}
	args = append(args, path, "-")

	e.logger.Debug("starting pdf text extraction", "path", path, "layout", e.cfg.Layout)
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, args...)
	res := Result{Duration: time.Since(start)}
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return res, fmt.Errorf("%w after %s: %s", ErrTimeout, e.cfg.Timeout, path)
		}
		if msg := strings.TrimSpace(string(errb)); msg != "" {
			res.Warnings = append(res.Warnings, msg)
		}
		return res, fmt.Errorf("pdftotext %s: %w", path, err)
	}

	res.Pages = SplitPages(string(out))
	if len(res.Pages) == 0 {
		res.Warnings = append(res.Warnings, "no text layer found")
	}
	return res, nil
}

// SplitPages splits pdftotext output on form feeds, normalizes each page and
// keeps only pages with text.
func SplitPages(text string) []string {
	raw := strings.Split(text, "\f")
	pages := make([]string, 0, len(raw))
	for _, p := range raw {
		p = Normalize(p)
		if p == "" {
			continue
		}
		pages = append(pages, p)
	}
	return pages
}
