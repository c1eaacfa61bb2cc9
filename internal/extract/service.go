package extract

import (
	"context"
	"log/slog"
	"time"
)

// DocumentResult is the outcome of scanning one document. Err is set when the
// text could not be read; Fields is then empty. It is never a batch failure.
type DocumentResult struct {
	Path     string
	Fields   Fields
	Pages    int
	Duration time.Duration
	Warnings []string
	Err      error
}

// Failed reports whether the document could not be read.
func (r DocumentResult) Failed() bool { return r.Err != nil }

// Service reads a document through a TextExtractor and runs the field
// extractors over its pages.
type Service struct {
	text   TextExtractor
	logger *slog.Logger
}

func NewService(text TextExtractor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{text: text, logger: logger}
}

// ExtractDocument never returns an error; read failures are logged and
// reported on the result.
func (s *Service) ExtractDocument(ctx context.Context, path string) DocumentResult {
	start := time.Now()
	res := DocumentResult{Path: path}

	text, err := s.text.Extract(ctx, path)
	res.Warnings = text.Warnings
	if err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		s.logger.Warn("extract.document.read_failed",
			"path", path,
			"error", err,
			"duration_ms", res.Duration.Milliseconds(),
		)
		return res
	}

	res.Pages = len(text.Pages)
	res.Fields = ExtractFields(text.Pages)
	res.Duration = time.Since(start)
	s.logger.Debug("extract.document.ok",
		"path", path,
		"pages", res.Pages,
		"found", res.Fields.Found(),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res
}
