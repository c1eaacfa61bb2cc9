package extract

import (
	"context"

	"github.com/joseph-ayodele/manifest-reconciler/internal/pdftext"
)

type PDFAdapter struct {
	e *pdftext.Extractor
}

func NewPDFAdapter(e *pdftext.Extractor) *PDFAdapter {
	return &PDFAdapter{e: e}
}

func (a *PDFAdapter) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	r, err := a.e.Extract(ctx, path)
	return TextExtractionResult{
		Pages:    r.Pages,
		Duration: r.Duration,
		Warnings: r.Warnings,
	}, err
}
