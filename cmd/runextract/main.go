package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/joseph-ayodele/manifest-reconciler/internal/common"
	"github.com/joseph-ayodele/manifest-reconciler/internal/extract"
	"github.com/joseph-ayodele/manifest-reconciler/internal/pdftext"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runextract <manifest.pdf>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg, err := common.LoadConfig(os.Getenv("MDF_CONFIG"))
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Build the pdftotext extractor and adapt it to TextExtractor.
	px := pdftext.NewExtractor(pdftext.Config{
		Pdftotext: cfg.PDF.Pdftotext,
		Layout:    cfg.PDF.Layout,
		Timeout:   cfg.PDF.Timeout,
	}, logger)
	svc := extract.NewService(extract.NewPDFAdapter(px), logger)

	res := svc.ExtractDocument(ctx, path)
	if res.Failed() {
		logger.Error("text extraction failed",
			"path", path, "error", res.Err, "duration_ms", res.Duration.Milliseconds())
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Fields); err != nil {
		logger.Error("encode fields", "error", err)
		os.Exit(1)
	}

	logger.Info("text extraction OK",
		"path", path,
		"pages", res.Pages,
		"found", res.Fields.Found(),
		"warnings", res.Warnings,
		"duration_ms", res.Duration.Milliseconds(),
	)
}
