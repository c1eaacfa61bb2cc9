// Package pipeline runs manifests through extraction, driver matching and
// record assembly.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/manifest-reconciler/constants"
	"github.com/joseph-ayodele/manifest-reconciler/internal/common"
	"github.com/joseph-ayodele/manifest-reconciler/internal/extract"
	"github.com/joseph-ayodele/manifest-reconciler/internal/ingest"
	"github.com/joseph-ayodele/manifest-reconciler/internal/matcher"
	"github.com/joseph-ayodele/manifest-reconciler/internal/names"
	"github.com/joseph-ayodele/manifest-reconciler/internal/record"
)

// ErrNoRecords ends a run in which no document produced a record.
var ErrNoRecords = errors.New("no records produced")

// NoRecordsHints are shown to the operator alongside ErrNoRecords.
var NoRecordsHints = []string{
	"check that a roster workbook starting with 'escala' exists",
	"check that the document folders contain PDFs",
	"check that document names correspond to roster drivers",
}

// Outcome is what happened to one document.
type Outcome struct {
	Document ingest.Document
	Status   constants.DocumentStatus
	Fields   extract.Fields
	Match    matcher.Result
	ReadErr  error // text could not be read; Fields is empty
	Err      error // assembly failure when Status is INVALID
	Duration time.Duration
}

// Report is the result of one processor run.
type Report struct {
	RunID    string
	Records  []record.Record
	Outcomes []Outcome
	Stats    Stats
}

// Options are fixed for the whole run.
type Options struct {
	ReportDate  string
	Submitter   string
	PreferSheet map[string]int // folder -> roster sheet to try first
	Observer    Observer
}

// Processor coordinates text extraction, matching and assembly.
type Processor struct {
	logger      *slog.Logger
	extractor   *extract.Service
	matcher     *matcher.Matcher
	assembler   *record.Assembler
	reportDate  string
	submitter   string
	preferSheet map[string]int
	observer    Observer
}

func NewProcessor(logger *slog.Logger, extractor *extract.Service, m *matcher.Matcher, a *record.Assembler, opts Options) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	prefer := make(map[string]int, len(opts.PreferSheet))
	for folder, sheet := range opts.PreferSheet {
		prefer[constants.CanonicalFolder(folder)] = sheet
	}
	obs := opts.Observer
	if obs == nil {
		obs = NopObserver{}
	}
	return &Processor{
		logger:      logger,
		extractor:   extractor,
		matcher:     m,
		assembler:   a,
		reportDate:  opts.ReportDate,
		submitter:   opts.Submitter,
		preferSheet: prefer,
		observer:    obs,
	}
}

// Run processes docs one at a time, in order. Per-document failures are
// counted, never returned. The error is ErrNoRecords when nothing matched, or
// the context error when the run was canceled.
func (p *Processor) Run(ctx context.Context, docs []ingest.Document) (Report, error) {
	start := time.Now()
	rep := Report{RunID: common.RunIDFromContext(ctx), Stats: newStats()}
	if rep.RunID == "" {
		rep.RunID = uuid.NewString()
		ctx = common.WithRunID(ctx, rep.RunID)
	}
	logger := p.logger.With("run_id", rep.RunID)
	logger.Info("pipeline.run.start", "documents", len(docs))
	p.observer.Start(len(docs))

	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			rep.Stats.Duration = time.Since(start)
			logger.Warn("pipeline.run.canceled", "processed", rep.Stats.DocumentsSeen, "error", err)
			return rep, fmt.Errorf("run canceled: %w", err)
		}
		out, rec := p.process(ctx, logger, d)
		rep.Stats.observe(out)
		rep.Outcomes = append(rep.Outcomes, out)
		if out.Status == constants.DocumentMatched {
			rep.Records = append(rep.Records, rec)
		}
		p.observer.Document(out)
	}

	rep.Stats.Duration = time.Since(start)
	p.observer.Finish(rep.Stats)
	logger.Info("pipeline.run.done",
		"seen", rep.Stats.DocumentsSeen,
		"read_failures", rep.Stats.ReadFailures,
		"with_core", rep.Stats.WithCore,
		"matched", rep.Stats.Matched,
		"unresolved", rep.Stats.Unresolved,
		"invalid", rep.Stats.Invalid,
		"duration_ms", rep.Stats.Duration.Milliseconds(),
	)
	if len(rep.Records) == 0 {
		return rep, ErrNoRecords
	}
	return rep, nil
}

func (p *Processor) process(ctx context.Context, logger *slog.Logger, d ingest.Document) (Outcome, record.Record) {
	start := time.Now()
	ctx = common.WithDocument(ctx, d.Name)
	out := Outcome{Document: d}

	res := p.extractor.ExtractDocument(ctx, d.Path)
	out.Fields = res.Fields
	out.ReadErr = res.Err

	out.Match = p.matcher.Match(d.Name, p.preferSheet[d.Folder])
	if !out.Match.Resolved() {
		out.Status = constants.DocumentUnresolved
		out.Duration = time.Since(start)
		logger.Warn("pipeline.document.unresolved",
			"document", names.CleanDocumentName(d.Name),
			"folder", d.Folder,
		)
		return out, record.Record{}
	}

	rec, err := p.assembler.Assemble(res.Fields, out.Match.Entry, d.Folder, p.reportDate, p.submitter)
	out.Duration = time.Since(start)
	if err != nil {
		out.Status = constants.DocumentInvalid
		out.Err = err
		logger.Error("pipeline.document.invalid", "document", d.Name, "error", err)
		return out, record.Record{}
	}

	out.Status = constants.DocumentMatched
	logger.Debug("pipeline.document.matched",
		"document", d.Name,
		"driver", out.Match.Entry.ShortName,
		"sheet", constants.SheetLabel(out.Match.Sheet),
		"step", out.Match.Step,
		"folder", d.Folder,
		"duration_ms", out.Duration.Milliseconds(),
	)
	return out, rec
}
