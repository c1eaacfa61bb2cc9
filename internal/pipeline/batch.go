package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/manifest-reconciler/internal/common"
	"github.com/joseph-ayodele/manifest-reconciler/internal/export"
	"github.com/joseph-ayodele/manifest-reconciler/internal/extract"
	"github.com/joseph-ayodele/manifest-reconciler/internal/ingest"
	"github.com/joseph-ayodele/manifest-reconciler/internal/matcher"
	"github.com/joseph-ayodele/manifest-reconciler/internal/record"
	"github.com/joseph-ayodele/manifest-reconciler/internal/roster"
)

// Summary describes a finished batch.
type Summary struct {
	RunID          string
	Submitter      string
	ReportDate     string
	RosterPath     string
	RosterErr      error
	Roster         roster.BuildStats
	SchemaEncoding string
	Columns        int
	Scan           ingest.DirStats
	RemovedOld     int
	Report         Report
	Paths          export.Paths
	Export         export.Result
}

// Batch is one end-to-end run over a base directory.
type Batch struct {
	cfg      *common.Config
	text     extract.TextExtractor
	observer Observer
	logger   *slog.Logger
	now      func() time.Time
}

func NewBatch(cfg *common.Config, text extract.TextExtractor, observer Observer, logger *slog.Logger) *Batch {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = NopObserver{}
	}
	return &Batch{cfg: cfg, text: text, observer: observer, logger: logger, now: time.Now}
}

// WithClock replaces the clock used for the report date.
func (b *Batch) WithClock(now func() time.Time) *Batch {
	b.now = now
	return b
}

// Run validates the submitter, loads the schema and roster, processes every
// document and writes the outputs. Only setup failures and ErrNoRecords are
// returned; an unreadable roster leaves the index empty.
func (b *Batch) Run(ctx context.Context, submitter string) (Summary, error) {
	sum := Summary{RunID: uuid.NewString()}
	ctx = common.WithRunID(ctx, sum.RunID)
	logger := b.logger.With("run_id", sum.RunID)
	paths := b.cfg.Paths

	var err error
	if sum.Submitter, err = common.NormalizeSubmitter(submitter); err != nil {
		return sum, err
	}

	b.observer.Step("Locating roster")
	sum.RosterPath, err = ingest.FindRoster(paths.BaseDir, paths.RosterPrefix, paths.RosterFallback)
	if err != nil {
		return sum, common.SetupError(common.CodeConfig, "read base directory", err)
	}

	sum.ReportDate = record.ReportDate(b.now(), b.cfg.Output.CutoffHour)
	sum.Paths = export.BuildPaths(paths.BaseDir, record.FileLabel(sum.ReportDate))
	logger.Info("batch.start",
		"submitter", sum.Submitter,
		"report_date", sum.ReportDate,
		"roster", sum.RosterPath,
	)

	if b.cfg.Output.RemoveOld {
		b.observer.Step("Removing previous outputs")
		sum.RemovedOld, _ = ingest.RemoveOldOutputs(paths.BaseDir, logger)
	}

	b.observer.Step("Loading target schema")
	schema, enc, err := record.ReadSchemaFile(b.resolve(paths.SchemaFile))
	if err != nil {
		logger.Error("batch.schema.failed", "error", err)
		return sum, err
	}
	sum.SchemaEncoding, sum.Columns = enc, schema.Len()

	b.observer.Step("Loading roster")
	idx, rstats, err := roster.Load(sum.RosterPath, b.cfg.Roster.MaxSheets, roster.Options{
		StopEmptyRows: b.cfg.Roster.StopEmptyRows,
		Logger:        logger,
	})
	if err != nil {
		sum.RosterErr = common.NewAppError(common.CodeRoster, "load roster", err)
		logger.Error("batch.roster.failed", "path", sum.RosterPath, "error", err)
		idx = roster.Empty()
	}
	sum.Roster = rstats

	b.observer.Step("Scanning documents")
	docs, scan, err := ingest.ScanFolders(b.resolve(paths.DocumentsDir), paths.Folders, true, logger)
	if err != nil {
		return sum, common.SetupError(common.CodeConfig, "scan documents", err)
	}
	sum.Scan = scan

	asm, err := record.NewAssembler(schema, record.Rules{
		Status:       b.cfg.Rules.Status,
		KnownFolders: b.cfg.Rules.KnownFolders,
		Destination:  b.cfg.Rules.Destination,
		DelayFolder:  b.cfg.Rules.DelayFolder,
		DelayReason:  b.cfg.Rules.DelayReason,
	}, logger)
	if err != nil {
		return sum, err
	}

	b.observer.Step("Processing documents")
	proc := NewProcessor(logger,
		extract.NewService(b.text, logger),
		matcher.New(idx, logger),
		asm,
		Options{
			ReportDate:  sum.ReportDate,
			Submitter:   sum.Submitter,
			PreferSheet: b.cfg.Rules.PreferSheet,
			Observer:    b.observer,
		},
	)
	sum.Report, err = proc.Run(ctx, docs)
	if err != nil {
		if errors.Is(err, ErrNoRecords) {
			logger.Warn("batch.no_records", "documents", len(docs), "roster_entries", idx.Len())
		}
		return sum, err
	}

	b.observer.Step("Writing outputs")
	svc, err := export.NewService(b.cfg.Output.CSVEncoding, b.cfg.Output.WriteHistory, logger)
	if err != nil {
		return sum, common.SetupError(common.CodeConfig, "export", err)
	}
	rows := make([]map[string]string, len(sum.Report.Records))
	for i, r := range sum.Report.Records {
		rows[i] = r.Map()
	}
	sum.Export = svc.Export(ctx, schema.Columns(), export.Align(schema.Columns(), rows), sum.Paths)

	logger.Info("batch.done",
		"records", len(sum.Report.Records),
		"written", len(sum.Export.Written),
		"export_failures", len(sum.Export.Failed),
	)
	return sum, nil
}

func (b *Batch) resolve(p string) string {
	return resolvePath(b.cfg.Paths.BaseDir, p)
}
