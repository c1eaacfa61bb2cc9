// Command mdf-batch reconciles the manifests under a base directory against
// the driver roster and writes the daily spreadsheet.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/manifest-reconciler/internal/common"
	"github.com/joseph-ayodele/manifest-reconciler/internal/console"
	"github.com/joseph-ayodele/manifest-reconciler/internal/extract"
	"github.com/joseph-ayodele/manifest-reconciler/internal/pdftext"
	"github.com/joseph-ayodele/manifest-reconciler/internal/pipeline"
)

// Exit codes.
const (
	exitOK        = 0
	exitSetup     = 1
	exitNoRecords = 2
)

var (
	configPath string
	baseDir    string
	submitter  string
	verbose    bool
	version    = "dev"
)

func main() {
	os.Exit(execute())
}

func execute() int {
	code := exitOK
	rootCmd := &cobra.Command{
		Use:   "mdf-batch",
		Short: "Match manifests to roster drivers and build the daily MDF spreadsheet",
		Long: `mdf-batch scans the manifest folders, reads the fields of every PDF,
matches each file name to a driver of the roster workbook and writes
"PLANILHA MDFS DD-MM-YYYY" as CSV and XLSX.

Examples:
  # Run in the current directory
  mdf-batch --submitter "Maria Souza"

  # Run against another base directory with a config file
  mdf-batch --base /data/mdf --config mdf.yaml --submitter "Maria Souza"

  # Verify tools, files and folders before a run
  mdf-batch check --base /data/mdf`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code = run(cmd.Context())
			return nil
		},
	}
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.Flags().StringVar(&baseDir, "base", "", "base directory (overrides paths.base_dir)")
	rootCmd.Flags().StringVar(&submitter, "submitter", "", "name of the person issuing the manifests")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print one line per document")
	_ = rootCmd.MarkFlagRequired("submitter")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the tools, files and folders a batch needs",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			code = check()
			return nil
		},
	}
	checkCmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	checkCmd.Flags().StringVar(&baseDir, "base", "", "base directory (overrides paths.base_dir)")
	rootCmd.AddCommand(checkCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		return exitSetup
	}
	return code
}

// setup loads the configuration, applies the flags and builds the logger
// and console.
func setup() (*common.Config, *slog.Logger, *console.Console, error) {
	cfg, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if baseDir != "" {
		cfg.Paths.BaseDir = baseDir
	}
	if verbose {
		cfg.Log.Verbose = true
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	ui := console.New(os.Stdout, console.Options{
		Color:        cfg.Log.Color,
		Verbose:      cfg.Log.Verbose,
		SummaryLimit: cfg.Log.SummaryLimit,
	})
	return cfg, logger, ui, nil
}

func check() int {
	cfg, logger, ui, err := setup()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		return exitSetup
	}
	ui.Banner("Environment check")
	rep := pipeline.NewChecker(cfg, logger).Run()
	ui.Checks(rep)
	if !rep.OK() {
		return exitSetup
	}
	return exitOK
}

func run(ctx context.Context) int {
	cfg, logger, ui, err := setup()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		return exitSetup
	}
	ui.Banner("PDFs -> roster -> CSV/Excel")

	extractor := pdftext.NewExtractor(pdftext.Config{
		Pdftotext: cfg.PDF.Pdftotext,
		Layout:    cfg.PDF.Layout,
		Timeout:   cfg.PDF.Timeout,
	}, logger)

	batch := pipeline.NewBatch(cfg, extract.NewPDFAdapter(extractor), ui, logger)
	sum, err := batch.Run(ctx, submitter)
	switch {
	case errors.Is(err, pipeline.ErrNoRecords):
		if sum.RosterErr != nil {
			ui.Error(sum.RosterErr)
		}
		ui.NoRecords(pipeline.NoRecordsHints)
		return exitNoRecords
	case err != nil:
		ui.Error(err)
		return exitSetup
	}

	ui.Success(sum)
	return exitOK
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo
	}
	return l
}
