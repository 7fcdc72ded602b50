package operations

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"anscli/internal/config"
	"anscli/internal/dataprocessing"
	"anscli/internal/errors"
	"anscli/internal/exporter"
	"anscli/internal/fetch"
	"anscli/internal/reader"
	"anscli/internal/registry"
	"anscli/internal/report"
	"anscli/pkg/contracts/domain"
)

// registryFileName is the registry's published file name, used to find
// it in offline input directories.
const registryFileName = "Relatorio_cadop.csv"

// RunResult is what a completed run hands back to the caller.
type RunResult struct {
	Summary      report.Summary
	Consolidated int
}

// Runner drives one consolidation run.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	client   *fetch.Client
	reporter *report.Reporter
}

// NewRunner creates a runner.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:      cfg,
		logger:   logger,
		client:   fetch.NewClient(cfg.Source.HTTPTimeout, logger),
		reporter: report.New(),
	}
}

// Run executes the whole pipeline. With inDir set, archives and the
// registry are taken from that directory instead of the portal.
// Fatal errors are scoped to the file that raised them; Run only fails
// as a whole when no input can be processed or results cannot be
// written.
func (r *Runner) Run(ctx context.Context, inDir string) (*RunResult, error) {
	entries, err := r.loadRegistry(ctx, inDir)
	if err != nil {
		return nil, err
	}

	byRegistryID := registry.IndexByRegistryID(entries)
	dedup, conflicts := registry.Deduplicate(entries)
	for _, c := range conflicts {
		r.reporter.RecordRegistryConflict(c)
	}
	r.logger.Info("registry deduplicated",
		slog.Int("entries", len(entries)),
		slog.Int("unique_tax_ids", len(dedup)),
		slog.Int("conflicts", len(conflicts)))

	archives, err := r.selectArchives(ctx, inDir)
	if err != nil {
		return nil, err
	}
	if len(archives) == 0 {
		return nil, errors.NewParsingError("no quarter archives found to process", nil)
	}

	processor := dataprocessing.NewProcessor(r.logger, byRegistryID, dedup)
	consolidator := dataprocessing.NewConsolidator(r.logger)

	for _, archive := range archives {
		if err := r.processArchive(ctx, archive, inDir, processor, consolidator); err != nil {
			// Archive-level failures abort only that archive.
			r.logger.Error("archive processing failed",
				slog.String("archive", archive),
				slog.String("error", err.Error()))
			r.reporter.CountFileAborted()
		}
	}

	summary := r.reporter.Summary()
	if summary.FilesCompleted == 0 {
		return nil, errors.NewParsingError("no file completed processing", nil)
	}

	for _, ev := range consolidator.DuplicateNames() {
		r.reporter.RecordDuplicateName(ev)
	}

	records := consolidator.Records()
	stats := consolidator.EntityStats()

	paths := config.NewPaths(r.cfg)
	if err := paths.EnsureDirectories(); err != nil {
		return nil, errors.NewStorageError("failed to create output directories", err)
	}
	results := exporter.NewResultWriter(exporter.NewCSVWriter(paths), r.cfg.Output.BaseName, r.logger)
	if err := results.WriteAll(records, r.reporter, stats); err != nil {
		return nil, err
	}

	summary = r.reporter.Summary()
	r.logger.Info("run complete",
		slog.Int("consolidated_rows", len(records)),
		slog.Int("files_completed", summary.FilesCompleted),
		slog.Int("files_aborted", summary.FilesAborted),
		slog.Int("invalid_identifiers", summary.InvalidIdentifiers),
		slog.Int("duplicate_names", summary.DuplicateNames),
		slog.Int("registry_conflicts", summary.RegistryConflicts),
		slog.Int("numeric_failures", summary.NumericFailures),
		slog.Int("orphans_dropped", summary.OrphansDropped))

	return &RunResult{Summary: summary, Consolidated: len(records)}, nil
}

// loadRegistry acquires and parses the operator registry.
func (r *Runner) loadRegistry(ctx context.Context, inDir string) ([]domain.RegistryEntry, error) {
	path := filepath.Join(inDir, registryFileName)
	if inDir == "" {
		downloaded, cleanup, err := r.client.DownloadToTemp(ctx, r.cfg.Source.RegistryURL, "cadop-*.csv")
		if err != nil {
			return nil, err
		}
		defer cleanup()
		path = downloaded
	}

	table, err := reader.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return registry.Load(table, r.logger)
}

// selectArchives decides which quarter archives this run processes. In
// offline mode it is every zip in inDir; otherwise the latest quarters
// of the most recent year on the portal.
func (r *Runner) selectArchives(ctx context.Context, inDir string) ([]string, error) {
	if inDir != "" {
		matches, err := filepath.Glob(filepath.Join(inDir, "*.zip"))
		if err != nil {
			return nil, errors.NewStorageError("failed to list input directory", err)
		}
		return fetch.LatestArchives(matches, r.cfg.Source.Quarters), nil
	}

	years, err := r.client.ListYears(ctx, r.cfg.Source.BaseURL)
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return nil, errors.NewParsingError("no year directories found on the portal", nil)
	}
	latest := years[len(years)-1]
	r.logger.Info("selected statement year", slog.Int("year", latest))

	names, err := r.client.ListArchives(ctx, r.cfg.Source.BaseURL, latest)
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, name := range fetch.LatestArchives(names, r.cfg.Source.Quarters) {
		urls = append(urls, r.client.ArchiveURL(r.cfg.Source.BaseURL, latest, name))
	}
	return urls, nil
}

// processArchive runs one quarter archive through the per-file
// pipeline. Its extraction dir is released on every exit path.
func (r *Runner) processArchive(ctx context.Context, archive, inDir string, processor *dataprocessing.Processor, consolidator *dataprocessing.Consolidator) error {
	quarter, year, err := fetch.ParsePeriod(filepath.Base(archive))
	if err != nil {
		return err
	}

	zipPath := archive
	if inDir == "" {
		downloaded, cleanup, err := r.client.DownloadToTemp(ctx, archive, "demons-*.zip")
		if err != nil {
			return err
		}
		defer cleanup()
		zipPath = downloaded
	}

	extractDir, err := os.MkdirTemp("", "anscli-extract-*")
	if err != nil {
		return errors.NewStorageError("failed to create extraction dir", err)
	}
	defer os.RemoveAll(extractDir)

	tables, err := fetch.ExtractTables(zipPath, extractDir)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return errors.NewParsingError(
			fmt.Sprintf("archive %s contains no table files", filepath.Base(archive)), nil)
	}

	for _, path := range tables {
		r.processTableFile(path, quarter, year, processor, consolidator)
	}
	return nil
}

// processTableFile drives one extracted table file through the state
// machine. Fatal errors abort this file only; its partial artifacts are
// discarded and previously completed files keep their results.
func (r *Runner) processTableFile(path string, quarter, year int, processor *dataprocessing.Processor, consolidator *dataprocessing.Consolidator) {
	run := dataprocessing.NewFileRun(path, quarter, year)

	table, err := reader.ReadFile(path)
	if err != nil {
		run.Fail(err)
		r.reporter.CountFileAborted()
		r.logger.Error("file ingestion failed",
			slog.String("file", filepath.Base(path)),
			slog.String("error", err.Error()))
		return
	}

	result, err := processor.ProcessTable(table, run)
	if err != nil {
		r.reporter.CountFileAborted()
		r.logger.Error("file aborted",
			slog.String("file", filepath.Base(path)),
			slog.String("status", string(run.Status)),
			slog.String("error", err.Error()))
		return
	}

	consolidator.Add(result.Rows)
	run.Advance(dataprocessing.StatusAggregated)

	for _, ev := range result.Invalid {
		r.reporter.RecordInvalidIdentifier(ev)
	}
	r.reporter.CountNumericFailures(result.Stats.NumericFailures)
	r.reporter.CountClaimsExcluded(result.Stats.ClaimsExcluded)
	r.reporter.CountOrphansDropped(result.OrphanDropped)
	r.reporter.CountFileCompleted()
	run.Advance(dataprocessing.StatusReported)
}
