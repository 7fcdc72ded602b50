package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"anscli/internal/config"
	"anscli/internal/infrastructure"
	"anscli/internal/operations"
	"anscli/pkg/contracts"
)

func main() {
	inDir := flag.String("in", "", "process quarter archives and registry from this directory instead of fetching from the portal")
	outDir := flag.String("out", "", "output directory for result CSVs (defaults to configured dir)")
	quarters := flag.Int("quarters", 0, "number of most recent quarters to consolidate (defaults to configured value)")
	version := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *version {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *quarters > 0 {
		cfg.Source.Quarters = *quarters
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	runner := operations.NewRunner(cfg, logger)
	result, err := runner.Run(context.Background(), *inDir)
	if err != nil {
		logger.Error("consolidation run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("consolidation finished",
		slog.Int("consolidated_rows", result.Consolidated),
		slog.Int("files_completed", result.Summary.FilesCompleted),
		slog.Int("files_aborted", result.Summary.FilesAborted))
}
