package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobmarket-tracker/internal/app"
	"github.com/honeycarbs/jobmarket-tracker/internal/config"
	"github.com/honeycarbs/jobmarket-tracker/pkg/logging"
)

var (
	ingestQuery    string
	ingestLocation string
	analyzeRole    string
	seedRuns       int
	reportRole     string
	reportJSON     bool
	exportOutput   string
	exportSheet    string
	exportTab      string
	exportSearch   string

	rootCmd = &cobra.Command{
		Use:          "jobmarket",
		Short:        "Operate the job-market tracker: ingest postings, refresh trends, report and export",
		SilenceUsage: true,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the configured store schema",
		RunE:  withApp(runMigrate),
	}
	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Fill the store with generated sample postings",
		RunE:  withApp(runSeed),
	}
	ingestCmd = &cobra.Command{
		Use:   "ingest",
		Short: "Fetch postings from the configured providers once",
		RunE:  withApp(runIngest),
	}
	analyzeCmd = &cobra.Command{
		Use:   "analyze",
		Short: "Recount skills and persist skill trends",
		RunE:  withApp(runAnalyze),
	}
	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Print the market summary, top skills and salaries",
		RunE:  withApp(runReport),
	}
	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export postings with skills and suggestions to CSV or Google Sheets",
		RunE:  withApp(runExport),
	}
)

func init() {
	ingestCmd.Flags().StringVar(&ingestQuery, "query", "", "keywords passed to providers (default INGEST_QUERY)")
	ingestCmd.Flags().StringVar(&ingestLocation, "location", "", "location filter (default INGEST_LOCATION)")

	analyzeCmd.Flags().StringVar(&analyzeRole, "role", "", "restrict the analysis to a role")

	seedCmd.Flags().IntVar(&seedRuns, "runs", 3, "number of sample batches to generate")

	reportCmd.Flags().StringVar(&reportRole, "role", "", "role filter for the salary and skill sections")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print the report as JSON")

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "CSV file to write")
	exportCmd.Flags().StringVar(&exportSheet, "sheet", "", "Google Sheets spreadsheet ID")
	exportCmd.Flags().StringVar(&exportTab, "tab", "", "Sheets tab to overwrite")
	exportCmd.Flags().StringVar(&exportSearch, "search", "", "only export postings matching this text")

	rootCmd.AddCommand(migrateCmd, seedCmd, ingestCmd, analyzeCmd, reportCmd, exportCmd)
}

type appRunner func(ctx context.Context, cmd *cobra.Command, a *app.App) error

// withApp loads config, wires the app and hands it to run
func withApp(run appRunner) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger := logging.New(cfg.LogLevel)
		defer func() { _ = logger.Sync() }()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		a, cleanup, err := app.Initialize(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		defer cleanup()

		return run(ctx, cmd, a)
	}
}
