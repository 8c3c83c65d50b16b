package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobmarket-tracker/internal/app"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/job"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/job/providers/mock"
	"github.com/honeycarbs/jobmarket-tracker/internal/export"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
)

func runMigrate(_ context.Context, cmd *cobra.Command, a *app.App) error {
	// Initialize already migrated the store
	fmt.Fprintf(cmd.OutOrStdout(), "%s store is up to date\n", a.Config.Store.Driver)
	return nil
}

func runSeed(ctx context.Context, cmd *cobra.Command, a *app.App) error {
	svc, err := job.NewService(
		job.WithRepository(a.Store),
		job.WithProviders(mock.NewProvider()),
		job.WithLogger(a.Logger),
	)
	if err != nil {
		return err
	}

	total := 0
	for range seedRuns {
		res, err := svc.Ingest(ctx, a.SearchQuery())
		if err != nil {
			return err
		}
		total += res.Added
	}
	a.InvalidateCache(ctx)

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d posting(s)\n", total)
	return nil
}

func runIngest(ctx context.Context, cmd *cobra.Command, a *app.App) error {
	query := a.SearchQuery()
	if q := strings.TrimSpace(ingestQuery); q != "" {
		query.Keywords = q
	}
	if l := strings.TrimSpace(ingestLocation); l != "" {
		query.Location = l
	}

	res, err := a.RunIngest(ctx, query)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "fetched %d, added %d from %d source(s)\n", res.Fetched, res.Added, res.Sources)
	for _, f := range res.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "provider failed: %s\n", f)
	}
	return nil
}

func runAnalyze(ctx context.Context, cmd *cobra.Command, a *app.App) error {
	res := a.RunAnalysis(ctx, strings.ToLower(strings.TrimSpace(analyzeRole)))
	if res.Error != "" {
		return fmt.Errorf("analysis failed: %s", res.Error)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "analyzed %d posting(s), run %s\n", res.TotalJobs, res.RunID)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, s := range res.Ranked {
		fmt.Fprintf(w, "  %s\t%d\n", s.Skill, s.Count)
	}
	return w.Flush()
}

func runReport(ctx context.Context, cmd *cobra.Command, a *app.App) error {
	summary := a.Analysis.MarketSummary(ctx)
	demand := a.Analysis.SkillDemand(ctx, reportRole, 10)
	salaries := a.Analysis.AvgSalaryByRole(ctx, reportRole)
	experience := a.Analysis.ExperienceBreakdown(ctx, reportRole)

	for _, msg := range []string{summary.Error, demand.Error, salaries.Error, experience.Error} {
		if msg != "" {
			return fmt.Errorf("report failed: %s", msg)
		}
	}

	out := cmd.OutOrStdout()
	if reportJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"summary":    summary,
			"skills":     demand,
			"salaries":   salaries,
			"experience": experience,
		})
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Postings\t%d\n", summary.TotalPostings)
	fmt.Fprintf(w, "Companies\t%d\n", summary.Companies)
	fmt.Fprintf(w, "Locations\t%d\n", summary.Locations)
	fmt.Fprintf(w, "With salary\t%d\n", summary.WithSalary)
	fmt.Fprintf(w, "Last %d days\t%d\n", summary.RecentDays, summary.RecentPostings)

	fmt.Fprintf(w, "\nSkill (%s)\tFrequency\tShare\n", demand.Role)
	for _, s := range demand.Skills {
		fmt.Fprintf(w, "%s\t%d\t%.2f%%\n", s.Skill, s.Frequency, s.Percentage)
	}

	fmt.Fprintf(w, "\nRole\tAvg salary\tPostings\n")
	for _, r := range salaries.Rows {
		fmt.Fprintf(w, "%s\t%.0f\t%d\n", r.Role, r.AvgSalary, r.Count)
	}

	fmt.Fprintf(w, "\nExperience\tPostings\n")
	for _, it := range experience.Items {
		fmt.Fprintf(w, "%s\t%d\n", it.Name, it.Count)
	}
	return w.Flush()
}

func runExport(ctx context.Context, cmd *cobra.Command, a *app.App) error {
	if exportOutput == "" && exportSheet == "" {
		return fmt.Errorf("export: --output or --sheet is required")
	}
	filter := repository.PostingFilter{Text: strings.TrimSpace(exportSearch)}
	out := cmd.OutOrStdout()

	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		n, err := a.Exporter.WriteCSV(ctx, f, filter)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %d row(s) to %s\n", n, exportOutput)
	}

	if exportSheet != "" {
		if a.Sheets == nil {
			return fmt.Errorf("export: GOOGLE_SHEETS_CREDENTIALS_PATH is not set")
		}
		target := export.SheetTarget{SpreadsheetID: exportSheet, Tab: exportTab}
		n, err := a.Exporter.WriteSheet(ctx, a.Sheets, target, filter)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %d row(s) to spreadsheet %s\n", n, exportSheet)
	}
	return nil
}
