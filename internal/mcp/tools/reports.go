package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain/analysis"
)

// Analyzer is the reporting surface exposed as tools
type Analyzer interface {
	AnalyzeSkills(ctx context.Context, role string) analysis.SkillAnalysis
	SkillDemand(ctx context.Context, role string, top int) analysis.SkillDemand
	JobVolume(ctx context.Context, days int, role string) analysis.VolumeTrend
	AvgSalaryByRole(ctx context.Context, role string) analysis.SalaryByRole
	CompanyDistribution(ctx context.Context, role string, topN int) analysis.Distribution
	LocationDistribution(ctx context.Context, role string) analysis.Distribution
	ExperienceBreakdown(ctx context.Context, role string) analysis.Distribution
	SalaryHistogram(ctx context.Context, role string, bins int) analysis.SalaryHistogram
	SkillCorrelation(ctx context.Context, role string, topSkills int, mode analysis.CorrelationMode) analysis.SkillCorrelation
	RoleDistribution(ctx context.Context, limit int) analysis.Distribution
	MarketSummary(ctx context.Context) analysis.MarketSummary
}

var _ Analyzer = (*analysis.Service)(nil)

// RoleParams is shared by reporters that only take a role filter
type RoleParams struct {
	Role string `json:"role,omitempty" jsonschema:"Case-insensitive substring matched against title or description"`
}

type SkillDemandParams struct {
	Role string `json:"role,omitempty" jsonschema:"Run a live analysis for this role instead of reading stored trends"`
	Top  int    `json:"top,omitempty" jsonschema:"Number of skills to return (default 20)"`
}

type JobVolumeParams struct {
	Role string `json:"role,omitempty" jsonschema:"Role filter"`
	Days int    `json:"days,omitempty" jsonschema:"Window in days (default 30)"`
}

type CompanyDistributionParams struct {
	Role string `json:"role,omitempty" jsonschema:"Role filter"`
	Top  int    `json:"top,omitempty" jsonschema:"Number of companies (default 10)"`
}

type SalaryHistogramParams struct {
	Role string `json:"role,omitempty" jsonschema:"Role filter"`
	Bins int    `json:"bins,omitempty" jsonschema:"Number of equal-width bins (default 10)"`
}

type RoleDistributionParams struct {
	Limit int `json:"limit,omitempty" jsonschema:"Number of role buckets (default 10)"`
}

type SkillCorrelationParams struct {
	Role string `json:"role,omitempty" jsonschema:"Role filter"`
	Top  int    `json:"top,omitempty" jsonschema:"Number of top skills considered (default 15)"`
	Mode string `json:"mode,omitempty" jsonschema:"pairs (default) or graph"`
}

type EmptyParams struct{}

// addReport registers a reporter tool. run returns the result and the
// error annotation the reporter attached to it, if any.
func addReport[P any, R any](reg *registry, name, description string, run func(context.Context, *P) (R, string), summarize func(R) string) {
	log := reg.logger.Named(name)
	sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params *P) (*sdkmcp.CallToolResult, any, error) {
		if params == nil {
			params = new(P)
		}
		log.Debug("tool called", "params", params)

		res, errMsg := run(ctx, params)
		if errMsg != "" {
			log.Warn("report failed", "error", errMsg)
			return errorResult(name, "%s", errMsg), nil, nil
		}
		return textResult(fmt.Sprintf("[%s] %s", name, summarize(res))), res, nil
	})
	reg.add(name)
}

// WithReports registers every statistical reporter as a tool
func WithReports(svc Analyzer) Option {
	return func(reg *registry) {
		addReport(reg, "analyze_skills", "Count skills over recent postings and persist them as skill trends",
			func(ctx context.Context, p *RoleParams) (analysis.SkillAnalysis, string) {
				res := svc.AnalyzeSkills(ctx, strings.ToLower(strings.TrimSpace(p.Role)))
				return res, res.Error
			},
			func(res analysis.SkillAnalysis) string {
				return fmt.Sprintf("analyzed %d posting(s), top skills: %s", res.TotalJobs, rankedList(res.Ranked, 10))
			})

		addReport(reg, "skill_demand", "Rank the most demanded skills with their share of demand",
			func(ctx context.Context, p *SkillDemandParams) (analysis.SkillDemand, string) {
				res := svc.SkillDemand(ctx, p.Role, p.Top)
				return res, res.Error
			},
			func(res analysis.SkillDemand) string {
				parts := make([]string, 0, len(res.Skills))
				for _, s := range res.Skills {
					parts = append(parts, fmt.Sprintf("%s %.2f%%", s.Skill, s.Percentage))
				}
				return fmt.Sprintf("role=%s: %s", res.Role, orNone(parts))
			})

		addReport(reg, "job_volume", "Postings per day over a recent window",
			func(ctx context.Context, p *JobVolumeParams) (analysis.VolumeTrend, string) {
				res := svc.JobVolume(ctx, p.Days, p.Role)
				return res, res.Error
			},
			func(res analysis.VolumeTrend) string {
				total := 0
				for _, c := range res.Counts {
					total += c
				}
				return fmt.Sprintf("%d posting(s) across %d day(s)", total, len(res.Dates))
			})

		addReport(reg, "avg_salary", "Average salary bounds and midpoint by role",
			func(ctx context.Context, p *RoleParams) (analysis.SalaryByRole, string) {
				res := svc.AvgSalaryByRole(ctx, p.Role)
				return res, res.Error
			},
			func(res analysis.SalaryByRole) string {
				parts := make([]string, 0, len(res.Rows))
				for _, r := range res.Rows {
					parts = append(parts, fmt.Sprintf("%s %.0f (n=%d)", r.Role, r.AvgSalary, r.Count))
				}
				return orNone(parts)
			})

		addReport(reg, "company_distribution", "Companies with the most postings",
			func(ctx context.Context, p *CompanyDistributionParams) (analysis.Distribution, string) {
				res := svc.CompanyDistribution(ctx, p.Role, p.Top)
				return res, res.Error
			},
			summarizeDistribution)

		addReport(reg, "location_distribution", "Postings per city",
			func(ctx context.Context, p *RoleParams) (analysis.Distribution, string) {
				res := svc.LocationDistribution(ctx, p.Role)
				return res, res.Error
			},
			summarizeDistribution)

		addReport(reg, "experience_breakdown", "Postings per experience level",
			func(ctx context.Context, p *RoleParams) (analysis.Distribution, string) {
				res := svc.ExperienceBreakdown(ctx, p.Role)
				return res, res.Error
			},
			summarizeDistribution)

		addReport(reg, "salary_histogram", "Histogram of salary midpoints",
			func(ctx context.Context, p *SalaryHistogramParams) (analysis.SalaryHistogram, string) {
				res := svc.SalaryHistogram(ctx, p.Role, p.Bins)
				return res, res.Error
			},
			func(res analysis.SalaryHistogram) string {
				return fmt.Sprintf("%d salaried posting(s) in %d bin(s) between %.0f and %.0f", res.Total, len(res.Bins), res.Min, res.Max)
			})

		addReport(reg, "role_distribution", "Postings per normalized role",
			func(ctx context.Context, p *RoleDistributionParams) (analysis.Distribution, string) {
				res := svc.RoleDistribution(ctx, p.Limit)
				return res, res.Error
			},
			summarizeDistribution)

		addReport(reg, "skill_correlation", "Skills that appear together in the same posting",
			func(ctx context.Context, p *SkillCorrelationParams) (analysis.SkillCorrelation, string) {
				mode, err := analysis.ParseCorrelationMode(p.Mode)
				if err != nil {
					return analysis.SkillCorrelation{}, err.Error()
				}
				res := svc.SkillCorrelation(ctx, p.Role, p.Top, mode)
				return res, res.Error
			},
			func(res analysis.SkillCorrelation) string {
				if res.Mode == analysis.ModeGraph {
					return fmt.Sprintf("graph with %d node(s) and %d edge(s)", len(res.Nodes), len(res.Edges))
				}
				parts := make([]string, 0, len(res.Pairs))
				for _, p := range res.Pairs {
					parts = append(parts, fmt.Sprintf("%s+%s=%d", p.SkillA, p.SkillB, p.Count))
				}
				return orNone(parts)
			})

		addReport(reg, "market_summary", "Headline counts over all stored postings",
			func(ctx context.Context, _ *EmptyParams) (analysis.MarketSummary, string) {
				res := svc.MarketSummary(ctx)
				return res, res.Error
			},
			func(res analysis.MarketSummary) string {
				return fmt.Sprintf("%d posting(s) from %d companies in %d locations, %d in the last %d days",
					res.TotalPostings, res.Companies, res.Locations, res.RecentPostings, res.RecentDays)
			})
	}
}

func summarizeDistribution(res analysis.Distribution) string {
	parts := make([]string, 0, len(res.Items))
	for _, it := range res.Items {
		parts = append(parts, fmt.Sprintf("%s=%d", it.Name, it.Count))
	}
	return fmt.Sprintf("total=%d: %s", res.Total, orNone(parts))
}

func rankedList(ranked []analysis.SkillCount, n int) string {
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	parts := make([]string, 0, len(ranked))
	for _, r := range ranked {
		parts = append(parts, fmt.Sprintf("%s(%d)", r.Skill, r.Count))
	}
	return orNone(parts)
}

func orNone(parts []string) string {
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
