package httpapi

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain/analysis"
)

type dashboardResponse struct {
	Summary   analysis.MarketSummary `json:"summary"`
	TopSkills analysis.SkillDemand   `json:"top_skills"`
	Volume    analysis.VolumeTrend   `json:"volume"`
	Salaries  analysis.SalaryByRole  `json:"salaries"`
}

// GET /api/dashboard
func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	var (
		resp dashboardResponse
		g    errgroup.Group
		ctx  = r.Context()
	)

	g.Go(func() error { resp.Summary = h.analyzer.MarketSummary(ctx); return nil })
	g.Go(func() error { resp.TopSkills = h.analyzer.SkillDemand(ctx, "", 10); return nil })
	g.Go(func() error { resp.Volume = h.analyzer.JobVolume(ctx, 30, ""); return nil })
	g.Go(func() error { resp.Salaries = h.analyzer.AvgSalaryByRole(ctx, ""); return nil })
	_ = g.Wait()

	writeReport(w, resp, firstError(resp))
}

func firstError(d dashboardResponse) string {
	for _, msg := range []string{d.Summary.Error, d.TopSkills.Error, d.Volume.Error, d.Salaries.Error} {
		if msg != "" {
			return msg
		}
	}
	return ""
}
