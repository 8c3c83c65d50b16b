package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain/analysis"
)

// GET /api/analytics?type=skill-demand|role-volume|avg-salary; type defaults to skill-demand
func (h *handler) analytics(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("type") {
	case "", "skill-demand":
		h.storedSkillDemand(w, r)
	case "role-volume":
		h.roleVolume(w, r)
	case "avg-salary":
		h.avgSalary(w, r)
	default:
		writeError(w, r, http.StatusBadRequest, "invalid_type",
			"invalid analytics type, use one of: skill-demand, role-volume, avg-salary")
	}
}

// storedSkillDemand reads the trends persisted for role without running an analysis
func (h *handler) storedSkillDemand(w http.ResponseWriter, r *http.Request) {
	top, err := intParam(r, "top", 20, 1, 200)
	if err != nil {
		h.fail(w, r, err, "invalid request")
		return
	}
	res := h.analyzer.StoredSkillDemand(r.Context(), role(r), top)
	writeReport(w, res, res.Error)
}

func (h *handler) skillDemand(w http.ResponseWriter, r *http.Request) {
	top, err := intParam(r, "top", 20, 1, 200)
	if err != nil {
		h.fail(w, r, err, "invalid request")
		return
	}
	res := h.analyzer.SkillDemand(r.Context(), role(r), top)
	writeReport(w, res, res.Error)
}

func (h *handler) roleVolume(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", 30, 1, 3650)
	if err != nil {
		h.fail(w, r, err, "invalid request")
		return
	}
	res := h.analyzer.JobVolume(r.Context(), days, role(r))
	writeReport(w, res, res.Error)
}

func (h *handler) avgSalary(w http.ResponseWriter, r *http.Request) {
	res := h.analyzer.AvgSalaryByRole(r.Context(), role(r))
	writeReport(w, res, res.Error)
}

func (h *handler) companyDistribution(w http.ResponseWriter, r *http.Request) {
	top, err := intParam(r, "top", 10, 1, 200)
	if err != nil {
		h.fail(w, r, err, "invalid request")
		return
	}
	res := h.analyzer.CompanyDistribution(r.Context(), role(r), top)
	writeReport(w, res, res.Error)
}

func (h *handler) locationDistribution(w http.ResponseWriter, r *http.Request) {
	res := h.analyzer.LocationDistribution(r.Context(), role(r))
	writeReport(w, res, res.Error)
}

func (h *handler) experienceLevel(w http.ResponseWriter, r *http.Request) {
	res := h.analyzer.ExperienceBreakdown(r.Context(), role(r))
	writeReport(w, res, res.Error)
}

func (h *handler) salaryDistribution(w http.ResponseWriter, r *http.Request) {
	bins, err := intParam(r, "bins", 10, 1, 100)
	if err != nil {
		h.fail(w, r, err, "invalid request")
		return
	}
	res := h.analyzer.SalaryHistogram(r.Context(), role(r), bins)
	writeReport(w, res, res.Error)
}

func (h *handler) skillCorrelation(w http.ResponseWriter, r *http.Request) {
	top, err := intParam(r, "top", 15, 2, 100)
	if err != nil {
		h.fail(w, r, err, "invalid request")
		return
	}
	mode, err := analysis.ParseCorrelationMode(r.URL.Query().Get("mode"))
	if err != nil {
		h.fail(w, r, err, "invalid request")
		return
	}
	res := h.analyzer.SkillCorrelation(r.Context(), role(r), top, mode)
	writeReport(w, res, res.Error)
}

func (h *handler) roleDistribution(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 10, 1, 200)
	if err != nil {
		h.fail(w, r, err, "invalid request")
		return
	}
	res := h.analyzer.RoleDistribution(r.Context(), limit)
	writeReport(w, res, res.Error)
}

func (h *handler) summary(w http.ResponseWriter, r *http.Request) {
	res := h.analyzer.MarketSummary(r.Context())
	writeReport(w, res, res.Error)
}

// POST /api/analytics/analyze?role=
func (h *handler) analyze(w http.ResponseWriter, r *http.Request) {
	res := h.analyzer.AnalyzeSkills(r.Context(), strings.ToLower(role(r)))
	if res.Error == "" {
		h.invalidate(r.Context())
	}
	writeReport(w, res, res.Error)
}

func (h *handler) invalidate(ctx context.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Clear(ctx); err != nil {
		h.logger.Warn("cache clear failed", "error", err)
	}
}
