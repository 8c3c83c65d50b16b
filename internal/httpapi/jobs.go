package httpapi

import (
	"net/http"
	"strings"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
)

type listResponse[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Count: len(items), Results: items}
}

// GET /api/jobs?search=&limit=
func (h *handler) listJobs(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 100, 1, 1000)
	if err != nil {
		h.fail(w, r, err, "invalid request")
		return
	}

	postings, err := h.postings.FindPostings(r.Context(), repository.PostingFilter{
		Text:  strings.TrimSpace(r.URL.Query().Get("search")),
		Limit: limit,
	})
	if err != nil {
		h.fail(w, r, err, "could not load job postings")
		return
	}

	writeJSON(w, http.StatusOK, newList[domain.Posting](postings))
}

// GET /api/jobs/recent?days=
func (h *handler) recentJobs(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", 7, 1, 3650)
	if err != nil {
		h.fail(w, r, err, "invalid request")
		return
	}
	limit, err := intParam(r, "limit", 100, 1, 1000)
	if err != nil {
		h.fail(w, r, err, "invalid request")
		return
	}

	since := h.clock().AddDate(0, 0, -days)
	postings, err := h.postings.FindPostings(r.Context(), repository.PostingFilter{
		Since: &since,
		Limit: limit,
	})
	if err != nil {
		h.fail(w, r, err, "could not load job postings")
		return
	}

	writeJSON(w, http.StatusOK, newList[domain.Posting](postings))
}

// GET /api/skills?role=&limit=
func (h *handler) listSkills(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 100, 1, 1000)
	if err != nil {
		h.fail(w, r, err, "invalid request")
		return
	}

	trends, err := h.trends.ListSkillTrends(r.Context(), strings.ToLower(role(r)), limit)
	if err != nil {
		h.fail(w, r, err, "could not load skill trends")
		return
	}

	writeJSON(w, http.StatusOK, newList[domain.SkillTrend](trends))
}
