package analysis

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/roles"
)

const (
	defaultHistogramBins = 10
	fallbackBinWidth     = 10000.0
)

type salaryAcc struct {
	sumMid, sumMin, sumMax float64
	n                      int
}

func (a *salaryAcc) add(p domain.Posting) {
	a.sumMid += p.SalaryMidpoint()
	a.sumMin += *p.SalaryMin
	a.sumMax += *p.SalaryMax
	a.n++
}

func (a *salaryAcc) stat(role string) SalaryStat {
	n := float64(a.n)
	return SalaryStat{
		Role:      role,
		AvgSalary: round2(a.sumMid / n),
		AvgMin:    round2(a.sumMin / n),
		AvgMax:    round2(a.sumMax / n),
		Count:     a.n,
	}
}

// AvgSalaryByRole averages salaries over postings with both bounds. A role
// collapses the result into one row; otherwise rows are grouped by the first
// title word and sorted by average midpoint, highest first.
func (s *Service) AvgSalaryByRole(ctx context.Context, role string) SalaryByRole {
	return run(ctx, s, "avg_salary", role, func(ctx context.Context) (SalaryByRole, error) {
		postings, err := s.find(ctx, role, time.Time{}, true)
		if err != nil {
			return SalaryByRole{}, err
		}
		return salaryByRole(postings, role), nil
	})
}

func salaryByRole(postings []domain.Posting, role string) SalaryByRole {
	if len(postings) == 0 {
		return SalaryByRole{Rows: []SalaryStat{}}
	}

	if r := normRole(role); r != "" {
		acc := &salaryAcc{}
		for _, p := range postings {
			acc.add(p)
		}
		return SalaryByRole{Rows: []SalaryStat{acc.stat(modalTitle(postings, r))}}
	}

	groups := make(map[string]*salaryAcc)
	for _, p := range postings {
		key := roles.Bucket(p.Title)
		if groups[key] == nil {
			groups[key] = &salaryAcc{}
		}
		groups[key].add(p)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]SalaryStat, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, groups[k].stat(k))
	}
	slices.SortStableFunc(rows, func(a, b SalaryStat) int {
		switch {
		case a.AvgSalary > b.AvgSalary:
			return -1
		case a.AvgSalary < b.AvgSalary:
			return 1
		}
		return 0
	})
	return SalaryByRole{Rows: rows}
}

// modalTitle picks the most frequent title containing role; ties go to the
// lexically smallest title. Falls back to role when no title contains it.
func modalTitle(postings []domain.Posting, role string) string {
	counts := make(map[string]int)
	for _, p := range postings {
		if strings.Contains(strings.ToLower(p.Title), role) {
			counts[p.Title]++
		}
	}

	best, bestN := role, 0
	for title, n := range counts {
		if n > bestN || (n == bestN && title < best) {
			best, bestN = title, n
		}
	}
	return best
}

// SalaryHistogram bins posting salary midpoints into equal-width intervals
// between the observed minimum and maximum.
func (s *Service) SalaryHistogram(ctx context.Context, role string, bins int) SalaryHistogram {
	if bins <= 0 {
		bins = defaultHistogramBins
	}
	return run(ctx, s, "salary_histogram", role, func(ctx context.Context) (SalaryHistogram, error) {
		postings, err := s.find(ctx, role, time.Time{}, true)
		if err != nil {
			return SalaryHistogram{}, err
		}
		mids := make([]float64, 0, len(postings))
		for _, p := range postings {
			mids = append(mids, p.SalaryMidpoint())
		}
		return histogram(mids, bins)
	})
}

// histogram uses half-open bins [lo, hi) except the last, which is closed so
// the maximum lands in it.
func histogram(values []float64, bins int) (SalaryHistogram, error) {
	if len(values) == 0 {
		return SalaryHistogram{Bins: []HistogramBin{}}, nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	width := (hi - lo) / float64(bins)
	if hi == lo {
		width = fallbackBinWidth
	}
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return SalaryHistogram{}, fmt.Errorf("histogram: invalid bin width %v", width)
	}

	out := make([]HistogramBin, bins)
	for i := range out {
		lower := lo + float64(i)*width
		upper := lo + float64(i+1)*width
		if i == bins-1 && hi > lo {
			upper = hi
		}
		out[i] = HistogramBin{
			Label: fmt.Sprintf("%.0f-%.0f", lower, upper),
			Lower: round2(lower),
			Upper: round2(upper),
		}
	}

	for _, v := range values {
		out[binOf(out, v, lo, width)].Count++
	}

	return SalaryHistogram{
		Bins:  out,
		Min:   round2(lo),
		Max:   round2(hi),
		Width: round2(width),
		Total: len(values),
	}, nil
}

// binOf picks the bin whose reported [Lower, Upper) holds v, starting from the
// arithmetic estimate. Values outside the outer edges go to the end bins.
func binOf(bins []HistogramBin, v, lo, width float64) int {
	last := len(bins) - 1
	idx := int((v - lo) / width)
	idx = max(0, min(idx, last))
	for idx > 0 && v < bins[idx].Lower {
		idx--
	}
	for idx < last && v >= bins[idx].Upper {
		idx++
	}
	return idx
}
