// Package adzuna adapts the Adzuna search API to job.Provider.
package adzuna

import (
	"context"
	"fmt"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	jobdomain "github.com/honeycarbs/jobmarket-tracker/internal/domain/job"
	"github.com/honeycarbs/jobmarket-tracker/pkg/adzuna"
)

const defaultPages = 1

// searchClient describes the subset of the Adzuna client used by the provider.
type searchClient interface {
	SearchJobs(ctx context.Context, query string, params adzuna.SearchParams) ([]adzuna.Job, error)
}

// Provider implements job.Provider using Adzuna API
type Provider struct {
	client searchClient
	pages  int
}

// NewProvider builds an Adzuna provider that reads up to pages result pages
func NewProvider(client searchClient, pages int) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("adzuna provider: client is required")
	}
	if pages <= 0 {
		pages = defaultPages
	}
	return &Provider{client: client, pages: pages}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "adzuna"
}

// Fetch pages through Adzuna results, stopping early on an empty page
func (p *Provider) Fetch(ctx context.Context, query domain.SearchQuery) ([]jobdomain.RawPosting, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("adzuna provider: client is nil")
	}

	var out []jobdomain.RawPosting
	for page := 1; page <= p.pages; page++ {
		jobs, err := p.client.SearchJobs(ctx, query.Keywords, adzuna.SearchParams{
			Location: query.Location,
			Page:     page,
		})
		if err != nil {
			if len(out) > 0 {
				return out, nil
			}
			return nil, err
		}
		if len(jobs) == 0 {
			break
		}

		for _, j := range jobs {
			out = append(out, jobdomain.RawPosting{
				Title:       j.Title,
				Company:     j.CompanyName,
				Location:    j.Location,
				SalaryMin:   salary(j.SalaryMin),
				SalaryMax:   salary(j.SalaryMax),
				PostedAt:    j.PostedAt,
				Description: j.Description,
				URL:         j.URL,
				Source:      p.Name(),
			})
		}
	}

	return out, nil
}

func salary(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}

var _ jobdomain.Provider = (*Provider)(nil)
