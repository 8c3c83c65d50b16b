package job

import (
	"context"
	"time"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
)

// RawPosting is a posting as a provider hands it over, before cleaning.
// Salary comes either as free text (SalaryText) or as parsed bounds, and the
// posted date either as free text (PostedText) or as a timestamp.
type RawPosting struct {
	Title       string
	Company     string
	Location    string
	SalaryText  string
	SalaryMin   *float64
	SalaryMax   *float64
	PostedText  string
	PostedAt    time.Time
	Description string
	URL         string
	Source      string
}

// Provider represents an external job data source (job board API, mock feed, etc.)
type Provider interface {
	// e.g. "adzuna" or "mock"
	Name() string

	// Fetch returns raw postings for a query
	Fetch(ctx context.Context, query domain.SearchQuery) ([]RawPosting, error)
}

// Publisher announces completed ingest runs
type Publisher interface {
	PublishIngested(ctx context.Context, result domain.IngestResult) error
}
