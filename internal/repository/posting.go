package repository

import (
	"context"
	"time"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
)

// PostingFilter narrows posting queries. Zero value selects everything.
type PostingFilter struct {
	// Since keeps postings whose calendar date is on or after Since's date
	Since *time.Time
	// Text is matched case-insensitively as a substring of title or description
	Text string
	// WithSalary keeps only postings with both salary bounds
	WithSalary bool
	// Limit caps the result size when > 0
	Limit int
}

// PostingRepository reads and stores job postings.
// FindPostings orders by posted date descending, then insertion order.
type PostingRepository interface {
	FindPostings(ctx context.Context, filter PostingFilter) ([]domain.Posting, error)
	CountPostings(ctx context.Context, filter PostingFilter) (int, error)
	// InsertPostings skips postings whose (title, company, posted date) already exists
	InsertPostings(ctx context.Context, postings []domain.Posting) (int, error)
}
