// Package export flattens stored postings into spreadsheet rows for CSV files
// and Google Sheets.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/roles"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/skills"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
)

const descriptionLimit = 200

// Header is the column layout of every export
var Header = []string{
	"Job Title", "Company", "Location", "Required Skills", "Suggested Additional Skills",
	"Experience Level", "Salary Min", "Salary Max", "Average Salary", "Posted Date",
	"Job URL", "Description",
}

// Exporter builds rows from the posting store
type Exporter struct {
	postings    repository.PostingRepository
	lexicon     skills.Lexicon
	classifier  roles.Classifier
	suggestions []roles.Suggestion
}

// NewExporter creates an Exporter
func NewExporter(
	postings repository.PostingRepository,
	lexicon skills.Lexicon,
	classifier roles.Classifier,
	suggestions []roles.Suggestion,
) *Exporter {
	return &Exporter{
		postings:    postings,
		lexicon:     lexicon,
		classifier:  classifier,
		suggestions: suggestions,
	}
}

// Rows returns one row per posting, newest first, without the header
func (e *Exporter) Rows(ctx context.Context, filter repository.PostingFilter) ([][]string, error) {
	postings, err := e.postings.FindPostings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("export: load postings: %w", err)
	}

	rows := make([][]string, 0, len(postings))
	for _, p := range postings {
		rows = append(rows, e.row(p))
	}
	return rows, nil
}

func (e *Exporter) row(p domain.Posting) []string {
	found := e.lexicon.ExtractOrdered(p.Description)
	sort.Strings(found)

	var avg string
	if p.HasSalary() && p.SalaryMidpoint() > 0 {
		avg = thousands(p.SalaryMidpoint())
	}

	return []string{
		p.Title,
		p.Company,
		p.Location,
		strings.Join(found, ", "),
		strings.Join(roles.Suggest(e.suggestions, p.Title, found), ", "),
		e.experience(p),
		number(p.SalaryMin),
		number(p.SalaryMax),
		avg,
		p.PostedDate.Format(domain.DateLayout),
		p.URL,
		truncate(p.Description, descriptionLimit),
	}
}

func (e *Exporter) experience(p domain.Posting) string {
	if p.ExperienceLevel != "" {
		return roles.Label(p.ExperienceLevel, true)
	}
	return roles.Label(e.classifier.Infer(p.Description))
}

// WriteCSV writes the header and every row to w and returns the row count
func (e *Exporter) WriteCSV(ctx context.Context, w io.Writer, filter repository.PostingFilter) (int, error) {
	rows, err := e.Rows(ctx, filter)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return 0, fmt.Errorf("export: write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return 0, fmt.Errorf("export: write rows: %w", err)
	}
	return len(rows), nil
}

func number(v *float64) string {
	if v == nil || *v == 0 {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// thousands renders v rounded to an integer with comma grouping, e.g. 110,000
func thousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}
