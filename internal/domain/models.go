package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PostingID uniquely identifies a stored posting
type PostingID = uuid.UUID

// ExperienceLevel is the seniority band of a posting
type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "entry"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
	LevelLead   ExperienceLevel = "lead"
)

// Levels lists the known experience levels in display order
var Levels = []ExperienceLevel{LevelEntry, LevelMid, LevelSenior, LevelLead}

// Posting is a single job advertisement, the unit of analysis
type Posting struct {
	ID              PostingID       `json:"id"`
	Title           string          `json:"job_title"`
	Company         string          `json:"company"`
	Location        string          `json:"location"`
	PostedDate      time.Time       `json:"posted_date"`
	SalaryMin       *float64        `json:"salary_min"`
	SalaryMax       *float64        `json:"salary_max"`
	Description     string          `json:"description"`
	URL             string          `json:"job_url"`
	Source          string          `json:"source,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experience_level,omitempty"`
	ScrapedAt       time.Time       `json:"scraped_at"`
}

// HasSalary reports whether both salary bounds are present
func (p Posting) HasSalary() bool {
	return p.SalaryMin != nil && p.SalaryMax != nil
}

// SalaryMidpoint is (min+max)/2; callers must check HasSalary first
func (p Posting) SalaryMidpoint() float64 {
	return (*p.SalaryMin + *p.SalaryMax) / 2
}

// SearchText is the text skills are extracted from
func (p Posting) SearchText() string {
	return p.Title + " " + p.Description
}

// Matches reports whether role occurs, case-insensitively, in the title or description
func (p Posting) Matches(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), role) ||
		strings.Contains(strings.ToLower(p.Description), role)
}

// DedupKey is the natural uniqueness key of a posting
func (p Posting) DedupKey() string {
	return strings.ToLower(p.Title) + "\x00" + strings.ToLower(p.Company) + "\x00" + p.PostedDate.Format(DateLayout)
}

// SkillTrend is a persisted skill frequency for one role bucket.
// Role "" holds the global count.
type SkillTrend struct {
	SkillName   string    `json:"skill_name"`
	Role        string    `json:"role"`
	Frequency   int       `json:"frequency"`
	RunID       string    `json:"run_id,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}

// SearchQuery narrows ingestion to a keyword and location
type SearchQuery struct {
	Keywords string
	Location string
}

// IngestResult summarizes one ingest pass
type IngestResult struct {
	Fetched  int       `json:"fetched"`
	Added    int       `json:"added"`
	Sources  int       `json:"sources"`
	RunAt    time.Time `json:"run_at"`
	Failures []string  `json:"failures,omitempty"`
}

// DateLayout is the canonical calendar-date encoding
const DateLayout = "2006-01-02"

// Date truncates t to its UTC calendar date
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Float returns a pointer to v, for optional salary bounds
func Float(v float64) *float64 {
	return &v
}
