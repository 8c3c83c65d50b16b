// Package mock serves a fixed catalogue of sample postings so the pipeline
// can run without external credentials.
package mock

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	jobdomain "github.com/honeycarbs/jobmarket-tracker/internal/domain/job"
)

const (
	minSample   = 5
	maxSample   = 10
	maxAgeDays  = 30
	urlTemplate = "https://example.com/jobs/%d"
)

type listing struct {
	title, company, location, salary, description string
}

var catalogue = []listing{
	{"Python Developer", "TechCorp Inc", "San Francisco, CA", "80000 - 120000",
		"We are looking for a Python Developer with experience in Django, Flask, and REST APIs. Knowledge of PostgreSQL, AWS, and Docker is required."},
	{"Senior Software Engineer", "DataSolutions Ltd", "New York, NY", "120000 - 160000",
		"Senior Software Engineer needed. Skills: Python, Java, React, AWS, Kubernetes, Microservices, CI/CD."},
	{"Full Stack Developer", "WebApps Co", "Austin, TX", "90000 - 130000",
		"Full Stack Developer role. Requirements: JavaScript, React, Node.js, PostgreSQL, Docker, Git, Agile methodologies."},
	{"Data Scientist", "AI Innovations", "Seattle, WA", "100000 - 150000",
		"Data Scientist position. Must have experience with Python, Pandas, NumPy, Scikit-learn, TensorFlow, Machine Learning, and Data Science."},
	{"DevOps Engineer", "CloudSystems", "Remote", "110000 - 140000",
		"DevOps Engineer needed. Skills: AWS, Docker, Kubernetes, Jenkins, Terraform, Ansible, CI/CD, Linux, Git."},
	{"Backend Engineer", "APIServices", "Boston, MA", "95000 - 125000",
		"Backend Engineer role. Experience with Python, Django, FastAPI, PostgreSQL, Redis, REST API, GraphQL required."},
	{"Frontend Developer", "UI Experts", "Los Angeles, CA", "85000 - 115000",
		"Frontend Developer position. Skills needed: JavaScript, TypeScript, React, Vue, Angular, HTML, CSS, Webpack, npm."},
	{"Machine Learning Engineer", "ML Tech", "Palo Alto, CA", "130000 - 180000",
		"ML Engineer role. Requirements: Python, TensorFlow, PyTorch, Scikit-learn, Pandas, NumPy, Deep Learning, NLP."},
	{"Software Engineer - Java", "Enterprise Solutions", "Chicago, IL", "90000 - 120000",
		"Java Developer needed. Skills: Java, Spring, MySQL, REST API, Microservices, Docker, Kubernetes, Agile."},
	{"React Developer", "ModernWeb", "Denver, CO", "80000 - 110000",
		"React Developer position. Must know: React, JavaScript, TypeScript, Redux, HTML, CSS, Node.js, Git."},
}

// Size is the number of listings in the catalogue
func Size() int { return len(catalogue) }

// Option configures Provider
type Option func(*Provider)

// WithRand sets the random source used for sampling
func WithRand(r *rand.Rand) Option {
	return func(p *Provider) { p.rng = r }
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(p *Provider) { p.clock = clock }
}

// Provider implements job.Provider over the built-in catalogue
type Provider struct {
	rng   *rand.Rand
	clock func() time.Time
}

// NewProvider builds a mock provider
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		rng:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "mock"
}

// Fetch returns a random sample of five to ten listings, each posted within
// the last thirty days. Keywords narrow the sample to matching titles.
func (p *Provider) Fetch(ctx context.Context, query domain.SearchQuery) ([]jobdomain.RawPosting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := p.clock()
	n := minSample + p.rng.IntN(maxSample-minSample+1)
	picked := p.rng.Perm(len(catalogue))[:n]

	keywords := strings.ToLower(strings.TrimSpace(query.Keywords))
	out := make([]jobdomain.RawPosting, 0, n)
	for _, idx := range picked {
		l := catalogue[idx]
		if keywords != "" && !matchesAny(l, strings.Fields(keywords)) {
			continue
		}
		posted := now.AddDate(0, 0, -p.rng.IntN(maxAgeDays+1))
		out = append(out, jobdomain.RawPosting{
			Title:       l.title,
			Company:     l.company,
			Location:    l.location,
			SalaryText:  l.salary,
			PostedText:  posted.Format(domain.DateLayout),
			Description: l.description,
			URL:         fmt.Sprintf(urlTemplate, 1000+p.rng.IntN(9000)),
			Source:      p.Name(),
		})
	}
	return out, nil
}

func matchesAny(l listing, words []string) bool {
	text := strings.ToLower(l.title + " " + l.description)
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

var _ jobdomain.Provider = (*Provider)(nil)
