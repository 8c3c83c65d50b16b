package adzuna

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Config defines Adzuna API client settings
type Config struct {
	AppID      string
	AppKey     string
	Country    string
	BaseURL    string
	HTTPClient *http.Client
	PageSize   int
	// RequestsPerSecond caps outgoing calls; zero means one request per second
	RequestsPerSecond float64
}

// Client queries Adzuna job search API
type Client struct {
	appID      string
	appKey     string
	country    string
	baseURL    string
	httpClient *http.Client
	pageSize   int
	limiter    *rate.Limiter
}

// SearchParams describe a job search request
type SearchParams struct {
	Location string
	// Page is 1-based; zero means the first page
	Page int
}

type jobSearchResponse struct {
	Count   int          `json:"count"`
	Results []jobPosting `json:"results"`
}

type jobPosting struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Company     companySummary  `json:"company"`
	Location    locationSummary `json:"location"`
	Description string          `json:"description"`
	Created     string          `json:"created"`
	RedirectURL string          `json:"redirect_url"`
	SalaryMin   float64         `json:"salary_min"`
	SalaryMax   float64         `json:"salary_max"`
}

type companySummary struct {
	DisplayName string `json:"display_name"`
}

type locationSummary struct {
	DisplayName string `json:"display_name"`
}

// Job is one Adzuna search hit. Zero salary means Adzuna gave no figure.
type Job struct {
	ID          string
	Title       string
	CompanyName string
	Location    string
	URL         string
	Description string
	PostedAt    time.Time
	SalaryMin   float64
	SalaryMax   float64
}
