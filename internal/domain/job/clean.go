package job

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
)

var (
	currencyChars = strings.NewReplacer("$", "", ",", "", "£", "", "€", "", "¥", "")
	salaryRange   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[kK]?\s*[-–—]\s*(\d+(?:\.\d+)?)\s*[kK]?`)
	salarySingle  = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	leadingNumber = regexp.MustCompile(`(\d+)`)
	punctuation   = regexp.MustCompile(`[^\w\s]`)

	titleAbbreviations = []struct {
		re   *regexp.Regexp
		full string
	}{
		{regexp.MustCompile(`\bdev\b`), "developer"},
		{regexp.MustCompile(`\beng\b`), "engineer"},
		{regexp.MustCompile(`\bmgr\b`), "manager"},
		{regexp.MustCompile(`\bsr\b`), "senior"},
		{regexp.MustCompile(`\bjr\b`), "junior"},
		{regexp.MustCompile(`\bsw\b`), "software"},
	}

	dateLayouts = []string{
		"2006-01-02",
		"01/02/2006",
		"02/01/2006",
		"January 2, 2006",
		"Jan 2, 2006",
		"2 January 2006",
		"2 Jan 2006",
	}
)

// ParseSalary reads "80000 - 120000", "80k-120k" or a single figure. A single
// figure yields equal bounds; text without digits yields nil bounds.
func ParseSalary(text string) (*float64, *float64) {
	text = strings.TrimSpace(currencyChars.Replace(text))
	if text == "" {
		return nil, nil
	}
	thousands := strings.ContainsAny(text, "kK")

	scale := func(s string) *float64 {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		if thousands {
			v *= 1000
		}
		return &v
	}

	if m := salaryRange.FindStringSubmatch(text); m != nil {
		return scale(m[1]), scale(m[2])
	}
	if m := salarySingle.FindStringSubmatch(text); m != nil {
		lo := scale(m[1])
		if lo == nil {
			return nil, nil
		}
		hi := *lo
		return lo, &hi
	}
	return nil, nil
}

// ParseDate accepts absolute dates in several layouts and relative phrases
// such as "3 days ago", "yesterday" and "today".
func ParseDate(text string, now time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "ago"):
		if m := leadingNumber.FindString(lower); m != "" {
			n, err := strconv.Atoi(m)
			if err == nil {
				return domain.Date(now.AddDate(0, 0, -n)), true
			}
		}
		if strings.Contains(lower, "yesterday") {
			return domain.Date(now.AddDate(0, 0, -1)), true
		}
		if strings.Contains(lower, "today") {
			return domain.Date(now), true
		}
	case lower == "yesterday":
		return domain.Date(now.AddDate(0, 0, -1)), true
	case lower == "today":
		return domain.Date(now), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeTitle lowercases a title, expands common abbreviations and strips
// punctuation, e.g. "Sr. Python Dev" becomes "senior python developer".
func NormalizeTitle(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return ""
	}
	for _, a := range titleAbbreviations {
		title = a.re.ReplaceAllString(title, a.full)
	}
	title = punctuation.ReplaceAllString(title, " ")
	return strings.Join(strings.Fields(title), " ")
}

// Clean turns a raw posting into a stored posting. Postings without title or
// company are rejected; unparseable dates default to today.
func Clean(raw RawPosting, now time.Time) (domain.Posting, bool) {
	p := domain.Posting{
		Title:       strings.TrimSpace(raw.Title),
		Company:     strings.TrimSpace(raw.Company),
		Location:    strings.TrimSpace(raw.Location),
		Description: strings.TrimSpace(raw.Description),
		URL:         strings.TrimSpace(raw.URL),
		Source:      raw.Source,
		ScrapedAt:   now.UTC(),
	}
	if p.Title == "" || p.Company == "" {
		return domain.Posting{}, false
	}

	if strings.TrimSpace(raw.SalaryText) != "" {
		p.SalaryMin, p.SalaryMax = ParseSalary(raw.SalaryText)
	} else {
		p.SalaryMin, p.SalaryMax = positive(raw.SalaryMin), positive(raw.SalaryMax)
	}

	switch {
	case raw.PostedText != "":
		if d, ok := ParseDate(raw.PostedText, now); ok {
			p.PostedDate = domain.Date(d)
		} else {
			p.PostedDate = domain.Date(now)
		}
	case !raw.PostedAt.IsZero():
		p.PostedDate = domain.Date(raw.PostedAt)
	default:
		p.PostedDate = domain.Date(now)
	}

	return p, true
}

func positive(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}
