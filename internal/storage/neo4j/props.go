package neo4j

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
)

func toProps(p domain.Posting, seq int64) map[string]any {
	props := map[string]any{
		"id":              p.ID.String(),
		"seq":             seq,
		"title":           p.Title,
		"company":         p.Company,
		"location":        p.Location,
		"postedDate":      p.PostedDate.Format(domain.DateLayout),
		"description":     p.Description,
		"url":             p.URL,
		"source":          p.Source,
		"experienceLevel": string(p.ExperienceLevel),
		"scrapedAt":       p.ScrapedAt.UTC().Format(time.RFC3339),
		"titleLc":         strings.ToLower(p.Title),
		"descriptionLc":   strings.ToLower(p.Description),
	}
	// absent bounds stay unset on the node
	if p.SalaryMin != nil {
		props["salaryMin"] = *p.SalaryMin
	}
	if p.SalaryMax != nil {
		props["salaryMax"] = *p.SalaryMax
	}
	return props
}

func fromProps(props map[string]any) (domain.Posting, error) {
	p := domain.Posting{
		Title:           asString(props["title"]),
		Company:         asString(props["company"]),
		Location:        asString(props["location"]),
		Description:     asString(props["description"]),
		URL:             asString(props["url"]),
		Source:          asString(props["source"]),
		ExperienceLevel: domain.ExperienceLevel(asString(props["experienceLevel"])),
	}
	id := asString(props["id"])
	var err error
	if p.ID, err = uuid.Parse(id); err != nil {
		return domain.Posting{}, fmt.Errorf("neo4j: posting id %q: %w", id, err)
	}
	if p.PostedDate, err = time.Parse(domain.DateLayout, asString(props["postedDate"])); err != nil {
		return domain.Posting{}, fmt.Errorf("neo4j: posting %s postedDate: %w", id, err)
	}
	if p.ScrapedAt, err = time.Parse(time.RFC3339, asString(props["scrapedAt"])); err != nil {
		return domain.Posting{}, fmt.Errorf("neo4j: posting %s scrapedAt: %w", id, err)
	}
	if v, ok := asFloat(props["salaryMin"]); ok {
		p.SalaryMin = domain.Float(v)
	}
	if v, ok := asFloat(props["salaryMax"]); ok {
		p.SalaryMax = domain.Float(v)
	}
	return p, nil
}

func nodeProps(rec *neo4j.Record, key string) (map[string]any, bool) {
	val, ok := rec.Get(key)
	if !ok {
		return nil, false
	}
	node, ok := val.(neo4j.Node)
	if !ok {
		return nil, false
	}
	return node.Props, true
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}
