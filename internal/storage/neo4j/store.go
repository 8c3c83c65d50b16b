// Package neo4j stores postings and skill trends as a property graph:
// (:Posting)-[:POSTED_BY]->(:Company) and (:SkillTrend)-[:OF]->(:Skill).
package neo4j

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
	pkgneo4j "github.com/honeycarbs/jobmarket-tracker/pkg/neo4j"
)

var _ repository.Store = (*Store)(nil)

// Store implements repository.Store with Neo4j
type Store struct {
	client *pkgneo4j.Client
	clock  func() time.Time
}

// NewStore creates a Store with a Neo4j client
func NewStore(client *pkgneo4j.Client) *Store {
	return &Store{client: client, clock: time.Now}
}

func (s *Store) Close() error {
	return s.client.Close(context.Background())
}

// Migrate creates the uniqueness constraints MERGE relies on
func (s *Store) Migrate(ctx context.Context) error {
	return s.client.Apply(ctx,
		`CREATE CONSTRAINT posting_key IF NOT EXISTS FOR (p:Posting) REQUIRE p.key IS UNIQUE`,
		`CREATE CONSTRAINT company_name IF NOT EXISTS FOR (c:Company) REQUIRE c.name IS UNIQUE`,
		`CREATE CONSTRAINT skill_name IF NOT EXISTS FOR (s:Skill) REQUIRE s.name IS UNIQUE`,
		`CREATE CONSTRAINT skill_trend_key IF NOT EXISTS FOR (t:SkillTrend) REQUIRE (t.skillName, t.role) IS UNIQUE`,
		`CREATE INDEX posting_posted_date IF NOT EXISTS FOR (p:Posting) ON (p.postedDate)`,
	)
}

// InsertPostings merges postings on their natural key; existing nodes are left untouched
func (s *Store) InsertPostings(ctx context.Context, postings []domain.Posting) (int, error) {
	if len(postings) == 0 {
		return 0, nil
	}

	query := `
		UNWIND $postings AS row
		MERGE (p:Posting {key: row.key})
		ON CREATE SET p += row.props
		WITH p, row, p.id = row.props.id AS created
		MERGE (c:Company {name: row.props.company})
		MERGE (p)-[:POSTED_BY]->(c)
		RETURN sum(CASE WHEN created THEN 1 ELSE 0 END) AS added
	`

	base := s.clock().UnixNano()
	rows := make([]map[string]any, 0, len(postings))
	for i, p := range postings {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		p.PostedDate = domain.Date(p.PostedDate)
		rows = append(rows, map[string]any{
			"key":   p.DedupKey(),
			"props": toProps(p, base+int64(i)),
		})
	}

	records, err := s.client.Write(ctx, query, map[string]any{"postings": rows})
	if err != nil {
		return 0, fmt.Errorf("neo4j: insert postings: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}
	added, _ := records[0].Get("added")
	return int(asInt(added)), nil
}

func (s *Store) FindPostings(ctx context.Context, filter repository.PostingFilter) ([]domain.Posting, error) {
	where, params := whereClause(filter)
	query := `MATCH (p:Posting)` + where + ` RETURN p ORDER BY p.postedDate DESC, p.seq ASC`
	if filter.Limit > 0 {
		query += ` LIMIT $limit`
		params["limit"] = filter.Limit
	}

	records, err := s.client.Read(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("neo4j: find postings: %w", err)
	}

	out := make([]domain.Posting, 0, len(records))
	for _, rec := range records {
		node, ok := nodeProps(rec, "p")
		if !ok {
			continue
		}
		p, err := fromProps(node)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) CountPostings(ctx context.Context, filter repository.PostingFilter) (int, error) {
	where, params := whereClause(filter)
	records, err := s.client.Read(ctx, `MATCH (p:Posting)`+where+` RETURN count(p) AS n`, params)
	if err != nil {
		return 0, fmt.Errorf("neo4j: count postings: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}
	v, _ := records[0].Get("n")
	n := int(asInt(v))
	if filter.Limit > 0 && n > filter.Limit {
		n = filter.Limit
	}
	return n, nil
}

func whereClause(filter repository.PostingFilter) (string, map[string]any) {
	var conds []string
	params := map[string]any{}

	if filter.Since != nil {
		conds = append(conds, `p.postedDate >= $since`)
		params["since"] = domain.Date(*filter.Since).Format(domain.DateLayout)
	}
	if text := strings.ToLower(strings.TrimSpace(filter.Text)); text != "" {
		conds = append(conds, `(p.titleLc CONTAINS $text OR p.descriptionLc CONTAINS $text)`)
		params["text"] = text
	}
	if filter.WithSalary {
		conds = append(conds, `p.salaryMin IS NOT NULL AND p.salaryMax IS NOT NULL`)
	}
	if len(conds) == 0 {
		return "", params
	}
	return ` WHERE ` + strings.Join(conds, ` AND `), params
}

func (s *Store) UpsertSkillTrends(ctx context.Context, trends []domain.SkillTrend) error {
	if len(trends) == 0 {
		return nil
	}

	query := `
		UNWIND $trends AS row
		MERGE (t:SkillTrend {skillName: row.skillName, role: row.role})
		SET t.frequency = row.frequency,
		    t.runId = row.runId,
		    t.lastUpdated = row.lastUpdated
		MERGE (s:Skill {name: row.skillName})
		MERGE (t)-[:OF]->(s)
	`

	rows := make([]map[string]any, 0, len(trends))
	for _, t := range trends {
		rows = append(rows, map[string]any{
			"skillName":   t.SkillName,
			"role":        t.Role,
			"frequency":   t.Frequency,
			"runId":       t.RunID,
			"lastUpdated": t.LastUpdated.UTC().Format(time.RFC3339Nano),
		})
	}

	if _, err := s.client.Write(ctx, query, map[string]any{"trends": rows}); err != nil {
		return fmt.Errorf("neo4j: upsert skill trends: %w", err)
	}
	return nil
}

func (s *Store) ListSkillTrends(ctx context.Context, role string, limit int) ([]domain.SkillTrend, error) {
	query := `
		MATCH (t:SkillTrend {role: $role})
		RETURN t
		ORDER BY t.frequency DESC, t.skillName ASC`
	params := map[string]any{"role": role}
	if limit > 0 {
		query += ` LIMIT $limit`
		params["limit"] = limit
	}

	records, err := s.client.Read(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("neo4j: list skill trends: %w", err)
	}

	out := make([]domain.SkillTrend, 0, len(records))
	for _, rec := range records {
		props, ok := nodeProps(rec, "t")
		if !ok {
			continue
		}
		t := domain.SkillTrend{
			SkillName: asString(props["skillName"]),
			Role:      asString(props["role"]),
			Frequency: int(asInt(props["frequency"])),
			RunID:     asString(props["runId"]),
		}
		var err error
		if t.LastUpdated, err = time.Parse(time.RFC3339Nano, asString(props["lastUpdated"])); err != nil {
			return nil, fmt.Errorf("neo4j: skill trend %s/%s lastUpdated: %w", t.SkillName, t.Role, err)
		}
		out = append(out, t)
	}
	return out, nil
}
