// Package postgres stores postings and skill trends in PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store implements repository.Store on a pgx connection pool
type Store struct {
	db *pgxpool.Pool
}

// Open parses dsn, connects and pings the database
func Open(ctx context.Context, dsn string) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}
	poolConfig.MaxConns = 10
	poolConfig.MaxConnLifetime = time.Hour

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStore wraps an existing pool
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	if s != nil && s.db != nil {
		s.db.Close()
	}
	return nil
}

func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: migrate: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS postings (
		seq BIGSERIAL PRIMARY KEY,
		id UUID NOT NULL UNIQUE,
		title TEXT NOT NULL,
		company TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		posted_date DATE NOT NULL,
		salary_min DOUBLE PRECISION,
		salary_max DOUBLE PRECISION,
		description TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		experience_level TEXT NOT NULL DEFAULT '',
		scraped_at TIMESTAMPTZ NOT NULL,
		UNIQUE (title, company, posted_date)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_postings_natural_key
		ON postings (lower(title), lower(company), posted_date)`,
	`CREATE INDEX IF NOT EXISTS idx_postings_posted_date ON postings (posted_date DESC)`,
	`CREATE TABLE IF NOT EXISTS skill_trends (
		skill_name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		frequency INTEGER NOT NULL,
		run_id TEXT NOT NULL DEFAULT '',
		last_updated TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (skill_name, role)
	)`,
}

func (s *Store) InsertPostings(ctx context.Context, postings []domain.Posting) (int, error) {
	if len(postings) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO postings (
			id, title, company, location, posted_date, salary_min, salary_max,
			description, url, source, experience_level, scraped_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, p := range postings {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		batch.Queue(query,
			p.ID.String(), p.Title, p.Company, p.Location, domain.Date(p.PostedDate),
			p.SalaryMin, p.SalaryMax, p.Description, p.URL, p.Source,
			string(p.ExperienceLevel), p.ScrapedAt.UTC(),
		)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	results := tx.SendBatch(ctx, batch)
	added := 0
	for range postings {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return 0, fmt.Errorf("postgres: insert posting: %w", err)
		}
		added += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return added, nil
}

func (s *Store) FindPostings(ctx context.Context, filter repository.PostingFilter) ([]domain.Posting, error) {
	where, args := whereClause(filter)
	query := `
		SELECT id, title, company, location, posted_date, salary_min, salary_max,
			description, url, source, experience_level, scraped_at
		FROM postings` + where + `
		ORDER BY posted_date DESC, seq ASC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: find postings: %w", err)
	}
	defer rows.Close()

	var out []domain.Posting
	for rows.Next() {
		var (
			p     domain.Posting
			id    string
			level string
		)
		if err := rows.Scan(
			&id, &p.Title, &p.Company, &p.Location, &p.PostedDate,
			&p.SalaryMin, &p.SalaryMax, &p.Description, &p.URL, &p.Source,
			&level, &p.ScrapedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan posting: %w", err)
		}
		if p.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("postgres: scan posting id %q: %w", id, err)
		}
		p.PostedDate = domain.Date(p.PostedDate)
		p.ExperienceLevel = domain.ExperienceLevel(level)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) CountPostings(ctx context.Context, filter repository.PostingFilter) (int, error) {
	where, args := whereClause(filter)
	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM postings`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count postings: %w", err)
	}
	if filter.Limit > 0 && n > filter.Limit {
		n = filter.Limit
	}
	return n, nil
}

func whereClause(filter repository.PostingFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Since != nil {
		args = append(args, domain.Date(*filter.Since))
		conds = append(conds, fmt.Sprintf("posted_date >= $%d", len(args)))
	}
	if text := strings.ToLower(strings.TrimSpace(filter.Text)); text != "" {
		args = append(args, text)
		conds = append(conds, fmt.Sprintf("(strpos(lower(title), $%d) > 0 OR strpos(lower(description), $%d) > 0)", len(args), len(args)))
	}
	if filter.WithSalary {
		conds = append(conds, "salary_min IS NOT NULL AND salary_max IS NOT NULL")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *Store) UpsertSkillTrends(ctx context.Context, trends []domain.SkillTrend) error {
	if len(trends) == 0 {
		return nil
	}

	query := `
		INSERT INTO skill_trends (skill_name, role, frequency, run_id, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (skill_name, role) DO UPDATE
		SET
			frequency = EXCLUDED.frequency,
			run_id = EXCLUDED.run_id,
			last_updated = EXCLUDED.last_updated
	`

	batch := &pgx.Batch{}
	for _, t := range trends {
		batch.Queue(query, t.SkillName, t.Role, t.Frequency, t.RunID, t.LastUpdated.UTC())
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	results := tx.SendBatch(ctx, batch)
	for _, t := range trends {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("postgres: upsert skill trend %q: %w", t.SkillName, err)
		}
	}
	if err := results.Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) ListSkillTrends(ctx context.Context, role string, limit int) ([]domain.SkillTrend, error) {
	query := `
		SELECT skill_name, role, frequency, run_id, last_updated
		FROM skill_trends
		WHERE role = $1
		ORDER BY frequency DESC, skill_name ASC`
	args := []any{role}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list skill trends: %w", err)
	}
	defer rows.Close()

	var out []domain.SkillTrend
	for rows.Next() {
		var t domain.SkillTrend
		if err := rows.Scan(&t.SkillName, &t.Role, &t.Frequency, &t.RunID, &t.LastUpdated); err != nil {
			return nil, fmt.Errorf("postgres: scan skill trend: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
