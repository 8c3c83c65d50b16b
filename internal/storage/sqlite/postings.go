package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
)

const postingColumns = `id, title, company, location, posted_date, salary_min, salary_max,
  description, url, source, experience_level, scraped_at`

func (s *Store) InsertPostings(ctx context.Context, postings []domain.Posting) (int, error) {
	if len(postings) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT OR IGNORE INTO postings (`+postingColumns+`, title_lc, company_lc, description_lc)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, p := range postings {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		res, err := stmt.ExecContext(ctx,
			p.ID.String(), p.Title, p.Company, p.Location,
			domain.Date(p.PostedDate).Format(domain.DateLayout),
			nullFloat(p.SalaryMin), nullFloat(p.SalaryMax),
			p.Description, p.URL, p.Source, string(p.ExperienceLevel),
			p.ScrapedAt.UTC().Format(time.RFC3339),
			strings.ToLower(p.Title), strings.ToLower(p.Company), strings.ToLower(p.Description),
		)
		if err != nil {
			return 0, fmt.Errorf("sqlite: insert posting: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

func (s *Store) FindPostings(ctx context.Context, filter repository.PostingFilter) ([]domain.Posting, error) {
	where, args := whereClause(filter)
	query := `SELECT ` + postingColumns + ` FROM postings` + where + ` ORDER BY posted_date DESC, seq ASC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: find postings: %w", err)
	}
	defer rows.Close()

	var out []domain.Posting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) CountPostings(ctx context.Context, filter repository.PostingFilter) (int, error) {
	where, args := whereClause(filter)
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM postings`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count postings: %w", err)
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
		conds = append(conds, `posted_date >= ?`)
		args = append(args, domain.Date(*filter.Since).Format(domain.DateLayout))
	}
	if text := strings.ToLower(strings.TrimSpace(filter.Text)); text != "" {
		conds = append(conds, `(instr(title_lc, ?) > 0 OR instr(description_lc, ?) > 0)`)
		args = append(args, text, text)
	}
	if filter.WithSalary {
		conds = append(conds, `salary_min IS NOT NULL AND salary_max IS NOT NULL`)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return ` WHERE ` + strings.Join(conds, ` AND `), args
}

func scanPosting(rows *sql.Rows) (domain.Posting, error) {
	var (
		p                    domain.Posting
		id, posted, scraped  string
		level                string
		salaryMin, salaryMax sql.NullFloat64
	)
	if err := rows.Scan(
		&id, &p.Title, &p.Company, &p.Location, &posted,
		&salaryMin, &salaryMax,
		&p.Description, &p.URL, &p.Source, &level, &scraped,
	); err != nil {
		return domain.Posting{}, fmt.Errorf("sqlite: scan posting: %w", err)
	}

	var err error
	if p.ID, err = uuid.Parse(id); err != nil {
		return domain.Posting{}, fmt.Errorf("sqlite: scan posting id %q: %w", id, err)
	}
	if p.PostedDate, err = time.Parse(domain.DateLayout, posted); err != nil {
		return domain.Posting{}, fmt.Errorf("sqlite: scan posting %s posted_date: %w", id, err)
	}
	if p.ScrapedAt, err = time.Parse(time.RFC3339, scraped); err != nil {
		return domain.Posting{}, fmt.Errorf("sqlite: scan posting %s scraped_at: %w", id, err)
	}
	p.ExperienceLevel = domain.ExperienceLevel(level)
	if salaryMin.Valid {
		p.SalaryMin = domain.Float(salaryMin.Float64)
	}
	if salaryMax.Valid {
		p.SalaryMax = domain.Float(salaryMax.Float64)
	}
	return p, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
