package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
)

func (s *Store) UpsertSkillTrends(ctx context.Context, trends []domain.SkillTrend) error {
	if len(trends) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO skill_trends (skill_name, role, frequency, run_id, last_updated)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(skill_name, role) DO UPDATE SET
  frequency = excluded.frequency,
  run_id = excluded.run_id,
  last_updated = excluded.last_updated;`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, t := range trends {
		if _, err := stmt.ExecContext(ctx,
			t.SkillName, t.Role, t.Frequency, t.RunID, t.LastUpdated.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("sqlite: upsert skill trend %q: %w", t.SkillName, err)
		}
	}

	return tx.Commit()
}

func (s *Store) ListSkillTrends(ctx context.Context, role string, limit int) ([]domain.SkillTrend, error) {
	query := `
SELECT skill_name, role, frequency, run_id, last_updated
FROM skill_trends
WHERE role = ?
ORDER BY frequency DESC, skill_name ASC`
	args := []any{role}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list skill trends: %w", err)
	}
	defer rows.Close()

	var out []domain.SkillTrend
	for rows.Next() {
		var (
			t       domain.SkillTrend
			updated string
		)
		if err := rows.Scan(&t.SkillName, &t.Role, &t.Frequency, &t.RunID, &updated); err != nil {
			return nil, fmt.Errorf("sqlite: scan skill trend: %w", err)
		}
		var err error
		if t.LastUpdated, err = time.Parse(time.RFC3339Nano, updated); err != nil {
			return nil, fmt.Errorf("sqlite: scan skill trend %s/%s last_updated: %w", t.SkillName, t.Role, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
