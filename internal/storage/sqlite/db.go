// Package sqlite stores postings and skill trends in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store implements repository.Store on a single SQLite connection
type Store struct {
	db *sql.DB
}

// Open connects to the database file at path. Use ":memory:" for a scratch database.
func Open(ctx context.Context, path string) (*Store, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// one writer; also keeps ":memory:" on a single shared connection
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate brings the schema to the latest version tracked in PRAGMA user_version
func (s *Store) Migrate(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRowContext(ctx, `PRAGMA user_version;`).Scan(&v); err != nil {
		return fmt.Errorf("sqlite: read schema version: %w", err)
	}

	if v >= schemaVersion {
		return tx.Commit()
	}

	for _, stmt := range schemaV1 {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: migrate: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d;`, schemaVersion)); err != nil {
		return err
	}

	return tx.Commit()
}

const schemaVersion = 1

var schemaV1 = []string{
	`
CREATE TABLE IF NOT EXISTS postings (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  posted_date TEXT NOT NULL,
  salary_min REAL,
  salary_max REAL,
  description TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT '',
  experience_level TEXT NOT NULL DEFAULT '',
  scraped_at TEXT NOT NULL,
  title_lc TEXT NOT NULL,
  company_lc TEXT NOT NULL,
  description_lc TEXT NOT NULL,
  UNIQUE (title_lc, company_lc, posted_date)
);`,
	`CREATE INDEX IF NOT EXISTS idx_postings_posted_date ON postings(posted_date);`,
	`
CREATE TABLE IF NOT EXISTS skill_trends (
  skill_name TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT '',
  frequency INTEGER NOT NULL,
  run_id TEXT NOT NULL DEFAULT '',
  last_updated TEXT NOT NULL,
  PRIMARY KEY (skill_name, role)
);`,
	`CREATE INDEX IF NOT EXISTS idx_skill_trends_role ON skill_trends(role, frequency DESC);`,
}
