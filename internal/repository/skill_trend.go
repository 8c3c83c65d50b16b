package repository

import (
	"context"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
)

// SkillTrendRepository persists skill frequencies keyed by (skill_name, role)
type SkillTrendRepository interface {
	// UpsertSkillTrends overwrites frequency for existing keys; atomic per key
	UpsertSkillTrends(ctx context.Context, trends []domain.SkillTrend) error
	// ListSkillTrends returns rows for role ordered by frequency desc, then name
	ListSkillTrends(ctx context.Context, role string, limit int) ([]domain.SkillTrend, error)
}

// Store bundles the repositories of one backend
type Store interface {
	PostingRepository
	SkillTrendRepository
	Migrate(ctx context.Context) error
	Close() error
}
