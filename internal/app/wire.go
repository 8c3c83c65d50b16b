//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/jobmarket-tracker/internal/config"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/analysis"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/job"
	"github.com/honeycarbs/jobmarket-tracker/internal/export"
	"github.com/honeycarbs/jobmarket-tracker/pkg/logging"
)

// Initialize wires the application for cfg. The cleanup func releases every
// backend connection in reverse order.
func Initialize(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, func(), error) {
	wire.Build(
		// Heuristic tables
		provideHeuristics,
		wire.FieldsOf(new(config.Heuristics), "Lexicon", "Normalizer", "Classifier", "Suggestions"),

		// Infrastructure
		provideGraphClient,
		provideStore,
		providePostings,
		provideCache,
		provideBus,
		providePublisher,
		provideSheets,

		// Providers
		provideProviders,

		// Services
		analysis.NewServiceWithDeps,
		job.NewServiceWithDeps,
		export.NewExporter,

		newApp,
	)

	return &App{}, nil, nil
}
