package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripgen/internal/config"
	"tripgen/internal/infra"
	"tripgen/internal/repositories"
)

var Module = fx.Provide(
	provideGenerationLogRepository)

// provideGenerationLogRepository falls back to a no-op ledger when no
// database URL is configured.
func provideGenerationLogRepository(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (repositories.GenerationLogRepositoryInterface, error) {
	if cfg.Database.PostgresURL == "" {
		logger.Info("POSTGRES_URL not set, generation ledger disabled")
		return repositories.NoopGenerationLogRepository{}, nil
	}

	db, err := infra.InitPostgresql(cfg.Database.PostgresURL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db, logger)
			return nil
		},
	})
	return repositories.NewGenerationLogRepository(db), nil
}
