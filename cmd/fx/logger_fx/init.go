package logger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripgen/internal/config"
	"tripgen/pkg/logger"
)

var Module = fx.Provide(provideLogger)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	l, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	l = l.With(zap.String("service", cfg.App.Name), zap.String("env", cfg.App.Environment))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = l.Sync()
			return nil
		},
	})
	return l, nil
}
