package oracle_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripgen/internal/config"
	"tripgen/pkg/utils"
)

var Module = fx.Provide(
	ProvideOracleClient)

// ProvideOracleClient creates the itinerary oracle selected by oracle.provider.
func ProvideOracleClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.OracleClientInterface, error) {
	oc := cfg.Oracle

	logger.Info("initializing itinerary oracle",
		zap.String("provider", oc.Provider),
		zap.String("model", oc.Model()))
	if oc.APIKey() == "" {
		logger.Warn("oracle API key missing, generation requests will fail until it is configured",
			zap.String("provider", oc.Provider))
	}

	client, err := utils.NewOracleClient(oc.Provider, oc.APIKey(), oc.OpenAI.BaseURL, utils.OracleSettings{
		Model:           oc.Model(),
		Temperature:     oc.Temperature,
		TopP:            oc.TopP,
		MaxOutputTokens: oc.MaxOutputTokens,
		Timeout:         oc.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create oracle client: %w", err)
	}

	if closer, ok := client.(interface{ Close() error }); ok {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})
	}
	return client, nil
}
