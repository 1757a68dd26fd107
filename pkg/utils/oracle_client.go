package utils

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// OracleClientInterface is the external text generator that writes itineraries.
// Invoke performs exactly one call and never retries.
type OracleClientInterface interface {
	Invoke(ctx context.Context, directive string) (string, error)
	Name() string
}

// OracleSettings is the generation profile sent with every call.
type OracleSettings struct {
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
	Timeout         time.Duration
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// NewOracleClient builds the oracle backend for provider. An empty API key
// yields a client whose calls fail with ErrOracleUnavailable, so the service
// still starts and reports the misconfiguration per request.
func NewOracleClient(provider, apiKey, baseURL string, settings OracleSettings) (OracleClientInterface, error) {
	switch strings.ToLower(provider) {
	case ProviderGemini, "":
		oracle, err := NewGeminiOracle(context.Background(), apiKey, settings)
		if err != nil {
			return nil, err
		}
		return oracle, nil
	case ProviderOpenAI:
		return NewOpenAIOracle(apiKey, baseURL, settings), nil
	default:
		return nil, fmt.Errorf("unsupported oracle provider: %s. Use 'openai' or 'gemini'", provider)
	}
}

func withOracleTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
