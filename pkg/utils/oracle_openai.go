package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIOracle implements OracleClientInterface with the chat completions API
// in JSON-object mode.
type OpenAIOracle struct {
	client   *openai.Client
	settings OracleSettings
}

func NewOpenAIOracle(apiKey, baseURL string, settings OracleSettings) *OpenAIOracle {
	if settings.Model == "" {
		settings.Model = openai.GPT4oMini
	}
	o := &OpenAIOracle{settings: settings}
	if strings.TrimSpace(apiKey) == "" {
		return o
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	o.client = openai.NewClientWithConfig(cfg)
	return o
}

func (o *OpenAIOracle) Name() string { return ProviderOpenAI }

func (o *OpenAIOracle) Invoke(ctx context.Context, directive string) (string, error) {
	if o.client == nil {
		return "", fmt.Errorf("%w: OPENAI_API_KEY is not configured", ErrOracleUnavailable)
	}

	callCtx, cancel := withOracleTimeout(ctx, o.settings.Timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: o.settings.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: directive},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: o.settings.Temperature,
		TopP:        o.settings.TopP,
		MaxTokens:   int(o.settings.MaxOutputTokens),
	}

	resp, err := o.client.CreateChatCompletion(callCtx, req)
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return "", fmt.Errorf("%w: openai finish_reason=content_filter", ErrOracleRefused)
	}
	return choice.Message.Content, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: openai: %v", ErrOracleUnavailable, err)
		case apiErr.Code == "content_policy_violation" || apiErr.Code == "content_filter":
			return fmt.Errorf("%w: openai: %v", ErrOracleRefused, err)
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == http.StatusUnauthorized || reqErr.HTTPStatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: openai: %v", ErrOracleUnavailable, err)
		}
	}
	return fmt.Errorf("%w: openai: %v", ErrOracleTransport, err)
}
