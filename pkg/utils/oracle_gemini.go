package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

// Travel planning is not a moderation task: the oracle is told to block nothing.
var geminiSafetyProfile = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
}

// contentGenerator is the part of *genai.GenerativeModel the oracle uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiOracle implements OracleClientInterface using Google's Gemini models
type GeminiOracle struct {
	client   *genai.Client
	settings OracleSettings
	newModel func() contentGenerator
}

// NewGeminiOracle creates a Gemini backed oracle. With an empty apiKey no
// client is created and every Invoke fails with ErrOracleUnavailable.
func NewGeminiOracle(ctx context.Context, apiKey string, settings OracleSettings) (*GeminiOracle, error) {
	if settings.Model == "" {
		settings.Model = defaultGeminiModel
	}
	o := &GeminiOracle{settings: settings}
	if strings.TrimSpace(apiKey) == "" {
		return o, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	o.client = client
	o.newModel = func() contentGenerator { return o.configuredModel() }
	return o, nil
}

func (o *GeminiOracle) configuredModel() *genai.GenerativeModel {
	m := o.client.GenerativeModel(o.settings.Model)
	m.ResponseMIMEType = "application/json"
	m.SafetySettings = geminiSafetyProfile
	if o.settings.Temperature > 0 {
		m.SetTemperature(o.settings.Temperature)
	}
	if o.settings.TopP > 0 {
		m.SetTopP(o.settings.TopP)
	}
	if o.settings.MaxOutputTokens > 0 {
		m.SetMaxOutputTokens(o.settings.MaxOutputTokens)
	}
	return m
}

func (o *GeminiOracle) Name() string { return ProviderGemini }

func (o *GeminiOracle) Invoke(ctx context.Context, directive string) (string, error) {
	if o.newModel == nil {
		return "", fmt.Errorf("%w: GEMINI_API_KEY is not configured", ErrOracleUnavailable)
	}

	callCtx, cancel := withOracleTimeout(ctx, o.settings.Timeout)
	defer cancel()

	resp, err := o.newModel().GenerateContent(callCtx, genai.Text(directive))
	if err != nil {
		return "", classifyGeminiError(err)
	}

	return geminiResponseText(resp), nil
}

// classifyGeminiError matches the OpenAI backend: rejected keys are a
// configuration problem, safety blocks are refusals, the rest is transport.
func classifyGeminiError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Errorf("%w: %v", ErrOracleRefused, err)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden) {
		return fmt.Errorf("%w: gemini: %v", ErrOracleUnavailable, err)
	}
	return fmt.Errorf("%w: gemini: %v", ErrOracleTransport, err)
}

// geminiResponseText concatenates the text parts of the first candidate.
// An empty reply is returned as "" and fails later as a malformed payload.
func geminiResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	return text.String()
}

// Close closes the Gemini client
func (o *GeminiOracle) Close() error {
	if o.client == nil {
		return nil
	}
	return o.client.Close()
}
