package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

type fakeGenerator struct {
	resp     *genai.GenerateContentResponse
	err      error
	gotParts []genai.Part
	deadline bool
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.gotParts = parts
	_, f.deadline = ctx.Deadline()
	return f.resp, f.err
}

func geminiReply(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: parts}},
		},
	}
}

func newTestGeminiOracle(gen *fakeGenerator, timeout time.Duration) *GeminiOracle {
	return &GeminiOracle{
		settings: OracleSettings{Model: defaultGeminiModel, Timeout: timeout},
		newModel: func() contentGenerator { return gen },
	}
}

func TestGeminiOracle_Invoke(t *testing.T) {
	gen := &fakeGenerator{resp: geminiReply(genai.Text(`{"destination":`), genai.Text(`"Lisbon"}`))}
	oracle := newTestGeminiOracle(gen, time.Minute)

	text, err := oracle.Invoke(context.Background(), "plan a trip")
	require.NoError(t, err)
	assert.Equal(t, `{"destination":"Lisbon"}`, text)
	assert.Equal(t, []genai.Part{genai.Text("plan a trip")}, gen.gotParts)
	assert.True(t, gen.deadline)
	assert.Equal(t, ProviderGemini, oracle.Name())
}

func TestGeminiOracle_EmptyReply(t *testing.T) {
	oracle := newTestGeminiOracle(&fakeGenerator{resp: &genai.GenerateContentResponse{}}, 0)

	text, err := oracle.Invoke(context.Background(), "plan")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestGeminiOracle_Errors(t *testing.T) {
	t.Run("blocked maps to refused", func(t *testing.T) {
		blocked := &genai.BlockedError{PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety}}
		oracle := newTestGeminiOracle(&fakeGenerator{err: blocked}, 0)

		_, err := oracle.Invoke(context.Background(), "plan")
		assert.ErrorIs(t, err, ErrOracleRefused)
	})

	t.Run("other failures map to transport", func(t *testing.T) {
		oracle := newTestGeminiOracle(&fakeGenerator{err: errors.New("googleapi: Error 429: quota exceeded")}, 0)

		_, err := oracle.Invoke(context.Background(), "plan")
		assert.ErrorIs(t, err, ErrOracleTransport)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("rejected key maps to unavailable", func(t *testing.T) {
		for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
			apiErr := &googleapi.Error{Code: code, Message: "API key not valid. Please pass a valid API key."}
			oracle := newTestGeminiOracle(&fakeGenerator{err: fmt.Errorf("generate: %w", apiErr)}, 0)

			_, err := oracle.Invoke(context.Background(), "plan")
			assert.ErrorIs(t, err, ErrOracleUnavailable)
			assert.False(t, IsRetryable(err))
		}
	})

	t.Run("server errors stay transport", func(t *testing.T) {
		oracle := newTestGeminiOracle(&fakeGenerator{err: &googleapi.Error{Code: http.StatusServiceUnavailable}}, 0)

		_, err := oracle.Invoke(context.Background(), "plan")
		assert.ErrorIs(t, err, ErrOracleTransport)
	})

	t.Run("missing key maps to unavailable", func(t *testing.T) {
		oracle, err := NewGeminiOracle(context.Background(), "  ", OracleSettings{})
		require.NoError(t, err)
		assert.Equal(t, defaultGeminiModel, oracle.settings.Model)

		_, err = oracle.Invoke(context.Background(), "plan")
		assert.ErrorIs(t, err, ErrOracleUnavailable)
		assert.NoError(t, oracle.Close())
	})
}

func TestNewOracleClient(t *testing.T) {
	client, err := NewOracleClient("", "", "", OracleSettings{})
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, client.Name())

	client, err = NewOracleClient("OpenAI", "", "", OracleSettings{})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, client.Name())

	_, err = NewOracleClient("claude", "key", "", OracleSettings{})
	assert.Error(t, err)
}
