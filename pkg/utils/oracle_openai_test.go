package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAIServer(t *testing.T, status int, body string, inspect func(req openai.ChatCompletionRequest)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if inspect != nil {
			inspect(req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func completionBody(content, finishReason string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finishReason,
			},
		},
	})
	return string(b)
}

func TestOpenAIOracle_Invoke(t *testing.T) {
	srv := newOpenAIServer(t, http.StatusOK, completionBody(`{"destination":"Rome"}`, "stop"), func(req openai.ChatCompletionRequest) {
		assert.Equal(t, openai.GPT4oMini, req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "plan a trip", req.Messages[0].Content)
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)
	})

	oracle := NewOpenAIOracle("test-key", srv.URL+"/v1", OracleSettings{Timeout: 5 * time.Second})
	text, err := oracle.Invoke(context.Background(), "plan a trip")
	require.NoError(t, err)
	assert.Equal(t, `{"destination":"Rome"}`, text)
	assert.Equal(t, ProviderOpenAI, oracle.Name())
}

func TestOpenAIOracle_ContentFilter(t *testing.T) {
	srv := newOpenAIServer(t, http.StatusOK, completionBody("", string(openai.FinishReasonContentFilter)), nil)

	oracle := NewOpenAIOracle("test-key", srv.URL+"/v1", OracleSettings{})
	_, err := oracle.Invoke(context.Background(), "plan")
	assert.ErrorIs(t, err, ErrOracleRefused)
}

func TestOpenAIOracle_HTTPErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{
			name:   "bad key",
			status: http.StatusUnauthorized,
			body:   `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`,
			want:   ErrOracleUnavailable,
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`,
			want:   ErrOracleTransport,
		},
		{
			name:   "policy violation",
			status: http.StatusBadRequest,
			body:   `{"error":{"message":"rejected","type":"invalid_request_error","code":"content_policy_violation"}}`,
			want:   ErrOracleRefused,
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"error":{"message":"internal","type":"server_error","code":null}}`,
			want:   ErrOracleTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newOpenAIServer(t, tt.status, tt.body, nil)
			oracle := NewOpenAIOracle("test-key", srv.URL+"/v1", OracleSettings{})

			_, err := oracle.Invoke(context.Background(), "plan")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOpenAIOracle_MissingKey(t *testing.T) {
	oracle := NewOpenAIOracle("", "", OracleSettings{})
	_, err := oracle.Invoke(context.Background(), "plan")
	assert.ErrorIs(t, err, ErrOracleUnavailable)
}
