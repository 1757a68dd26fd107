package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"tripgen/internal/models/response_models"
)

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid input", NewPipelineError(StageValidate, ErrInvalidInput, errors.New("destination is required")), http.StatusBadRequest, "Invalid itinerary request"},
		{"unavailable", fmt.Errorf("%w: no key", ErrOracleUnavailable), http.StatusInternalServerError, "Itinerary generator is not available"},
		{"transport", NewPipelineError(StageOracle, ErrOracleTransport, errors.New("timeout")), http.StatusInternalServerError, "Could not reach the itinerary generator, please try again"},
		{"refused", fmt.Errorf("%w: blocked", ErrOracleRefused), http.StatusInternalServerError, "The itinerary generator declined this request"},
		{"malformed", NewPipelineError(StageNormalize, ErrMalformedPayload, errors.New("invalid character 'S'")), http.StatusInternalServerError, "Failed to generate itinerary, please try again"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleServiceError(c, zaptest.NewLogger(t), tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body response_models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Error)
			assert.Equal(t, tt.err.Error(), body.Details)
		})
	}
}
