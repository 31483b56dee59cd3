package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Basics(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "bad input")

	assert.Equal(t, "bad input", err.Error())
	assert.Nil(t, err.Details)

	withDetails := err.WithDetails("field x")
	assert.Equal(t, "field x", withDetails.Details)
	assert.Nil(t, err.Details, "WithDetails must not mutate the receiver")
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		err    *APIError
		status int
		code   string
	}{
		{ErrInvalidRequest, http.StatusBadRequest, "INVALID_REQUEST"},
		{ErrValidationFailed, http.StatusBadRequest, "VALIDATION_FAILED"},
		{ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{ErrPayloadTooLarge, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
		{ErrRateLimitExceeded, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{ErrWebSocketUpgrade, http.StatusInternalServerError, "WEBSOCKET_UPGRADE_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.Equal(t, tt.code, tt.err.ErrorCode)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestFromValidator(t *testing.T) {
	type fileCheck struct {
		Name string `json:"name" validate:"required"`
		Size int64  `json:"size" validate:"gte=0"`
	}

	v := validator.New()

	t.Run("field errors", func(t *testing.T) {
		apiErr := FromValidator(v.Struct(fileCheck{Size: -1}))

		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "VALIDATION_FAILED", apiErr.ErrorCode)

		details, ok := apiErr.Details.(ValidationErrors)
		require.True(t, ok)
		assert.Equal(t, []ValidationError{
			{Field: "Name", Message: "is required"},
			{Field: "Size", Message: "must be greater than or equal to 0"},
		}, details.Errors)
	})

	t.Run("non field error", func(t *testing.T) {
		apiErr := FromValidator(fmt.Errorf("boom"))
		assert.Equal(t, "INVALID_REQUEST", apiErr.ErrorCode)
		assert.Equal(t, "boom", apiErr.Details)
	})
}

func TestWebSocketUpgradeFailed(t *testing.T) {
	apiErr := WebSocketUpgradeFailed(http.StatusForbidden, fmt.Errorf("origin not allowed"))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, ErrWebSocketUpgrade.ErrorCode, apiErr.ErrorCode)
	assert.Equal(t, "origin not allowed", apiErr.Details)
	assert.Nil(t, ErrWebSocketUpgrade.Details)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	NewErrorHandler(nil, false).HandleError(w, r, apiErr)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, TypeWebSocketUpgrade, got["type"])
	assert.Equal(t, "WEBSOCKET_UPGRADE_FAILED", got["error_code"])
	assert.Equal(t, "origin not allowed", got["details"])
	assert.Equal(t, "/ws", got["instance"])

	assert.Nil(t, WebSocketUpgradeFailed(http.StatusBadRequest, nil).Details)
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	pd := NewProblemDetails(http.StatusServiceUnavailable, TypeEnvironmentInvalid, "Environment Invalid", "", "/api/config").
		WithExtension("missing", []string{"API_BASE_URL"}).
		WithExtension("status", 200)

	data, err := json.Marshal(pd)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, float64(503), got["status"], "extensions cannot override standard members")
	assert.Equal(t, TypeEnvironmentInvalid, got["type"])
	assert.Equal(t, "/api/config", got["instance"])
	assert.NotContains(t, got, "detail")
	assert.Equal(t, []any{"API_BASE_URL"}, got["missing"])
}
