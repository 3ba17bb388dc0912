package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAuthAcceptance verifies the bearer-token gate across the protected
// surface: no token, a malformed header and an unknown token all map to 401
// with the standard envelope.
func TestAuthAcceptance(t *testing.T) {
	_, router := newTestApplication(t, map[string]string{
		"good-token": "auth0|user",
	})

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{name: "valid token passes the gate", header: "Bearer good-token", expectedStatus: http.StatusOK},
		{name: "missing token", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer bad-token", expectedStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc123", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusUnauthorized {
				var response struct {
					Success bool `json:"success"`
					Error   struct {
						Code string `json:"code"`
					} `json:"error"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.False(t, response.Success)
				assert.Equal(t, "UNAUTHORIZED", response.Error.Code)
			}
		})
	}
}

// TestErrorEnvelopeAcceptance checks that failures come back in the uniform
// envelope and that 500-class details never leak into client responses.
func TestErrorEnvelopeAcceptance(t *testing.T) {
	_, router := newTestApplication(t, map[string]string{
		"token-u1": "u1",
	})

	// 404 with a typed code.
	w := doAuthedJSON(router, http.MethodGet, "/api/v1/bookings/nope", "token-u1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var response struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, "BOOKING_NOT_FOUND", response.Error.Code)
	assert.NotEmpty(t, response.Error.Message)

	// Validation failures itemize fields.
	w = doAuthedJSON(router, http.MethodPost, "/api/v1/users", "token-u1", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var validation struct {
		Error struct {
			Code    string          `json:"code"`
			Details json.RawMessage `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &validation))
	assert.Equal(t, "VALIDATION_ERROR", validation.Error.Code)
	assert.NotEmpty(t, validation.Error.Details)
}
