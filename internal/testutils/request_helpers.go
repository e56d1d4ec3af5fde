package testutils

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/stretchr/testify/require"
)

// CreateTestRequest builds a request carrying a discarding logger and the
// given path values, as if it had been routed by the mux.
func CreateTestRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return req.WithContext(middleware.WithLogger(req.Context(), logger))
}

func JSONBody(t *testing.T, v any) io.Reader {
	t.Helper()

	if s, ok := v.(string); ok {
		return strings.NewReader(s)
	}

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	return strings.NewReader(string(raw))
}

// DecodeResponse decodes the envelope, unmarshalling its data into dest when
// dest is non-nil.
func DecodeResponse(t *testing.T, rr *httptest.ResponseRecorder, dest any) response.APIResponse {
	t.Helper()

	var envelope struct {
		Success bool                    `json:"success"`
		Data    json.RawMessage         `json:"data"`
		Error   *response.ErrorResponse `json:"error"`
	}

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))

	if dest != nil && len(envelope.Data) > 0 {
		require.NoError(t, json.Unmarshal(envelope.Data, dest))
	}

	return response.APIResponse{Success: envelope.Success, Error: envelope.Error}
}
