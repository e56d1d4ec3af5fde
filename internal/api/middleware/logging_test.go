package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer

	original := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(original) })

	t.Run("Generates correlation id and records status", func(t *testing.T) {
		buf.Reset()

		var seen *slog.Logger

		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.LoggerFromContext(r.Context())
			w.WriteHeader(http.StatusTeapot)
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

		require.NotNil(t, seen)
		assert.NotEmpty(t, recorder.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, http.StatusTeapot, recorder.Code)
		assert.Contains(t, buf.String(), `"http_status":418`)
		assert.Contains(t, buf.String(), `"level":"WARN"`)
		assert.Contains(t, buf.String(), recorder.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("Keeps caller supplied correlation id", func(t *testing.T) {
		buf.Reset()

		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		assert.Equal(t, "abc-123", recorder.Header().Get(middleware.RequestIDHeader))
		assert.Contains(t, buf.String(), `"correlation_id":"abc-123"`)
	})

	t.Run("Level follows the response status", func(t *testing.T) {
		tests := []struct {
			name   string
			status int
			level  string
		}{
			{"implicit ok", 0, `"level":"INFO"`},
			{"created", http.StatusCreated, `"level":"INFO"`},
			{"not found", http.StatusNotFound, `"level":"WARN"`},
			{"bad gateway", http.StatusBadGateway, `"level":"ERROR"`},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				buf.Reset()

				handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					if tc.status != 0 {
						w.WriteHeader(tc.status)
					}
					_, _ = w.Write([]byte("{}"))
				}))

				handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

				assert.Contains(t, buf.String(), tc.level)
				assert.Contains(t, buf.String(), `"msg":"Request completed"`)
			})
		}
	})

	t.Run("Status after the body has started is ignored", func(t *testing.T) {
		buf.Reset()

		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("partial"))
			w.WriteHeader(http.StatusInternalServerError)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Contains(t, buf.String(), `"http_status":200`)
		assert.NotContains(t, buf.String(), `"level":"ERROR"`)
	})
}

func TestLoggerFromContextFallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, slog.Default(), middleware.LoggerFromContext(req.Context()))
}
