package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogStatus bool

func (c catalogStatus) Loaded() bool { return bool(c) }

func check(t *testing.T, loaded bool) map[string]any {
	t.Helper()

	cfg := &config.Config{Storage: config.Storage{Driver: config.StorageDriverMemory}}

	h, err := health.NewHealthHandler(cfg, catalogStatus(loaded))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestHealthCatalogLoaded(t *testing.T) {
	body := check(t, true)

	assert.Equal(t, "OK", body["status"])
}

func TestHealthCatalogMissingIsPartial(t *testing.T) {
	body := check(t, false)

	assert.Equal(t, "Partially Available", body["status"])
	failures, ok := body["failures"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, failures, "catalog")
}
