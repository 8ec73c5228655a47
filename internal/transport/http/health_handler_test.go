package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "strikingdistance/internal/errors"
	"strikingdistance/internal/services"
)

func TestHealthHandler_Routes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHealthHandler(services.NewHealthService("1.0.0", "", t.TempDir(), logger), logger)

	tests := []struct {
		path       string
		wantStatus string
	}{
		{"/", "ok"},
		{"/ready", "ready"},
		{"/live", "alive"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, http.StatusOK, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body["status"])
			assert.Equal(t, "1.0.0", body["version"])
		})
	}
}

func TestHealthHandler_NotReady(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone")
	h := NewHealthHandler(services.NewHealthService("1.0.0", "", missing, nil), nil)

	rec := httptest.NewRecorder()
	h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_ready")
}

func TestHealthHandler_Version(t *testing.T) {
	h := NewHealthHandler(services.NewHealthService("2.0.0", "", "", nil), nil)

	rec := httptest.NewRecorder()
	h.Version(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":"2.0.0"`)
}

func TestMetricsHandler(t *testing.T) {
	errorHandler := apierrors.NewErrorHandler(nil, false)

	t.Run("disabled", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewMetricsHandler(nil, errorHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error_code":"SERVICE_UNAVAILABLE"`)
	})

	t.Run("delegates", func(t *testing.T) {
		prom := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("pipeline_runs_total 1\n"))
		})
		rec := httptest.NewRecorder()
		NewMetricsHandler(prom, errorHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "pipeline_runs_total")
	})
}
