package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecompass/platform/internal/analysis"
	"github.com/carecompass/platform/internal/assistant"
	"github.com/carecompass/platform/internal/http/handlers"
	"github.com/carecompass/platform/internal/media"
	"github.com/carecompass/platform/internal/observability/metrics"
	"github.com/carecompass/platform/internal/session"
	"github.com/carecompass/platform/pkg/logging"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	registry := prometheus.NewRegistry()
	pipeline := analysis.NewPipeline(nil, metrics.NewInferenceMetrics(registry), logging.Default(), time.Second)
	svc := assistant.NewService(assistant.Config{
		Pipeline:           pipeline,
		Sessions:           session.NewStore(client, time.Hour),
		Samples:            media.NewSampleFetcher(time.Second, 1<<20),
		Logger:             logging.Default(),
		MaxAttachments:     8,
		MaxAttachmentBytes: 1 << 20,
	})

	return New(&Config{
		Logger:             logging.NewWithWriter("error", io.Discard),
		AssistantHandler:   handlers.NewAssistantHandler(svc, logging.Default()),
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: []string{"https://app.example.com"},
	})
}

func TestRouter_HealthEndpoint(t *testing.T) {
	r := newRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	r := newRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_CreateSessionRoute(t *testing.T) {
	r := newRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/sessions", nil))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"view":"landing"`)
}

func TestRouter_UnknownRouteIs404(t *testing.T) {
	r := newRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/clinics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_AppliesCORSHeaders(t *testing.T) {
	r := newRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
