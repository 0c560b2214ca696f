package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"modelfetch/config"
	"modelfetch/internal/database/client"
	fluentdRepo "modelfetch/internal/database/fluentd/repository"
	"modelfetch/internal/handler"
	"modelfetch/internal/middleware"
	"modelfetch/internal/service"
	"modelfetch/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T) (*gin.Engine, *service.HealthService) {
	t.Helper()
	conf := &config.Configuration{}
	conf.App.Env = "test"
	conf.App.Name = "modelfetch"
	conf.App.Version = "1.2.3"
	conf.App.SecretKey = "test-secret"

	logger := zap.NewNop()
	trace := telemetry.NewNoopTrace()
	metric := telemetry.NewMetric(conf)
	logRepository := fluentdRepo.NewLogRepository(conf, client.NoopClient{})
	healthService := service.NewHealthService()

	modelsRouter := NewModelsRouter(
		handler.NewModelsHandler(trace, nil, nil),
		middleware.NewRateLimit(logger, trace, metric, conf, nil),
	)
	adminRouter := NewAdminRouter(
		handler.NewAdminProviderHandler(trace, nil),
		middleware.NewAdmin(logger, trace, conf),
	)
	healthRouter := NewHealthRouter(handler.NewHealthHandler(healthService))

	engine := NewRouter(
		conf,
		middleware.NewTraceEntry(trace, metric, conf),
		middleware.NewRecovery(logger, trace, conf, logRepository),
		middleware.NewCors(trace, conf),
		middleware.NewLogger(logger, trace, conf, logRepository),
		middleware.NewResponse(logger, trace, conf, logRepository),
		adminRouter,
		modelsRouter,
		healthRouter,
	)
	return engine, healthService
}

func TestRoutesRegistered(t *testing.T) {
	engine, _ := newTestEngine(t)

	registered := map[string]bool{}
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"GET /health-check",
		"GET /metrics",
		"GET /health/liveness",
		"GET /health/readiness",
		"POST /models/fetch",
		"GET /models/suggest",
		"GET /v1/providers/:appType/:providerID/models",
		"GET /admin/providers",
		"POST /admin/providers",
		"GET /admin/providers/:appType/:providerID",
		"PUT /admin/providers/:appType/:providerID",
		"DELETE /admin/providers/:appType/:providerID",
		"GET /debug/pprof/",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
	assert.False(t, registered["GET /swagger/*any"])
}

func TestHealthRoutes(t *testing.T) {
	engine, healthService := newTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/liveness", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1.2.3", w.Header().Get("X-App-Version"))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/readiness", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	healthService.SetReady(true)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/readiness", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health-check", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":"ok"`)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/providers", nil)
	req.Header.Set("X-Request-ID", "req-admin-1")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "req-admin-1", w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), `"requestID":"req-admin-1"`)
}
