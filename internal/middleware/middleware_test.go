package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"modelfetch/config"
	"modelfetch/internal/core"
	"modelfetch/internal/database/client"
	"modelfetch/internal/database/fluentd/repository"
	redisRepo "modelfetch/internal/database/redis/repository"
	"modelfetch/internal/pkg/auth"
	cErr "modelfetch/internal/pkg/error"
	"modelfetch/internal/pkg/response"
	"modelfetch/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Configuration {
	conf := &config.Configuration{}
	conf.App.Name = "modelfetch"
	conf.App.Version = "test"
	conf.App.SecretKey = "middleware-secret"
	return conf
}

// newTestEngine 依正式順序掛上 recovery / response
func newTestEngine(conf *config.Configuration) *gin.Engine {
	trace := telemetry.NewNoopTrace()
	logRepository := repository.NewLogRepository(conf, client.NoopClient{})
	engine := gin.New()
	engine.Use(
		NewTraceEntry(trace, &telemetry.Metric{}, conf).Handler(),
		NewRecovery(zap.NewNop(), trace, conf, logRepository).ErrorHandler(),
		NewResponse(zap.NewNop(), trace, conf, logRepository).FormatHandler(),
	)
	return engine
}

func decodeEnvelope(t *testing.T, body []byte) response.Response {
	t.Helper()
	var out response.Response
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestResponseWrapsSuccess(t *testing.T) {
	engine := newTestEngine(testConfig())
	engine.GET("/ok", func(c *gin.Context) { response.Success(c, gin.H{"value": 1}) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(core.HeaderRequestID, "req-123")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "req-123", env.RequestID)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, map[string]any{"value": float64(1)}, env.Data)
	assert.Equal(t, "req-123", w.Header().Get(core.HeaderRequestID))
}

func TestResponsePassthroughRaw(t *testing.T) {
	engine := newTestEngine(testConfig())
	engine.GET("/raw", func(c *gin.Context) { response.Raw(c, http.StatusOK, gin.H{"object": "list"}) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/raw", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"object":"list"}`, w.Body.String())
}

func TestRecoveryRendersAppError(t *testing.T) {
	engine := newTestEngine(testConfig())
	engine.GET("/fail", func(c *gin.Context) {
		response.AbortWithError(c, cErr.UpstreamAuthFailed("authentication failed (HTTP 401)"))
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, cErr.UPSTREAM_AUTH_FAILED, env.Code)
	assert.Equal(t, "authentication failed (HTTP 401)", env.Description)
	assert.NotEmpty(t, env.RequestID)
}

func TestRecoveryHandlesPanic(t *testing.T) {
	engine := newTestEngine(testConfig())
	engine.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, cErr.INTERNAL_ERROR, decodeEnvelope(t, w.Body.Bytes()).Code)
}

func TestRequestIDGeneratedWhenMissingOrTooLong(t *testing.T) {
	engine := newTestEngine(testConfig())
	engine.GET("/id", func(c *gin.Context) { response.Success(c, gin.H{"id": RequestID(c)}) })

	for _, header := range []string{"", strings.Repeat("x", 200)} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		if header != "" {
			req.Header.Set(core.HeaderRequestID, header)
		}
		engine.ServeHTTP(w, req)

		id := w.Header().Get(core.HeaderRequestID)
		assert.Len(t, id, 36)
		assert.Equal(t, map[string]any{"id": id}, decodeEnvelope(t, w.Body.Bytes()).Data)
	}
}

type stubConsumer struct {
	remaining int
	ttl       int64
	err       error
	subjects  []string
}

func (s *stubConsumer) Consume(ctx context.Context, subject string, windowSeconds int64, limitCount int) (int, int64, error) {
	s.subjects = append(s.subjects, subject)
	return s.remaining, s.ttl, s.err
}

func newRateLimitedEngine(limit int, consumer RateConsumer) *gin.Engine {
	engine := newTestEngine(testConfig())
	rl := newRateLimit(zap.NewNop(), telemetry.NewNoopTrace(), &telemetry.Metric{}, limit, consumer)
	engine.POST("/models/fetch", rl.Guard(), func(c *gin.Context) { response.Success(c, gin.H{}) })
	return engine
}

func TestRateLimitAllows(t *testing.T) {
	consumer := &stubConsumer{remaining: 9, ttl: 60}
	engine := newRateLimitedEngine(10, consumer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/models/fetch", nil)
	req.RemoteAddr = "10.0.0.7:4567"
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "9", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, []string{"ip:10.0.0.7"}, consumer.subjects)
}

func TestRateLimitBlocks(t *testing.T) {
	engine := newRateLimitedEngine(10, &stubConsumer{remaining: 0, ttl: 42, err: redisRepo.ErrRateLimitExceeded})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/models/fetch", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "42", w.Header().Get("Retry-After"))
	assert.Equal(t, cErr.RATE_LIMIT_EXCEEDED, decodeEnvelope(t, w.Body.Bytes()).Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	engine := newRateLimitedEngine(10, &stubConsumer{err: errors.New("redis down")})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/models/fetch", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	consumer := &stubConsumer{err: redisRepo.ErrRateLimitExceeded}
	engine := newRateLimitedEngine(0, consumer)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/models/fetch", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, consumer.subjects)
}

func TestAdminMiddleware(t *testing.T) {
	conf := testConfig()
	engine := newTestEngine(conf)
	admin := NewAdmin(zap.NewNop(), telemetry.NewNoopTrace(), conf)
	handler := func(c *gin.Context) {
		claims, _ := c.Get(core.ContextAdminClaimsKey)
		response.Success(c, gin.H{"user": claims.(*core.AdminClaims).Username})
	}
	engine.GET("/admin/providers", admin.Handler(), handler)
	engine.POST("/admin/providers", admin.Handler(), handler)

	adminToken, err := auth.IssueAdminToken(conf.App.SecretKey, "ops", core.RoleAdmin, time.Hour)
	require.NoError(t, err)
	readOnlyToken, err := auth.IssueAdminToken(conf.App.SecretKey, "viewer", core.RoleReadOnly, time.Hour)
	require.NoError(t, err)
	otherToken, err := auth.IssueAdminToken("other-secret", "ops", core.RoleAdmin, time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		method string
		auth   string
		status int
		code   int
	}{
		{"missing token", http.MethodGet, "", http.StatusUnauthorized, cErr.UNAUTHORIZED},
		{"wrong scheme", http.MethodGet, "Basic abc", http.StatusUnauthorized, cErr.UNAUTHORIZED},
		{"bad signature", http.MethodGet, "Bearer " + otherToken, http.StatusUnauthorized, cErr.INVALID_TOKEN},
		{"readonly may read", http.MethodGet, "Bearer " + readOnlyToken, http.StatusOK, 0},
		{"readonly may not write", http.MethodPost, "Bearer " + readOnlyToken, http.StatusForbidden, cErr.FORBIDDEN},
		{"admin may write", http.MethodPost, "Bearer " + adminToken, http.StatusOK, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, "/admin/providers", nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			engine.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decodeEnvelope(t, w.Body.Bytes()).Code)
		})
	}
}

func TestRedaction(t *testing.T) {
	header := http.Header{}
	header.Set("Authorization", "Bearer sk-live")
	header.Set("Content-Type", "application/json")
	headers := redactHeaders(header)
	assert.Equal(t, redacted, headers["authorization"])
	assert.Equal(t, "application/json", headers["content-type"])

	body := redactJSONBody([]byte(`{"baseUrl":"https://x","apiKey":"sk-live","proxyConfig":{"password":"p","url":"http://proxy"}}`), bodyPreviewMax)
	assert.NotContains(t, body, "sk-live")
	assert.NotContains(t, body, `"p"`)
	assert.Contains(t, body, "https://x")
	assert.Contains(t, body, "http://proxy")

	assert.Equal(t, "not json", redactJSONBody([]byte("not json"), bodyPreviewMax))
	assert.Equal(t, "api_key=[REDACTED]&q=gpt", redactQuery(map[string][]string{"q": {"gpt"}, "api_key": {"sk"}}))
}

func TestLoggerKeepsBodyForHandler(t *testing.T) {
	conf := testConfig()
	engine := newTestEngine(conf)
	logger := NewLogger(zap.NewNop(), telemetry.NewNoopTrace(), conf, repository.NewLogRepository(conf, client.NoopClient{}))
	engine.POST("/echo", logger.LoggerHandler(), func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			response.AbortWithError(c, cErr.ValidateErr(err.Error()))
			return
		}
		response.Success(c, body)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"apiKey":"sk-live"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"apiKey": "sk-live"}, decodeEnvelope(t, w.Body.Bytes()).Data)
}

func TestCorsConfig(t *testing.T) {
	cfg := corsConfig(config.Cors{})
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.False(t, cfg.AllowCredentials)

	cfg = corsConfig(config.Cors{AllowOrigins: []string{" https://admin.example.com/ ", ""}, MaxAge: 600})
	assert.Equal(t, []string{"https://admin.example.com"}, cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)
	assert.Equal(t, 10*time.Minute, cfg.MaxAge)
}

func TestCorsPreflight(t *testing.T) {
	conf := testConfig()
	conf.Cors.AllowOrigins = []string{"https://admin.example.com"}
	engine := gin.New()
	engine.Use(NewCors(telemetry.NewNoopTrace(), conf).CorsHandler())
	engine.POST("/models/fetch", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/models/fetch", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
