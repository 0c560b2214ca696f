package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"modelfetch/config"
	"modelfetch/internal/core"
	"modelfetch/internal/telemetry"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type corsMeta struct {
	AllowOrigins  []string `trace:"http.cors.allow_origins"`
	AllowMethods  []string `trace:"http.cors.allow_methods"`
	AllowHeaders  []string `trace:"http.cors.allow_headers"`
	ExposeHeaders []string `trace:"http.cors.expose_headers"`
	AllowCreds    bool     `trace:"http.cors.allow_credentials"`
}

type Cors struct {
	trace *telemetry.Trace
	cfg   cors.Config
}

func NewCors(trace *telemetry.Trace, conf *config.Configuration) *Cors {
	return &Cors{trace: trace, cfg: corsConfig(conf.Cors)}
}

// corsConfig 萬用字元不能搭配 credentials，只有明確列出來源時才允許
func corsConfig(conf config.Cors) cors.Config {
	origins := make([]string, 0, len(conf.AllowOrigins))
	for _, o := range conf.AllowOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	wildcard := len(origins) == 0 || slices.Contains(origins, "*")
	if wildcard {
		origins = []string{"*"}
	}

	cfg := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization", core.HeaderRequestID},
		ExposeHeaders:    []string{core.HeaderRequestID, "X-App-Version", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: !wildcard,
	}
	if conf.MaxAge > 0 {
		cfg.MaxAge = time.Duration(conf.MaxAge) * time.Second
	}
	return cfg
}

// CorsHandler 略過 tracing 的路徑仍要套用 CORS，否則 preflight 會失敗
func (m *Cors) CorsHandler() gin.HandlerFunc {
	corsHandler := cors.New(m.cfg)
	meta := corsMeta{
		AllowOrigins:  m.cfg.AllowOrigins,
		AllowMethods:  m.cfg.AllowMethods,
		AllowHeaders:  m.cfg.AllowHeaders,
		ExposeHeaders: m.cfg.ExposeHeaders,
		AllowCreds:    m.cfg.AllowCredentials,
	}

	return func(c *gin.Context) {
		if isUntracedPath(c.FullPath()) {
			corsHandler(c)
			return
		}
		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanCorsMiddleware))
		defer end(nil)
		m.trace.ApplyTraceAttributes(span, meta)
		corsHandler(c)
	}
}
