package middleware

import (
	"strconv"
	"time"

	"modelfetch/config"
	"modelfetch/internal/core"
	"modelfetch/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type TraceEntry struct {
	trace  *telemetry.Trace
	metric *telemetry.Metric
	conf   *config.Configuration
}

func NewTraceEntry(trace *telemetry.Trace, metric *telemetry.Metric, conf *config.Configuration) *TraceEntry {
	return &TraceEntry{trace: trace, metric: metric, conf: conf}
}

// Handler 建立 server span、request ID 與 HTTP 指標
func (m *TraceEntry) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if isUntracedPath(endpoint) {
			c.Next()
			return
		}
		requestID := RequestID(c)

		carrier := propagation.HeaderCarrier(c.Request.Header)
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), carrier)
		spanName := c.Request.Method + " " + endpoint
		ctx, span := m.trace.StartSpanForLayer(ctx, core.TraceSpanName(spanName), trace.WithSpanKind(trace.SpanKindServer))
		c.Request = c.Request.WithContext(ctx)
		c.Set(core.ContextTraceKey, ctx)

		start := requestStart(c)
		peerAddr, peerPort := peerEndpoint(c)

		meta := core.TraceHttpServerMeta{
			ClientAddr:        c.ClientIP(),
			HttpRequestMethod: c.Request.Method,
			HttpRoute:         endpoint,
			UrlPath:           c.Request.URL.Path,
			UrlScheme:         requestScheme(c.Request),
			UserAgent:         c.Request.UserAgent(),
			ServerAddress:     m.conf.App.Name,
			NetworkPeerAddr:   peerAddr,
			NetworkPeerPort:   peerPort,
			NetworkProtoVer:   c.Request.Proto,
			SpanTraceID:       span.SpanContext().TraceID().String(),
			RequestID:         requestID,
		}
		m.trace.ApplyTraceAttributes(span, &meta)

		c.Next()

		meta.HttpStatusCode = c.Writer.Status()
		m.trace.ApplyTraceAttributes(span, &meta)
		m.metric.ObserveRequest(endpoint, strconv.Itoa(meta.HttpStatusCode), time.Since(start))
		m.trace.EndSpan(span, lastError(c, meta.HttpStatusCode))
	}
}

// lastError 只有 4xx/5xx 且有記錄錯誤時才標記 span 失敗
func lastError(c *gin.Context, statusCode int) error {
	if statusCode < 400 || len(c.Errors) == 0 {
		return nil
	}
	return c.Errors.Last().Err
}
