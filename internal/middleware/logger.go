package middleware

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"modelfetch/config"
	"modelfetch/internal/core"
	"modelfetch/internal/database/fluentd/model"
	"modelfetch/internal/database/fluentd/repository"
	"modelfetch/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	bodyPreviewMax = 2000
	redacted       = "[REDACTED]"
)

// key 正規化（小寫、去掉 _ 與 -）後比對
var sensitiveKeys = map[string]struct{}{
	"apikey":             {},
	"password":           {},
	"authorization":      {},
	"proxyauthorization": {},
	"secret":             {},
	"secretkey":          {},
	"token":              {},
	"xapikey":            {},
}

type Logger struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewLogger(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Logger {
	return &Logger{
		logger:            logger,
		trace:             trace,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

// LoggerHandler 記錄每個請求（API key / 密碼等欄位先遮蔽；二進位 body 不讀）
func (m *Logger) LoggerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if isUntracedPath(endpoint) {
			c.Next()
			return
		}

		ctx, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanLoggerMiddleware))

		requestTime := requestStart(c)

		mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
		var bodyRaw string
		if isBinaryContent(mediaType) {
			if c.Request.ContentLength > 0 {
				bodyRaw = fmt.Sprintf("(binary %s, %d bytes)", mediaType, c.Request.ContentLength)
			} else {
				bodyRaw = fmt.Sprintf("(binary %s)", mediaType)
			}
		} else if c.Request.Body != nil && c.Request.ContentLength != 0 {
			// 讀完整 body 後回填，確保下游仍可讀取
			data, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(data))
			if strings.HasPrefix(mediaType, "application/json") {
				bodyRaw = redactJSONBody(data, bodyPreviewMax)
			} else {
				bodyRaw = toSafePreview(data, bodyPreviewMax)
			}
		}

		method := c.Request.Method
		path := c.Request.URL.Path
		query := redactQuery(c.Request.URL.Query())
		requestID := RequestID(c)
		traceID := span.SpanContext().TraceID()
		spanID := span.SpanContext().SpanID()

		headerMap := redactHeaders(c.Request.Header)
		paramsMap := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			paramsMap[p.Key] = p.Value
		}

		m.trace.ApplyTraceAttributes(span, core.LoggerRequestMeta{
			Method:     method,
			Path:       path,
			FullPath:   endpoint,
			Query:      query,
			Body:       bodyRaw,
			Host:       c.Request.Host,
			UserAgent:  c.Request.UserAgent(),
			ContentLen: c.Request.ContentLength,
			Proto:      c.Request.Proto,
			ClientIP:   c.ClientIP(),
			Headers:    headerMap,
			Params:     paramsMap,
		})
		m.trace.ApplyTraceAttributes(span, core.TraceRequestLogMeta{
			RequestID:   requestID,
			Path:        path,
			Method:      method,
			ProjectName: m.config.App.Name,
		})

		logFields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Any("headers", headerMap),
			zap.String("requestId", requestID),
		}
		if query != "" {
			logFields = append(logFields, zap.String("query", query))
		}
		if len(paramsMap) > 0 {
			logFields = append(logFields, zap.Any("params", paramsMap))
		}
		if bodyRaw != "" {
			logFields = append(logFields, zap.String("body", bodyRaw))
		}
		logFields = append(logFields, zap.String("spanId", fmt.Sprintf("%x", spanID[:])))
		logFields = append(logFields, zap.String("traceId", fmt.Sprintf("%x", traceID[:])))

		m.logger.Info("[Request] logging middleware message", logFields...)

		if err := m.fluentdRepository.LogRequest(ctx, model.RequestLog{
			RequestID:   requestID,
			TraceID:     traceID.String(),
			Method:      method,
			Path:        path,
			Route:       endpoint,
			Query:       query,
			ProjectName: m.config.App.Name,
			RequestTS:   requestTime.UTC().Format(logTimeLayout),
			Body:        bodyRaw,
			IPHash:      base64.RawStdEncoding.EncodeToString([]byte(c.ClientIP())),
			UserAgent:   c.Request.UserAgent(),
			Version:     m.config.App.Version,
		}); err != nil {
			m.logger.Debug("send request log failed", zap.Error(err))
		}
		end(nil)
		c.Next()
	}
}

func isSensitiveKey(key string) bool {
	normalized := strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(key))
	_, ok := sensitiveKeys[normalized]
	return ok
}

// redactHeaders headers → map（lowercase key），敏感 header 遮蔽
func redactHeaders(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	for k, v := range header {
		lk := strings.ToLower(k)
		if isSensitiveKey(lk) {
			out[lk] = redacted
			continue
		}
		out[lk] = strings.Join(v, ",")
	}
	return out
}

func redactQuery(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, 0, len(values))
	for k, v := range values {
		if isSensitiveKey(k) {
			parts = append(parts, k+"="+redacted)
			continue
		}
		parts = append(parts, k+"="+strings.Join(v, ","))
	}
	sort.Strings(parts)
	return strings.Join(parts, "&")
}

// redactJSONBody 遞迴遮蔽敏感欄位；無法解析時退回一般預覽
func redactJSONBody(data []byte, max int) string {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return toSafePreview(data, max)
	}
	b, err := json.Marshal(redactValue(decoded))
	if err != nil {
		return toSafePreview(data, max)
	}
	return toSafePreview(b, max)
}

func redactValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, inner := range val {
			if isSensitiveKey(k) {
				if inner != nil && inner != "" {
					val[k] = redacted
				}
				continue
			}
			val[k] = redactValue(inner)
		}
		return val
	case []any:
		for i := range val {
			val[i] = redactValue(val[i])
		}
		return val
	default:
		return v
	}
}

// 僅對文字內容做安全預覽：UTF-8 直接截斷；非 UTF-8 以 Base64 表示
func toSafePreview(b []byte, max int) string {
	if len(b) == 0 {
		return ""
	}
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

// 是否為二進位內容（不讀 body）
func isBinaryContent(mediaType string) bool {
	return strings.HasPrefix(mediaType, "multipart/") ||
		strings.HasPrefix(mediaType, "image/") ||
		strings.HasPrefix(mediaType, "audio/") ||
		strings.HasPrefix(mediaType, "video/") ||
		mediaType == "application/octet-stream"
}
