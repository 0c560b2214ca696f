package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"modelfetch/config"
	"modelfetch/internal/core"
	"modelfetch/internal/database/fluentd/model"
	"modelfetch/internal/database/fluentd/repository"
	cErr "modelfetch/internal/pkg/error"
	"modelfetch/internal/pkg/response"
	"modelfetch/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const responsePreviewMax = 2000

// Response 把 handler 透過 response.Success 設定的資料包成統一格式
type Response struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewResponse(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Response {
	return &Response{
		logger:            logger,
		trace:             trace,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

func (middleware *Response) FormatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isUntracedPath(c.FullPath()) {
			c.Next()
			return
		}
		requestID := RequestID(c)
		requestTime := requestStart(c)

		c.Next()

		passthrough := response.IsPassthrough(c)
		// 錯誤交給 Recovery；handler 自己寫出的回應（Raw 除外）不再包裝
		if len(c.Errors) > 0 || (!passthrough && c.Writer.Written()) {
			return
		}

		statusCode := c.Writer.Status()
		if statusCode >= http.StatusBadRequest {
			response.AbortWithError(c, cErr.MapHttpStatusToError(statusCode, "request error"))
			return
		}

		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanResponseMiddleware))
		defer end(nil)

		data, message := response.Payload(c)
		duration := time.Since(requestTime)
		middleware.record(c, span, requestID, statusCode, message, duration)

		// OpenAI 相容格式已由 handler 原樣輸出，body 不進 fluentd
		var body []byte
		if !passthrough {
			body, _ = json.Marshal(data)
		}
		middleware.logResponse(ctx, requestID, statusCode, duration, body)

		if passthrough {
			return
		}
		if err := writeEnvelope(c, statusCode, response.Response{
			RequestID:   requestID,
			Code:        0,
			Data:        data,
			Message:     "OK",
			Description: message,
		}); err != nil {
			response.AbortWithError(c, err)
		}
	}
}

// record 寫 span 屬性與 zap log
func (middleware *Response) record(
	c *gin.Context,
	span trace.Span,
	requestID string,
	statusCode int,
	message string,
	duration time.Duration,
) {
	data, _ := c.Get(response.ContextDataKey)
	middleware.trace.ApplyTraceAttributes(span, core.TraceResponseMeta{
		Path:       c.Request.URL.Path,
		Method:     c.Request.Method,
		Status:     statusCode,
		Message:    message,
		Code:       0,
		DurationMs: float64(duration.Milliseconds()),
		Data:       safePreviewJSON(data, responsePreviewMax),
	})

	sc := span.SpanContext()
	traceID, spanID := sc.TraceID(), sc.SpanID()
	middleware.logger.Info("[Response] "+message,
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", statusCode),
		zap.Duration("duration", duration),
		zap.String("requestId", requestID),
		zap.String("spanId", fmt.Sprintf("%x", spanID[:])),
		zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
	)
}

func (middleware *Response) logResponse(ctx context.Context, requestID string, statusCode int, duration time.Duration, body []byte) {
	err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
		RequestID:   requestID,
		ProjectName: middleware.config.App.Name,
		Code:        0,
		StatusCode:  statusCode,
		DurationMs:  float64(duration.Milliseconds()),
		Body:        toSafePreview(body, bodyPreviewMax),
		ResponseTS:  time.Now().UTC().Format(logTimeLayout),
		Version:     middleware.config.App.Version,
	})
	if err != nil {
		middleware.logger.Debug("send response log failed", zap.Error(err))
	}
}

// writeEnvelope 保留 handler 設定的狀態碼（例如 201）
func writeEnvelope(c *gin.Context, statusCode int, res response.Response) error {
	b, err := json.Marshal(res)
	if err != nil {
		return cErr.InternalServer("marshal response failed")
	}
	c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.Writer.WriteHeader(statusCode)
	if _, err := c.Writer.Write(b); err != nil {
		return cErr.InternalServer("write response failed")
	}
	return nil
}

// safePreviewJSON 序列化成 JSON 並截斷；字串若本身是 JSON 會先正規化
func safePreviewJSON(data any, max int) string {
	var out []byte
	switch v := data.(type) {
	case nil:
		return ""
	case string:
		var js any
		if json.Unmarshal([]byte(v), &js) != nil {
			return truncateRunes(v, max)
		}
		out, _ = json.Marshal(js)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("[marshal error: %v]", err)
		}
		out = b
	}
	return truncateRunes(string(out), max)
}

func truncateRunes(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
