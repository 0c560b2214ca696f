package middleware

import (
	"context"
	"errors"
	"strconv"

	"modelfetch/config"
	"modelfetch/internal/core"
	"modelfetch/internal/database/redis/repository"
	cErr "modelfetch/internal/pkg/error"
	"modelfetch/internal/pkg/response"
	"modelfetch/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const rateLimitWindowSeconds int64 = 60

type RateConsumer interface {
	Consume(ctx context.Context, subject string, windowSeconds int64, limitCount int) (int, int64, error)
}

type RateLimit struct {
	logger   *zap.Logger
	trace    *telemetry.Trace
	metric   *telemetry.Metric
	limit    int
	consumer RateConsumer
}

func NewRateLimit(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	conf *config.Configuration,
	rateLimiterRepository *repository.RateLimiterRepository,
) *RateLimit {
	return newRateLimit(logger, trace, metric, conf.Fetch.RateLimitPerMinute, rateLimiterRepository)
}

func newRateLimit(logger *zap.Logger, trace *telemetry.Trace, metric *telemetry.Metric, limit int, consumer RateConsumer) *RateLimit {
	return &RateLimit{logger: logger, trace: trace, metric: metric, limit: limit, consumer: consumer}
}

// Guard 以 client IP 為單位的固定視窗限流；limit <= 0 不限流，Redis 失敗時放行
func (middleware *RateLimit) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if middleware.limit <= 0 {
			c.Next()
			return
		}
		ctx, span, end := middleware.trace.WithSpan(middleware.trace.GetTraceContext(c), string(core.SpanRateLimitMiddleware))
		subject := "ip:" + c.ClientIP()
		meta := core.TraceRateLimitMiddlewareMeta{
			Subject:     subject,
			ConfigLimit: middleware.limit,
		}

		remaining, ttlSec, err := middleware.consumer.Consume(ctx, subject, rateLimitWindowSeconds, middleware.limit)
		if err != nil && !errors.Is(err, repository.ErrRateLimitExceeded) {
			meta.Degraded = true
			middleware.trace.ApplyTraceAttributes(span, meta)
			middleware.logger.Warn("rate limiter unavailable, request allowed", zap.String("subject", subject), zap.Error(err))
			end(nil)
			c.Next()
			return
		}

		meta.Remaining = remaining
		meta.TTLSeconds = ttlSec
		meta.Blocked = err != nil
		middleware.trace.ApplyTraceAttributes(span, meta)

		c.Header("X-RateLimit-Limit", strconv.Itoa(middleware.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if ttlSec > 0 {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(ttlSec, 10))
		}

		if meta.Blocked {
			if ttlSec > 0 {
				c.Header("Retry-After", strconv.FormatInt(ttlSec, 10))
			}
			middleware.metric.IncRateLimited(c.FullPath())
			cause := cErr.RateLimitExceeded("rate limit exceeded, please retry later")
			end(nil)
			response.AbortWithError(c, cause)
			return
		}
		end(nil)
		c.Next()
	}
}
