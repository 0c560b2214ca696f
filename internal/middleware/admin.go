package middleware

import (
	"net/http"
	"strings"

	"modelfetch/config"
	"modelfetch/internal/core"
	"modelfetch/internal/pkg/auth"
	cErr "modelfetch/internal/pkg/error"
	"modelfetch/internal/pkg/response"
	"modelfetch/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Admin struct {
	logger    *zap.Logger
	trace     *telemetry.Trace
	secretKey string
}

func NewAdmin(logger *zap.Logger, trace *telemetry.Trace, conf *config.Configuration) *Admin {
	return &Admin{logger: logger, trace: trace, secretKey: conf.App.SecretKey}
}

// Handler 驗證 Bearer JWT；寫入操作需要 admin 角色
func (m *Admin) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span, end := m.trace.WithSpan(m.trace.GetTraceContext(c), string(core.SpanAdminMiddleware))
		meta := core.TraceAdminMiddlewareMeta{ClientIP: c.ClientIP()}

		abort := func(status string, cause error) {
			meta.Status = status
			m.trace.ApplyTraceAttributes(span, meta)
			end(cause)
			response.AbortWithError(c, cause)
		}

		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			abort("missing_token", cErr.Unauthorized("missing bearer token"))
			return
		}

		claims, err := auth.ParseAdminToken(m.secretKey, token)
		if err != nil {
			m.logger.Debug("admin token rejected", zap.Error(err))
			abort("invalid_token", cErr.InvalidToken("invalid or expired token"))
			return
		}
		meta.Username = claims.Username
		meta.Role = string(claims.Role)

		if c.Request.Method != http.MethodGet && claims.Role != core.RoleAdmin {
			abort("forbidden", cErr.Forbidden("admin role required"))
			return
		}

		meta.Status = "success"
		m.trace.ApplyTraceAttributes(span, meta)
		c.Set(core.ContextAdminClaimsKey, claims)
		end(nil)
		c.Next()
	}
}
