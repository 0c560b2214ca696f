package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"modelfetch/internal/core"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewTraceEntry,
	NewCors,
	NewLogger,
	NewRecovery,
	NewResponse,
	NewRateLimit,
	NewAdmin,
)

// fluentd 紀錄的時間格式
const logTimeLayout = "2006-01-02 15:04:05.999999 UTC"

// 這些路徑不做 tracing / 紀錄
func isUntracedPath(endpoint string) bool {
	return strings.HasPrefix(endpoint, "/swagger") ||
		strings.HasPrefix(endpoint, "/metrics") ||
		strings.HasPrefix(endpoint, "/version") ||
		strings.HasPrefix(endpoint, "/health-check") ||
		strings.HasPrefix(endpoint, "/debug/pprof")
}

// RequestID 取得（必要時產生）本次請求的 ID
func RequestID(c *gin.Context) string {
	if v, ok := c.Get(core.ContextRequestIDKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	id := strings.TrimSpace(c.GetHeader(core.HeaderRequestID))
	if id == "" || len(id) > 128 {
		generated, err := uuid.NewV7()
		if err != nil {
			generated = uuid.New()
		}
		id = generated.String()
	}
	c.Set(core.ContextRequestIDKey, id)
	c.Header(core.HeaderRequestID, id)
	return id
}

// requestStart 第一個經過的 middleware 記錄開始時間，之後的共用同一個
func requestStart(c *gin.Context) time.Time {
	if v, ok := c.Get(core.ContextRequestStartKey); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	now := time.Now().UTC()
	c.Set(core.ContextRequestStartKey, now)
	return now
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// peerEndpoint 解析 RemoteAddr；無法解析時退回 ClientIP
func peerEndpoint(c *gin.Context) (string, int) {
	host, port, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.ClientIP(), 0
	}
	p, _ := strconv.Atoi(port)
	return host, p
}
