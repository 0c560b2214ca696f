package core

const (
	ContextTraceKey        = "telemetry_trace_ctx"
	ContextRequestIDKey    = "request_id"
	ContextRequestStartKey = "request_start"
	ContextAdminClaimsKey  = "admin_claims"
	HeaderRequestID        = "X-Request-ID"
)

// ==== 型別安全 span name ====
type TraceSpanName string

const (
	SpanHttpRequest         TraceSpanName = "http_request"
	SpanLoggerMiddleware    TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware  TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware      TraceSpanName = "cors_middleware"
	SpanResponseMiddleware  TraceSpanName = "response_middleware"
	SpanAdminMiddleware     TraceSpanName = "admin_middleware"
	SpanRateLimitMiddleware TraceSpanName = "ratelimit_middleware"
	SpanModelsFetch         TraceSpanName = "models.fetch"
	SpanModelsFetchAttempt  TraceSpanName = "models.fetch.attempt"
	SpanModelRefreshJob     TraceSpanName = "cron.model_refresh"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal       MetricName = "requests_total"
	MetricHttpRequestDuration     MetricName = "request_duration_seconds"
	MetricModelFetchTotal         MetricName = "model_fetch_total"
	MetricModelFetchDuration      MetricName = "model_fetch_duration_seconds"
	MetricModelFetchFallbackTotal MetricName = "model_fetch_fallback_total"
	MetricRateLimitTotal          MetricName = "rate_limited_total"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelReason   MetricLabelName = "reason"
	MetricLabelOutcome  MetricLabelName = "outcome"
	MetricLabelAppType  MetricLabelName = "app_type"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

type TraceHttpServerMeta struct {
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanKind          string `trace:"span.kind"`
	SpanTraceID       string `trace:"span.trace_id"`
	RequestID         string `trace:"http.request.request_id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	Code       int     `trace:"response.code"`
	DurationMs float64 `trace:"response.latency_ms"`
	Data       string  `trace:"response.data_preview"`
}

// 供 Redis 限流 Consume 使用
type TraceRateLimitMeta struct {
	Subject   string `trace:"rl.subject"`
	Limit     int    `trace:"rl.limit_count"`
	WindowSec int64  `trace:"rl.window_sec"`
	Remaining int    `trace:"rl.remaining,omitempty"`
	TTL       int64  `trace:"rl.ttl_sec,omitempty"`
	Op        string `trace:"rl.op"` // "consume" / "get"
}

type TraceRateLimitMiddlewareMeta struct {
	Subject     string `trace:"ratelimit.subject"`
	ConfigLimit int    `trace:"ratelimit.config.limit"`
	Remaining   int    `trace:"ratelimit.remaining"`
	TTLSeconds  int64  `trace:"ratelimit.ttl_sec"`
	Blocked     bool   `trace:"ratelimit.blocked"`
	Degraded    bool   `trace:"ratelimit.degraded"`
}

type TraceAdminMiddlewareMeta struct {
	Username string `trace:"auth.username,omitempty"`
	Role     string `trace:"auth.role,omitempty"`
	ClientIP string `trace:"net.peer.ip,omitempty"`
	Status   string `trace:"auth.status"`
}

// 整體抓取流程
type TraceModelFetchMeta struct {
	AppType        string   `trace:"models.app_type"`
	ProviderID     string   `trace:"models.provider_id,omitempty"`
	BaseURL        string   `trace:"models.base_url"`
	Candidates     []string `trace:"models.candidates"`
	TimeoutSec     float64  `trace:"models.timeout_sec"`
	ResolvedURL    string   `trace:"models.resolved_url,omitempty"`
	ModelCount     int      `trace:"models.count"`
	WarningCount   int      `trace:"models.warning_count"`
	ElapsedMs      uint64   `trace:"models.elapsed_ms"`
	KeyFingerprint string   `trace:"models.key_fingerprint,omitempty"`
}

// 單一候選網址的嘗試
type TraceModelFetchAttemptMeta struct {
	URL             string `trace:"http.url"`
	Index           int    `trace:"models.attempt.index"`
	IsLast          bool   `trace:"models.attempt.is_last"`
	Outcome         string `trace:"models.attempt.outcome"`
	StatusCode      int    `trace:"http.status_code,omitempty"`
	ContentEncoding string `trace:"http.response.content_encoding,omitempty"`
	BodyBytes       int    `trace:"http.response.body_bytes"`
	Fallback        bool   `trace:"models.attempt.fallback"`
}

type TraceProviderMeta struct {
	Op         string `trace:"provider.op"`
	ProviderID string `trace:"provider.id,omitempty"`
	AppType    string `trace:"provider.app_type,omitempty"`
	Count      int    `trace:"result.count,omitempty"`
	Found      bool   `trace:"provider.found"`
}

type TraceModelCacheMeta struct {
	Op         string `trace:"cache.op"`
	Key        string `trace:"cache.key"`
	Count      int    `trace:"cache.count"`
	TTLSeconds int64  `trace:"cache.ttl_sec,omitempty"`
	Hit        bool   `trace:"cache.hit"`
}

type TraceModelRefreshMeta struct {
	Providers int `trace:"refresh.providers"`
	Succeeded int `trace:"refresh.succeeded"`
	Failed    int `trace:"refresh.failed"`
}

type TraceRequestLogMeta struct {
	RequestID   string `trace:"http.request.request_id"`
	Path        string `trace:"http.request.path"`
	Method      string `trace:"http.request.method"`
	ProjectName string `trace:"project.name"`
}
