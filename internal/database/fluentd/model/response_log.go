package model

// ResponseLog 以 request_id 對應 RequestLog
type ResponseLog struct {
	RequestID   string  `json:"request_id"`
	ProjectName string  `json:"project_name,omitempty"`
	Code        int     `json:"code"`
	StatusCode  int     `json:"status_code"`
	DurationMs  float64 `json:"duration_ms"`
	// passthrough 回應不記 body
	Body       string `json:"body,omitempty"`
	Error      string `json:"error,omitempty"`
	Version    string `json:"version,omitempty"`
	ResponseTS string `json:"response_ts"`
	LoggedAt   string `json:"logged_at"`
}
