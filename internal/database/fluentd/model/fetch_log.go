package model

// FetchLog 每次模型抓取（含排程刷新）一筆
type FetchLog struct {
	RequestID      string   `json:"request_id,omitempty"`
	Trigger        string   `json:"trigger"` // api / provider / cron / cli
	AppType        string   `json:"app_type,omitempty"`
	ProviderID     string   `json:"provider_id,omitempty"`
	BaseURL        string   `json:"base_url"`
	ResolvedURL    string   `json:"resolved_url,omitempty"`
	ElapsedMs      uint64   `json:"elapsed_ms"`
	ModelCount     int      `json:"model_count"`
	Warnings       []string `json:"warnings,omitempty"`
	Outcome        string   `json:"outcome"`
	ErrorCode      int      `json:"error_code,omitempty"`
	ErrorMessage   string   `json:"error_message,omitempty"`
	KeyFingerprint string   `json:"key_fingerprint,omitempty"`
	Version        string   `json:"version,omitempty"`
	LoggedAt       string   `json:"logged_at"`
}
