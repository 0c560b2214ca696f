package config

// Fetch 控制上游 /models 抓取的共用設定
type Fetch struct {
	UserAgent string `mapstructure:"USER_AGENT" json:"userAgent" yaml:"userAgent"`
	// 成功抓取後模型清單快取秒數（suggest 與排程刷新使用）
	CacheTTLSeconds int64 `mapstructure:"CACHE_TTL_SECONDS" json:"cacheTTLSeconds" yaml:"cacheTTLSeconds"`
	// 每個 client IP 每分鐘可呼叫 /models/fetch 次數，0 代表不限
	RateLimitPerMinute     int `mapstructure:"RATE_LIMIT_PER_MINUTE" json:"rateLimitPerMinute" yaml:"rateLimitPerMinute"`
	MaxIdleConns           int `mapstructure:"MAX_IDLE_CONNS" json:"maxIdleConns" yaml:"maxIdleConns"`
	IdleConnTimeoutSeconds int `mapstructure:"IDLE_CONN_TIMEOUT_SECONDS" json:"idleConnTimeoutSeconds" yaml:"idleConnTimeoutSeconds"`
}
