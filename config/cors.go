package config

type Cors struct {
	// 留空或含 "*" 代表全部允許，此時不送 credentials
	AllowOrigins []string `mapstructure:"ALLOW_ORIGINS" json:"allowOrigins" yaml:"allowOrigins"`
	MaxAge       int64    `mapstructure:"MAX_AGE" json:"maxAge" yaml:"maxAge"` // seconds
}
