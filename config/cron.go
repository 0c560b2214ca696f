package config

type Cron struct {
	ModelRefreshEnabled bool `mapstructure:"MODEL_REFRESH_ENABLED" json:"modelRefreshEnabled" yaml:"modelRefreshEnabled"`
	// 六欄位（含秒），例如 "0 */30 * * * *"
	ModelRefreshSpec string `mapstructure:"MODEL_REFRESH_SPEC" json:"modelRefreshSpec" yaml:"modelRefreshSpec"`
}
