package config

type MongoDB struct {
	URI      string `mapstructure:"URI" json:"uri" yaml:"uri"`
	Options  string `mapstructure:"OPTIONS" json:"options" yaml:"options"`
	Database string `mapstructure:"DATABASE" json:"database" yaml:"database"`
	// 0 使用 driver 預設值
	MaxPoolSize uint64 `mapstructure:"MAX_POOL_SIZE" json:"maxPoolSize" yaml:"maxPoolSize"`
	// 連線與啟動 ping 的逾時（毫秒）
	ConnectTimeout int64 `mapstructure:"CONNECT_TIMEOUT" json:"connectTimeout" yaml:"connectTimeout"`
}
