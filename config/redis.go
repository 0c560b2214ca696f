package config

type Redis struct {
	Host     string `mapstructure:"HOST" json:"host" yaml:"host"`
	Port     int    `mapstructure:"PORT" json:"port" yaml:"port"`
	Password string `mapstructure:"PASSWORD" json:"password" yaml:"password"`
	DB       int    `mapstructure:"DB" json:"db" yaml:"db"`
	// 0 使用 go-redis 預設值
	PoolSize int `mapstructure:"POOL_SIZE" json:"poolSize" yaml:"poolSize"`
	// 連線與啟動 ping 的逾時（毫秒）
	DialTimeout int64 `mapstructure:"DIAL_TIMEOUT" json:"dialTimeout" yaml:"dialTimeout"`
}
