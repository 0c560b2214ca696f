package client

import (
	"context"
	"fmt"
	"time"

	"modelfetch/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisClient 連接 Redis
type RedisClient struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisClient(logger *zap.Logger, config *config.Configuration) (*RedisClient, func(), error) {
	redisClient := &RedisClient{logger: logger}
	client, err := redisClient.connectDB(config)
	if err != nil {
		logger.Error("failed to connect to Redis", zap.Error(err))
		return nil, nil, err
	}
	logger.Info("Connected to Redis")
	redisClient.client = client

	cleanup := func() {
		logger.Info("closing the Redis resources")
		if err := redisClient.Close(); err != nil {
			logger.Error("failed to close Redis client", zap.Error(err))
		}
	}

	return redisClient, cleanup, nil
}

func redisOptions(config *config.Configuration) *redis.Options {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Redis.Host, config.Redis.Port),
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
		PoolSize: config.Redis.PoolSize,
	}
	if config.Redis.DialTimeout > 0 {
		options.DialTimeout = time.Duration(config.Redis.DialTimeout) * time.Millisecond
	}
	return options
}

func (client *RedisClient) connectDB(config *config.Configuration) (*redis.Client, error) {
	options := redisOptions(config)
	r := redis.NewClient(options)

	pingTimeout := 5 * time.Second
	if options.DialTimeout > 0 {
		pingTimeout = options.DialTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if _, err := r.Ping(ctx).Result(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("ping redis %s: %w", options.Addr, err)
	}
	return r, nil
}

// Close 關閉 Redis 連線
func (redisClient *RedisClient) Close() error {
	return redisClient.client.Close()
}

// Client 回傳 Redis 連線
func (redisClient *RedisClient) Client() *redis.Client {
	return redisClient.client
}
