package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"modelfetch/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const defaultMongoConnectTimeout = 10 * time.Second

// MongoClient 供應商設定的儲存連線
type MongoClient struct {
	client *mongo.Client
	logger *zap.Logger
}

func NewMongoClient(logger *zap.Logger, config *config.Configuration) (*MongoClient, func(), error) {
	client, err := connectMongo(config)
	if err != nil {
		logger.Error("failed to connect to MongoDB", zap.Error(err))
		return nil, nil, err
	}
	logger.Info("connected to MongoDB", zap.String("database", config.MongoDB.Database))
	mongoClient := &MongoClient{client: client, logger: logger}

	cleanup := func() {
		logger.Info("closing the MongoDB resources")
		if err := mongoClient.Close(); err != nil {
			logger.Error("failed to close MongoDB client", zap.Error(err))
		}
	}
	return mongoClient, cleanup, nil
}

func mongoConnectTimeout(config *config.Configuration) time.Duration {
	if config.MongoDB.ConnectTimeout > 0 {
		return time.Duration(config.MongoDB.ConnectTimeout) * time.Millisecond
	}
	return defaultMongoConnectTimeout
}

func mongoOptions(config *config.Configuration) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(buildMongoURI(config.MongoDB.URI, config.MongoDB.Options)).
		SetConnectTimeout(mongoConnectTimeout(config)).
		SetServerSelectionTimeout(mongoConnectTimeout(config))
	if config.App.Name != "" {
		opts.SetAppName(config.App.Name)
	}
	if config.MongoDB.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(config.MongoDB.MaxPoolSize)
	}
	return opts
}

// connectMongo Connect 本身不建立連線，ping 一次讓設定錯誤在啟動時就失敗
func connectMongo(config *config.Configuration) (*mongo.Client, error) {
	client, err := mongo.Connect(context.Background(), mongoOptions(config))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout(config))
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

func buildMongoURI(baseURI, optionStr string) string {
	optionStr = strings.TrimPrefix(strings.TrimSpace(optionStr), "?")
	if optionStr == "" {
		return baseURI
	}
	if strings.Contains(baseURI, "?") {
		return baseURI + "&" + optionStr
	}
	return baseURI + "?" + optionStr
}

func (m *MongoClient) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

func (m *MongoClient) Client() *mongo.Client {
	return m.client
}
