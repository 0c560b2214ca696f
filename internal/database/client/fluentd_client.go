package client

import (
	"context"
	"time"

	"modelfetch/config"

	"github.com/fluent/fluent-logger-golang/fluent"
	"go.uber.org/zap"
)

// Client is a minimal interface to allow mocking in tests.
type Client interface {
	Post(ctx context.Context, tag string, message any) error
	Close() error
}

// FluentdClient implements Client using fluent-logger-golang.
type FluentdClient struct {
	client    *fluent.Fluent
	tagPrefix string
}

// NewFluentdClient 停用時回傳 NoopClient，呼叫端不需判斷
func NewFluentdClient(logger *zap.Logger, config *config.Configuration) (Client, func(), error) {
	if !config.Fluentd.Enabled {
		logger.Info("fluentd disabled, audit logs are dropped")
		return NoopClient{}, func() {}, nil
	}

	prefix := "modelfetch"
	if config.Fluentd.TagPrefix != "" {
		prefix = config.Fluentd.TagPrefix
	}
	var timeout time.Duration
	if config.Fluentd.Timeout > 0 {
		timeout = time.Duration(config.Fluentd.Timeout) * time.Millisecond
	}

	logger.Debug("connecting to fluentd",
		zap.String("host", config.Fluentd.Host),
		zap.Int("port", config.Fluentd.Port),
		zap.String("tagPrefix", prefix),
	)
	fluentLogger, err := fluent.New(fluent.Config{
		FluentHost: config.Fluentd.Host,
		FluentPort: config.Fluentd.Port,
		Timeout:    timeout,
		TagPrefix:  prefix,
		// 連不上 fluentd 時不阻塞請求
		Async: true,
	})
	if err != nil {
		logger.Error("failed to connect to fluentd", zap.Error(err))
		return nil, nil, err
	}
	fluentdClient := &FluentdClient{client: fluentLogger, tagPrefix: prefix}

	cleanup := func() {
		logger.Info("closing the fluentd client")
		if err := fluentdClient.Close(); err != nil {
			logger.Error("failed to close fluentd client", zap.Error(err))
		}
	}
	return fluentdClient, cleanup, nil
}

func (c *FluentdClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Tag builds a tag using the configured TagPrefix and provided suffix.
// e.g. suffix="model_fetch_log" => "modelfetch.model_fetch_log"
func (c *FluentdClient) Tag(suffix string) string {
	if c.tagPrefix == "" {
		return suffix
	}
	return c.tagPrefix + "." + suffix
}

// Post sends a record to Fluentd; fluent.New 已套用 TagPrefix，這裡只給 suffix。
func (c *FluentdClient) Post(ctx context.Context, tag string, message any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.client.Post(tag, message)
}

// NoopClient (disabled mode)
type NoopClient struct{}

func (NoopClient) Post(ctx context.Context, tag string, message any) error { return nil }
func (NoopClient) Close() error                                            { return nil }
