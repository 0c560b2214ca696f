package cron

import (
	"context"

	"modelfetch/config"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron, NewModelRefreshJob)

const defaultModelRefreshSpec = "0 */30 * * * *"

type Cron struct {
	logger          *zap.Logger
	server          *cron.Cron
	conf            *config.Configuration
	modelRefreshJob *ModelRefreshJob
}

// NewCron .
func NewCron(logger *zap.Logger, conf *config.Configuration, modelRefreshJob *ModelRefreshJob) *Cron {
	server := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	return &Cron{
		logger:          logger,
		server:          server,
		conf:            conf,
		modelRefreshJob: modelRefreshJob,
	}
}

func (c *Cron) Run() error {
	if c.conf.Cron.ModelRefreshEnabled {
		spec := c.conf.Cron.ModelRefreshSpec
		if spec == "" {
			spec = defaultModelRefreshSpec
		}
		if _, err := c.server.AddJob(spec, c.modelRefreshJob); err != nil {
			return err
		}
		c.logger.Info("model refresh job scheduled", zap.String("spec", spec))
	}

	c.server.Start()
	return nil
}

func (c *Cron) Stop(ctx context.Context) error {
	stopped := c.server.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
