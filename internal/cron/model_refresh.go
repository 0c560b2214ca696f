package cron

import (
	"context"
	"sync/atomic"

	"modelfetch/internal/core"
	mongoModel "modelfetch/internal/database/mongodb/model"
	mongoRepo "modelfetch/internal/database/mongodb/repository"
	"modelfetch/internal/service"
	"modelfetch/internal/service/models"
	"modelfetch/internal/telemetry"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// 同時刷新的供應商數量上限
const modelRefreshConcurrency = 4

type AutoRefreshLister interface {
	ListAutoRefresh(ctx context.Context) ([]*mongoModel.Provider, error)
}

type ProviderFetcher interface {
	FetchForProvider(ctx context.Context, appType core.AppType, providerID string, trigger string, requestID string) (*models.FetchResult, error)
}

// ModelRefreshJob 定期重新抓取 autoRefresh 供應商的模型清單並更新快取
type ModelRefreshJob struct {
	logger  *zap.Logger
	trace   *telemetry.Trace
	lister  AutoRefreshLister
	fetcher ProviderFetcher
}

func NewModelRefreshJob(
	logger *zap.Logger,
	trace *telemetry.Trace,
	providerRepository *mongoRepo.ProviderRepository,
	modelFetchService *service.ModelFetchService,
) *ModelRefreshJob {
	return newModelRefreshJob(logger, trace, providerRepository, modelFetchService)
}

func newModelRefreshJob(logger *zap.Logger, trace *telemetry.Trace, lister AutoRefreshLister, fetcher ProviderFetcher) *ModelRefreshJob {
	return &ModelRefreshJob{logger: logger, trace: trace, lister: lister, fetcher: fetcher}
}

// Run 給 cron 呼叫，錯誤只記 log
func (j *ModelRefreshJob) Run() {
	if err := j.Refresh(context.Background()); err != nil {
		j.logger.Error("model refresh job failed", zap.Error(err))
	}
}

// Refresh 單一供應商失敗不影響其他供應商
func (j *ModelRefreshJob) Refresh(ctx context.Context) (returnedError error) {
	ctx, span, end := j.trace.WithSpan(ctx, string(core.SpanModelRefreshJob))
	defer func() { end(returnedError) }()

	providers, err := j.lister.ListAutoRefresh(ctx)
	if err != nil {
		return err
	}

	var succeeded, failed atomic.Int32
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(modelRefreshConcurrency)
	for _, provider := range providers {
		group.Go(func() error {
			result, err := j.fetcher.FetchForProvider(groupCtx, provider.AppType, provider.ProviderID, service.TriggerCron, "")
			if err != nil {
				failed.Add(1)
				j.logger.Warn("refresh provider models failed",
					zap.String("appType", string(provider.AppType)),
					zap.String("providerId", provider.ProviderID),
					zap.Error(err),
				)
				return nil
			}
			succeeded.Add(1)
			j.logger.Debug("refresh provider models",
				zap.String("appType", string(provider.AppType)),
				zap.String("providerId", provider.ProviderID),
				zap.Int("modelCount", len(result.Models)),
			)
			return nil
		})
	}
	_ = group.Wait()

	j.trace.ApplyTraceAttributes(span, core.TraceModelRefreshMeta{
		Providers: len(providers),
		Succeeded: int(succeeded.Load()),
		Failed:    int(failed.Load()),
	})
	j.logger.Info("model refresh finished",
		zap.Int("providers", len(providers)),
		zap.Int32("succeeded", succeeded.Load()),
		zap.Int32("failed", failed.Load()),
	)
	return nil
}
