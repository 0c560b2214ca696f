package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"modelfetch/config"
	"modelfetch/internal/core"
	fluentdModel "modelfetch/internal/database/fluentd/model"
	mongoModel "modelfetch/internal/database/mongodb/model"
	redisModel "modelfetch/internal/database/redis/model"
	cErr "modelfetch/internal/pkg/error"
	"modelfetch/internal/pkg/httpclient"
	"modelfetch/internal/service/models"
	"modelfetch/internal/telemetry"
	"modelfetch/utils/apikey"

	"go.uber.org/zap"
)

const defaultModelCacheTTL = time.Hour

// 抓取來源，寫入 FetchLog.trigger
const (
	TriggerAPI      = "api"
	TriggerProvider = "provider"
	TriggerCron     = "cron"
	TriggerCLI      = "cli"
)

type ProviderLookup interface {
	Get(ctx context.Context, appType core.AppType, providerID string) (*mongoModel.Provider, error)
}

type ClientFactory interface {
	Default() *http.Client
	ForProxy(proxy *httpclient.Proxy) (*http.Client, error)
}

type ModelCache interface {
	Save(ctx context.Context, appType core.AppType, providerID string, cached redisModel.CachedModels, ttl time.Duration) error
	Load(ctx context.Context, appType core.AppType, providerID string) (*redisModel.CachedModels, error)
	Delete(ctx context.Context, appType core.AppType, providerID string) error
}

type FetchAuditor interface {
	LogFetch(ctx context.Context, fetchLog fluentdModel.FetchLog) error
}

// FetchParams 一次抓取的輸入；ProviderID 有值時使用該供應商的代理設定並寫入快取
type FetchParams struct {
	AppType     core.AppType
	ProviderID  *string
	BaseURL     string
	APIKey      string
	TimeoutSecs *int
	Trigger     string
	RequestID   string

	// FetchForProvider 已載入的供應商，避免重複查詢
	provider *mongoModel.Provider
}

type ModelFetchService struct {
	trace     *telemetry.Trace
	metric    *telemetry.Metric
	logger    *zap.Logger
	fetcher   *models.Fetcher
	providers ProviderLookup
	clients   ClientFactory
	cache     ModelCache
	auditor   FetchAuditor
	secretKey string
	cacheTTL  time.Duration
}

func NewModelFetchService(
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	logger *zap.Logger,
	conf *config.Configuration,
	fetcher *models.Fetcher,
	providers ProviderLookup,
	clients ClientFactory,
	cache ModelCache,
	auditor FetchAuditor,
) *ModelFetchService {
	cacheTTL := defaultModelCacheTTL
	if conf.Fetch.CacheTTLSeconds > 0 {
		cacheTTL = time.Duration(conf.Fetch.CacheTTLSeconds) * time.Second
	}
	return &ModelFetchService{
		trace:     trace,
		metric:    metric,
		logger:    logger,
		fetcher:   fetcher,
		providers: providers,
		clients:   clients,
		cache:     cache,
		auditor:   auditor,
		secretKey: conf.App.SecretKey,
		cacheTTL:  cacheTTL,
	}
}

// FetchOpenAIModels 驗證輸入、挑選 HTTP client 後交給 Fetcher 依序嘗試候選網址
func (s *ModelFetchService) FetchOpenAIModels(ctx context.Context, params FetchParams) (_ *models.FetchResult, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	start := time.Now()
	baseURL := strings.TrimSpace(params.BaseURL)
	apiKey := strings.TrimSpace(params.APIKey)
	providerID := trimmedProviderID(params.ProviderID)
	fingerprint := apikey.Fingerprint(apiKey, s.secretKey)

	meta := core.TraceModelFetchMeta{
		AppType:        string(params.AppType),
		ProviderID:     providerID,
		BaseURL:        baseURL,
		KeyFingerprint: fingerprint,
	}
	var result *models.FetchResult
	defer func() {
		if result != nil {
			meta.ResolvedURL = result.ResolvedURL
			meta.ModelCount = len(result.Models)
			meta.WarningCount = len(result.Warnings)
			meta.ElapsedMs = result.ElapsedMs
		}
		s.trace.ApplyTraceAttributes(span, meta)
		s.record(ctx, params, baseURL, providerID, fingerprint, result, returnedError, time.Since(start))
	}()

	if baseURL == "" {
		return nil, cErr.InvalidInput("Base URL must not be empty")
	}
	if apiKey == "" {
		return nil, cErr.InvalidInput("API key must not be empty")
	}

	timeout := models.ResolveTimeout(params.TimeoutSecs)
	meta.TimeoutSec = timeout.Seconds()

	provider := params.provider
	if provider == nil && providerID != "" {
		loaded, err := s.lookupProvider(ctx, params.AppType, providerID)
		if err != nil {
			return nil, err
		}
		provider = loaded
	}
	client, err := s.clientFor(provider)
	if err != nil {
		return nil, err
	}

	candidates := models.BuildCandidateURLs(baseURL)
	meta.Candidates = candidates

	result, err = s.fetcher.Fetch(ctx, client, candidates, apiKey, timeout)
	if err != nil {
		return nil, err
	}

	if providerID != "" {
		s.saveCache(ctx, params.AppType, providerID, result)
	}
	return result, nil
}

// FetchForProvider 使用已儲存供應商的 base URL / API key / 代理
func (s *ModelFetchService) FetchForProvider(
	ctx context.Context,
	appType core.AppType,
	providerID string,
	trigger string,
	requestID string,
) (*models.FetchResult, error) {
	provider, err := s.lookupProvider(ctx, appType, providerID)
	if err != nil {
		return nil, err
	}
	return s.FetchOpenAIModels(ctx, FetchParams{
		AppType:    appType,
		ProviderID: &provider.ProviderID,
		BaseURL:    provider.BaseURL,
		APIKey:     provider.APIKey,
		Trigger:    trigger,
		RequestID:  requestID,
		provider:   provider,
	})
}

func (s *ModelFetchService) lookupProvider(ctx context.Context, appType core.AppType, providerID string) (*mongoModel.Provider, error) {
	providerID = strings.TrimSpace(providerID)
	provider, err := s.providers.Get(ctx, appType, providerID)
	if err != nil {
		s.logger.Error("load provider failed",
			zap.String("appType", string(appType)),
			zap.String("providerId", providerID),
			zap.Error(err),
		)
		return nil, cErr.DatabaseError("database GetProvider error")
	}
	if provider == nil {
		return nil, cErr.ProviderNotFound(fmt.Sprintf("provider %s not found", providerID))
	}
	return provider, nil
}

// clientFor 沒有供應商時用預設 client
func (s *ModelFetchService) clientFor(provider *mongoModel.Provider) (models.HTTPDoer, error) {
	if provider == nil {
		return s.clients.Default(), nil
	}
	proxy := provider.ActiveProxy()
	if proxy == nil {
		return s.clients.Default(), nil
	}
	return s.clients.ForProxy(&httpclient.Proxy{
		URL:      proxy.URL,
		Username: proxy.Username,
		Password: proxy.Password,
	})
}

// 快取失敗不影響回應
func (s *ModelFetchService) saveCache(ctx context.Context, appType core.AppType, providerID string, result *models.FetchResult) {
	err := s.cache.Save(ctx, appType, providerID, redisModel.CachedModels{
		ModelIDs:    result.IDs(),
		ResolvedURL: result.ResolvedURL,
		FetchedAt:   time.Now().UTC(),
	}, s.cacheTTL)
	if err != nil {
		s.logger.Warn("save model cache failed",
			zap.String("appType", string(appType)),
			zap.String("providerId", providerID),
			zap.Error(err),
		)
	}
}

// record 寫 log / metric / fluentd；不回傳錯誤
func (s *ModelFetchService) record(
	ctx context.Context,
	params FetchParams,
	baseURL string,
	providerID string,
	fingerprint string,
	result *models.FetchResult,
	fetchErr error,
	elapsed time.Duration,
) {
	outcome := fetchOutcome(fetchErr)
	s.metric.ObserveFetch(params.AppType, outcome, elapsed)

	trigger := params.Trigger
	if trigger == "" {
		trigger = TriggerAPI
	}
	fetchLog := fluentdModel.FetchLog{
		RequestID:      params.RequestID,
		Trigger:        trigger,
		AppType:        string(params.AppType),
		ProviderID:     providerID,
		BaseURL:        baseURL,
		ElapsedMs:      uint64(elapsed.Milliseconds()),
		Outcome:        string(outcome),
		KeyFingerprint: fingerprint,
	}
	fields := []zap.Field{
		zap.String("trigger", trigger),
		zap.String("appType", string(params.AppType)),
		zap.String("providerId", providerID),
		zap.String("baseUrl", baseURL),
		zap.String("keyFingerprint", fingerprint),
		zap.String("outcome", string(outcome)),
	}

	if result != nil {
		fetchLog.ResolvedURL = result.ResolvedURL
		fetchLog.ElapsedMs = result.ElapsedMs
		fetchLog.ModelCount = len(result.Models)
		fetchLog.Warnings = result.Warnings
		s.logger.Info("fetch models succeeded", append(fields,
			zap.String("resolvedUrl", result.ResolvedURL),
			zap.Uint64("elapsedMs", result.ElapsedMs),
			zap.Int("modelCount", len(result.Models)),
			zap.Strings("warnings", result.Warnings),
		)...)
	} else if fetchErr != nil {
		e := cErr.From(fetchErr)
		fetchLog.ErrorCode = e.ErrorCode()
		fetchLog.ErrorMessage = e.ErrorDesc()
		s.logger.Warn("fetch models failed", append(fields,
			zap.Duration("elapsed", elapsed),
			zap.Error(fetchErr),
		)...)
	}

	// 呼叫端取消後仍要送出稽核紀錄
	if err := s.auditor.LogFetch(context.WithoutCancel(ctx), fetchLog); err != nil {
		s.logger.Debug("send fetch log failed", zap.Error(err))
	}
}

func trimmedProviderID(providerID *string) string {
	if providerID == nil {
		return ""
	}
	return strings.TrimSpace(*providerID)
}

// fetchOutcome 錯誤碼對應 metric label
func fetchOutcome(err error) core.FetchOutcome {
	if err == nil {
		return core.FetchOutcomeSuccess
	}
	var e *cErr.Error
	if !errors.As(err, &e) {
		return core.FetchOutcomeFailed
	}
	switch e.ErrorCode() {
	case cErr.INVALID_INPUT:
		return core.FetchOutcomeInvalidInput
	case cErr.PROVIDER_NOT_FOUND:
		return core.FetchOutcomeNotFound
	case cErr.UPSTREAM_AUTH_FAILED:
		return core.FetchOutcomeAuthFailure
	case cErr.UPSTREAM_ENDPOINT_MISMATCH:
		return core.FetchOutcomeEndpointMismatch
	case cErr.UPSTREAM_RATE_LIMITED:
		return core.FetchOutcomeRateLimited
	case cErr.UPSTREAM_TIMEOUT:
		return core.FetchOutcomeTimeout
	case cErr.UPSTREAM_REQUEST_FAILED:
		return core.FetchOutcomeTransport
	case cErr.UPSTREAM_PARSE_FAILED:
		return core.FetchOutcomeParseFailure
	default:
		return core.FetchOutcomeFailed
	}
}
