package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"modelfetch/internal/core"
	"modelfetch/internal/database/mongodb/model"
	"modelfetch/internal/dto"
	cErr "modelfetch/internal/pkg/error"
	"modelfetch/internal/pkg/httpclient"
	"modelfetch/internal/service/models"
	"modelfetch/internal/telemetry"
	"modelfetch/utils/apikey"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type ProviderStore interface {
	ProviderLookup
	Create(ctx context.Context, provider *model.Provider) (*model.Provider, error)
	List(ctx context.Context, appType core.AppType, listOptions core.ListOptions) ([]*model.Provider, error)
	Update(ctx context.Context, appType core.AppType, providerID string, setFields bson.M) error
	Delete(ctx context.Context, appType core.AppType, providerID string) error
}

type ProviderService struct {
	trace  *telemetry.Trace
	logger *zap.Logger
	store  ProviderStore
	cache  ModelCache
}

func NewProviderService(trace *telemetry.Trace, logger *zap.Logger, store ProviderStore, cache ModelCache) *ProviderService {
	return &ProviderService{trace: trace, logger: logger, store: store, cache: cache}
}

// 新增供應商（管理專用，input/output 皆為 DTO）
func (s *ProviderService) CreateProvider(ctx context.Context, req *dto.CreateProviderDto) (_ *dto.ProviderResponseDto, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	proxy, err := proxyConfigFromDto(req.ProxyConfig)
	if err != nil {
		return nil, err
	}
	provider := &model.Provider{
		ProviderID:  strings.TrimSpace(req.ProviderID),
		AppType:     req.AppType,
		Name:        strings.TrimSpace(req.Name),
		BaseURL:     strings.TrimSpace(req.BaseURL),
		APIKey:      strings.TrimSpace(req.APIKey),
		AutoRefresh: req.AutoRefresh,
		Meta:        model.ProviderMeta{ProxyConfig: proxy},
	}
	if provider.ProviderID == "" {
		return nil, cErr.InvalidInput("providerId must not be empty")
	}

	created, err := s.store.Create(ctx, provider)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, cErr.Conflict(fmt.Sprintf("provider %s already exists for %s", provider.ProviderID, provider.AppType))
		}
		s.logger.Error("create provider failed", zap.String("providerId", provider.ProviderID), zap.Error(err))
		return nil, cErr.DatabaseError("database CreateProvider error")
	}
	return providerToResponseDto(created), nil
}

func (s *ProviderService) GetProvider(ctx context.Context, appType core.AppType, providerID string) (_ *dto.ProviderResponseDto, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	provider, err := s.store.Get(ctx, appType, providerID)
	if err != nil {
		return nil, cErr.DatabaseError("database GetProvider error")
	}
	if provider == nil {
		return nil, cErr.ProviderNotFound(fmt.Sprintf("provider %s not found", providerID))
	}
	return providerToResponseDto(provider), nil
}

// appType 為空時列出全部
func (s *ProviderService) ListProviders(ctx context.Context, appType core.AppType, page, size int64) (_ []*dto.ProviderResponseDto, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	providers, err := s.store.List(ctx, appType, core.ListOptions{Page: page, Size: size})
	if err != nil {
		return nil, cErr.DatabaseError("database ListProviders error")
	}
	resp := make([]*dto.ProviderResponseDto, len(providers))
	for i, p := range providers {
		resp[i] = providerToResponseDto(p)
	}
	return resp, nil
}

// UpdateProvider base URL / API key / 代理變更時清掉模型快取
func (s *ProviderService) UpdateProvider(ctx context.Context, appType core.AppType, providerID string, req *dto.UpdateProviderDto) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	setFields := bson.M{}
	if req.Name != nil {
		setFields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.BaseURL != nil {
		setFields["baseUrl"] = strings.TrimSpace(*req.BaseURL)
	}
	if req.APIKey != nil {
		setFields["apiKey"] = strings.TrimSpace(*req.APIKey)
	}
	if req.AutoRefresh != nil {
		setFields["autoRefresh"] = *req.AutoRefresh
	}
	if req.ProxyConfig != nil {
		proxy, err := proxyConfigFromDto(req.ProxyConfig)
		if err != nil {
			return err
		}
		setFields["meta.proxyConfig"] = proxy
	}
	if len(setFields) == 0 {
		return cErr.InvalidInput("no fields to update")
	}

	if err := s.store.Update(ctx, appType, providerID, setFields); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cErr.ProviderNotFound(fmt.Sprintf("provider %s not found", providerID))
		}
		return cErr.DatabaseError("database UpdateProvider error")
	}

	_, baseChanged := setFields["baseUrl"]
	_, keyChanged := setFields["apiKey"]
	_, proxyChanged := setFields["meta.proxyConfig"]
	if baseChanged || keyChanged || proxyChanged {
		s.dropCache(ctx, appType, providerID)
	}
	return nil
}

func (s *ProviderService) DeleteProvider(ctx context.Context, appType core.AppType, providerID string) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if err := s.store.Delete(ctx, appType, providerID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cErr.ProviderNotFound(fmt.Sprintf("provider %s not found", providerID))
		}
		return cErr.DatabaseError("database DeleteProvider error")
	}
	s.dropCache(ctx, appType, providerID)
	return nil
}

// SuggestModels 以快取中的模型清單排序建議；沒有快取時回傳空清單
func (s *ProviderService) SuggestModels(ctx context.Context, query *dto.SuggestModelsQueryDto) (_ *dto.SuggestModelsResponseDto, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	provider, err := s.store.Get(ctx, query.AppType, query.ProviderID)
	if err != nil {
		return nil, cErr.DatabaseError("database GetProvider error")
	}
	if provider == nil {
		return nil, cErr.ProviderNotFound(fmt.Sprintf("provider %s not found", query.ProviderID))
	}

	resp := &dto.SuggestModelsResponseDto{Suggestions: []models.Suggestion{}}
	cached, err := s.cache.Load(ctx, query.AppType, query.ProviderID)
	if err != nil {
		s.logger.Warn("load model cache failed", zap.String("providerId", query.ProviderID), zap.Error(err))
		return resp, nil
	}
	if cached == nil {
		return resp, nil
	}
	resp.Suggestions = models.RankSuggestions(cached.ModelIDs, query.Query, query.Limit)
	resp.ResolvedURL = cached.ResolvedURL
	fetchedAt := cached.FetchedAt
	resp.FetchedAt = &fetchedAt
	return resp, nil
}

func (s *ProviderService) dropCache(ctx context.Context, appType core.AppType, providerID string) {
	if err := s.cache.Delete(ctx, appType, providerID); err != nil {
		s.logger.Warn("delete model cache failed", zap.String("providerId", providerID), zap.Error(err))
	}
}

// proxyConfigFromDto 啟用時先驗證網址，避免存入無法使用的設定
func proxyConfigFromDto(in *dto.ProxyConfigDto) (*model.ProxyConfig, error) {
	if in == nil {
		return nil, nil
	}
	out := &model.ProxyConfig{
		Enabled:  in.Enabled,
		URL:      strings.TrimSpace(in.URL),
		Username: in.Username,
		Password: in.Password,
	}
	if out.Enabled {
		if _, err := httpclient.ParseProxyURL(&httpclient.Proxy{URL: out.URL, Username: out.Username, Password: out.Password}); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func providerToResponseDto(p *model.Provider) *dto.ProviderResponseDto {
	resp := &dto.ProviderResponseDto{
		ID:          p.ID.Hex(),
		ProviderID:  p.ProviderID,
		AppType:     p.AppType,
		Name:        p.Name,
		BaseURL:     p.BaseURL,
		APIKeyMask:  apikey.Mask(p.APIKey),
		AutoRefresh: p.AutoRefresh,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if pc := p.Meta.ProxyConfig; pc != nil {
		resp.ProxyConfig = &dto.ProxyConfigResponseDto{
			Enabled:     pc.Enabled,
			URL:         pc.URL,
			Username:    pc.Username,
			HasPassword: pc.Password != "",
		}
	}
	return resp
}
