package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"modelfetch/config"
	"modelfetch/internal/core"
	fluentdModel "modelfetch/internal/database/fluentd/model"
	mongoModel "modelfetch/internal/database/mongodb/model"
	redisModel "modelfetch/internal/database/redis/model"
	"modelfetch/internal/pkg/httpclient"
	"modelfetch/internal/service/models"
	"modelfetch/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeProviderStore struct {
	mu        sync.Mutex
	providers map[string]*mongoModel.Provider
	err       error
	gets      int
}

func newFakeProviderStore(providers ...*mongoModel.Provider) *fakeProviderStore {
	store := &fakeProviderStore{providers: map[string]*mongoModel.Provider{}}
	for _, p := range providers {
		store.providers[string(p.AppType)+"/"+p.ProviderID] = p
	}
	return store
}

func (f *fakeProviderStore) Get(ctx context.Context, appType core.AppType, providerID string) (*mongoModel.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.err != nil {
		return nil, f.err
	}
	return f.providers[string(appType)+"/"+providerID], nil
}

func (f *fakeProviderStore) Create(ctx context.Context, provider *mongoModel.Provider) (*mongoModel.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := string(provider.AppType) + "/" + provider.ProviderID
	if _, exists := f.providers[key]; exists {
		return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	}
	provider.ID = primitive.NewObjectID()
	provider.CreatedAt = time.Now().UTC()
	provider.UpdatedAt = provider.CreatedAt
	f.providers[key] = provider
	return provider, nil
}

func (f *fakeProviderStore) List(ctx context.Context, appType core.AppType, listOptions core.ListOptions) ([]*mongoModel.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*mongoModel.Provider{}
	for _, p := range f.providers {
		if appType == "" || p.AppType == appType {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProviderStore) Update(ctx context.Context, appType core.AppType, providerID string, setFields bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.providers[string(appType)+"/"+providerID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if v, ok := setFields["name"].(string); ok {
		p.Name = v
	}
	if v, ok := setFields["baseUrl"].(string); ok {
		p.BaseURL = v
	}
	if v, ok := setFields["apiKey"].(string); ok {
		p.APIKey = v
	}
	if v, ok := setFields["autoRefresh"].(bool); ok {
		p.AutoRefresh = v
	}
	if v, ok := setFields["meta.proxyConfig"].(*mongoModel.ProxyConfig); ok {
		p.Meta.ProxyConfig = v
	}
	return nil
}

func (f *fakeProviderStore) Delete(ctx context.Context, appType core.AppType, providerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := string(appType) + "/" + providerID
	if _, ok := f.providers[key]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.providers, key)
	return nil
}

type fakeClientFactory struct {
	client  *http.Client
	proxies []httpclient.Proxy
}

func (f *fakeClientFactory) Default() *http.Client { return f.client }

func (f *fakeClientFactory) ForProxy(proxy *httpclient.Proxy) (*http.Client, error) {
	if _, err := httpclient.ParseProxyURL(proxy); err != nil {
		return nil, err
	}
	f.proxies = append(f.proxies, *proxy)
	return f.client, nil
}

type fakeModelCache struct {
	mu      sync.Mutex
	entries map[string]redisModel.CachedModels
	ttls    map[string]time.Duration
	err     error
}

func newFakeModelCache() *fakeModelCache {
	return &fakeModelCache{entries: map[string]redisModel.CachedModels{}, ttls: map[string]time.Duration{}}
}

func (f *fakeModelCache) Save(ctx context.Context, appType core.AppType, providerID string, cached redisModel.CachedModels, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries[string(appType)+"/"+providerID] = cached
	f.ttls[string(appType)+"/"+providerID] = ttl
	return nil
}

func (f *fakeModelCache) Load(ctx context.Context, appType core.AppType, providerID string) (*redisModel.CachedModels, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	cached, ok := f.entries[string(appType)+"/"+providerID]
	if !ok {
		return nil, nil
	}
	return &cached, nil
}

func (f *fakeModelCache) Delete(ctx context.Context, appType core.AppType, providerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, string(appType)+"/"+providerID)
	return nil
}

type fakeAuditor struct {
	mu   sync.Mutex
	logs []fluentdModel.FetchLog
}

func (f *fakeAuditor) LogFetch(ctx context.Context, fetchLog fluentdModel.FetchLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, fetchLog)
	return nil
}

type fetchServiceFixture struct {
	service   *ModelFetchService
	providers *fakeProviderStore
	clients   *fakeClientFactory
	cache     *fakeModelCache
	auditor   *fakeAuditor
}

func newFetchServiceFixture(client *http.Client, providers ...*mongoModel.Provider) *fetchServiceFixture {
	conf := &config.Configuration{}
	conf.App.SecretKey = "test-secret"
	conf.Fetch.CacheTTLSeconds = 120

	trace := telemetry.NewNoopTrace()
	metric := &telemetry.Metric{}
	logger := zap.NewNop()

	f := &fetchServiceFixture{
		providers: newFakeProviderStore(providers...),
		clients:   &fakeClientFactory{client: client},
		cache:     newFakeModelCache(),
		auditor:   &fakeAuditor{},
	}
	f.service = NewModelFetchService(
		trace, metric, logger, conf,
		models.NewFetcher(trace, metric, logger, conf),
		f.providers, f.clients, f.cache, f.auditor,
	)
	return f
}
