package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"modelfetch/internal/core"
	client "modelfetch/internal/database/client"
	"modelfetch/internal/database/redis/model"
	"modelfetch/internal/telemetry"

	"github.com/redis/go-redis/v9"
)

// ModelCacheRepository 以 (appType, providerId) 為 key 快取模型清單
type ModelCacheRepository struct {
	trace  *telemetry.Trace
	client redis.Cmdable
}

func NewModelCacheRepository(trace *telemetry.Trace, client *client.RedisClient) *ModelCacheRepository {
	return &ModelCacheRepository{trace: trace, client: client.Client()}
}

// Save ttl <= 0 代表不過期
func (repository *ModelCacheRepository) Save(
	contextValue context.Context,
	appType core.AppType,
	providerID string,
	cached model.CachedModels,
	ttl time.Duration,
) (returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	redisKey := repository.buildKey(appType, providerID)
	repository.trace.ApplyTraceAttributes(span, core.TraceModelCacheMeta{
		Op:         "save",
		Key:        redisKey,
		Count:      len(cached.ModelIDs),
		TTLSeconds: int64(ttl.Seconds()),
	})

	payload, marshalError := json.Marshal(cached)
	if marshalError != nil {
		return marshalError
	}
	if ttl < 0 {
		ttl = 0
	}
	return repository.client.Set(contextValue, redisKey, payload, ttl).Err()
}

// Load 快取不存在時回傳 nil, nil
func (repository *ModelCacheRepository) Load(
	contextValue context.Context,
	appType core.AppType,
	providerID string,
) (_ *model.CachedModels, returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	redisKey := repository.buildKey(appType, providerID)
	meta := core.TraceModelCacheMeta{Op: "load", Key: redisKey}

	payload, getError := repository.client.Get(contextValue, redisKey).Bytes()
	if errors.Is(getError, redis.Nil) {
		repository.trace.ApplyTraceAttributes(span, meta)
		return nil, nil
	}
	if getError != nil {
		return nil, getError
	}

	var cached model.CachedModels
	if unmarshalError := json.Unmarshal(payload, &cached); unmarshalError != nil {
		return nil, fmt.Errorf("decode cached models %s: %w", redisKey, unmarshalError)
	}
	meta.Hit, meta.Count = true, len(cached.ModelIDs)
	repository.trace.ApplyTraceAttributes(span, meta)
	return &cached, nil
}

// Delete 供應商刪除或設定變更時清掉快取
func (repository *ModelCacheRepository) Delete(
	contextValue context.Context,
	appType core.AppType,
	providerID string,
) (returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	redisKey := repository.buildKey(appType, providerID)
	repository.trace.ApplyTraceAttributes(span, core.TraceModelCacheMeta{Op: "delete", Key: redisKey})
	return repository.client.Del(contextValue, redisKey).Err()
}

func (repository *ModelCacheRepository) buildKey(appType core.AppType, providerID string) string {
	return fmt.Sprintf("%s:%s:%s:%s", core.RedisKeyServerName, core.RedisKeyModelsCache, appType, providerID)
}
