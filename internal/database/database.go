package database

import (
	client "modelfetch/internal/database/client"
	fluentdRepo "modelfetch/internal/database/fluentd/repository"
	mongoRepo "modelfetch/internal/database/mongodb/repository"
	redisRepo "modelfetch/internal/database/redis/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有 DB Client 的依賴
var ProviderSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)
