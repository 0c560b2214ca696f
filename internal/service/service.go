package service

import (
	fluentdRepo "modelfetch/internal/database/fluentd/repository"
	mongoRepo "modelfetch/internal/database/mongodb/repository"
	redisRepo "modelfetch/internal/database/redis/repository"
	"modelfetch/internal/pkg/httpclient"
	"modelfetch/internal/service/models"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewHealthService,
	models.NewFetcher,
	NewModelFetchService,
	NewProviderService,
	httpclient.ProviderSet,
	wire.Bind(new(ProviderLookup), new(*mongoRepo.ProviderRepository)),
	wire.Bind(new(ProviderStore), new(*mongoRepo.ProviderRepository)),
	wire.Bind(new(ClientFactory), new(*httpclient.Factory)),
	wire.Bind(new(ModelCache), new(*redisRepo.ModelCacheRepository)),
	wire.Bind(new(FetchAuditor), new(*fluentdRepo.LogRepository)),
)
