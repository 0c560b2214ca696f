package command

import (
	"context"
	"time"

	"modelfetch/internal/core"
	mongoModel "modelfetch/internal/database/mongodb/model"
	redisModel "modelfetch/internal/database/redis/model"
)

// StandaloneStore 命令列模式不連 MongoDB / Redis：沒有已儲存的供應商，也不寫快取
type StandaloneStore struct{}

func NewStandaloneStore() *StandaloneStore {
	return &StandaloneStore{}
}

func (*StandaloneStore) Get(context.Context, core.AppType, string) (*mongoModel.Provider, error) {
	return nil, nil
}

func (*StandaloneStore) Save(context.Context, core.AppType, string, redisModel.CachedModels, time.Duration) error {
	return nil
}

func (*StandaloneStore) Load(context.Context, core.AppType, string) (*redisModel.CachedModels, error) {
	return nil, nil
}

func (*StandaloneStore) Delete(context.Context, core.AppType, string) error {
	return nil
}
