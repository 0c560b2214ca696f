package repository

import (
	"modelfetch/config"
	"modelfetch/internal/core"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson"
)

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewProviderRepository,
)

func databaseName(config *config.Configuration) string {
	if config != nil && config.MongoDB.Database != "" {
		return config.MongoDB.Database
	}
	return string(core.MongoDBModelFetch)
}

func withUpdatedAt(update bson.M) bson.M {
	// 確保 $currentDate 存在
	currentDate, ok := update["$currentDate"].(bson.M)
	if !ok || currentDate == nil {
		currentDate = bson.M{}
	}
	currentDate["updatedAt"] = true
	update["$currentDate"] = currentDate
	return update
}
