package core

import "go.mongodb.org/mongo-driver/bson"

type MongoDatabaseName string
type MongoCollection string
type RedisKey string
type FluentdSubTag string

// ─── MongoDB ───────────────────────────────────────────────────────────────────
const (
	MongoDBModelFetch MongoDatabaseName = "modelfetch"
)

const (
	MongoCollectionProviders MongoCollection = "providers"
)

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeyServerName  RedisKey = "modelfetch" // 伺服器名稱
	RedisKeyRateLimit   RedisKey = "ratelimit"
	RedisKeyModelsCache RedisKey = "models"
)

const (
	FluentdRequest  FluentdSubTag = "request_log"
	FluentdResponse FluentdSubTag = "response_log"
	FluentdFetch    FluentdSubTag = "model_fetch_log"
)

type ListOptions struct {
	Filter bson.M `json:"filter,omitempty" bson:"filter,omitempty"`
	Page   int64  `json:"page,omitempty" bson:"page,omitempty"`
	Size   int64  `json:"size,omitempty" bson:"size,omitempty"`
}
