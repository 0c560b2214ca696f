package model

import (
	"time"

	"modelfetch/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProxyConfig 供應商專用的出站代理
type ProxyConfig struct {
	Enabled  bool   `json:"enabled" bson:"enabled"`
	URL      string `json:"url" bson:"url"`
	Username string `json:"username,omitempty" bson:"username,omitempty"`
	Password string `json:"password,omitempty" bson:"password,omitempty"`
}

type ProviderMeta struct {
	ProxyConfig *ProxyConfig `json:"proxyConfig,omitempty" bson:"proxyConfig,omitempty"`
}

// Provider 已儲存的供應商設定，(providerId, appType) 唯一
type Provider struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	ProviderID  string             `json:"providerId" bson:"providerId"`
	AppType     core.AppType       `json:"appType" bson:"appType"`
	Name        string             `json:"name" bson:"name"`
	BaseURL     string             `json:"baseUrl" bson:"baseUrl"`
	APIKey      string             `json:"apiKey" bson:"apiKey"`
	AutoRefresh bool               `json:"autoRefresh" bson:"autoRefresh"`
	Meta        ProviderMeta       `json:"meta" bson:"meta"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ActiveProxy 只有啟用且有網址時才回傳
func (p *Provider) ActiveProxy() *ProxyConfig {
	if p == nil || p.Meta.ProxyConfig == nil {
		return nil
	}
	if !p.Meta.ProxyConfig.Enabled || p.Meta.ProxyConfig.URL == "" {
		return nil
	}
	return p.Meta.ProxyConfig
}

var ProviderIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "appType", Value: 1}},
		Options: options.Index().SetName("uniq_providerId_appType").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "autoRefresh", Value: 1}},
		Options: options.Index().SetName("idx_autoRefresh"),
	},
	{
		Keys:    bson.D{{Key: "appType", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_appType_createdAt_desc"),
	},
}
