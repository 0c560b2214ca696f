package dto

import (
	"time"

	"modelfetch/internal/core"
	"modelfetch/internal/pkg/request"
)

type ProxyConfigDto struct {
	Enabled  bool   `json:"enabled"`
	URL      string `json:"url" binding:"required_if=Enabled true"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// 建立供應商
type CreateProviderDto struct {
	ProviderID  string          `json:"providerId" binding:"required,max=128"`
	AppType     core.AppType    `json:"appType" binding:"required,oneof=claude codex gemini"`
	Name        string          `json:"name" binding:"required"`
	BaseURL     string          `json:"baseUrl" binding:"required,url"`
	APIKey      string          `json:"apiKey" binding:"required"`
	AutoRefresh bool            `json:"autoRefresh"`
	ProxyConfig *ProxyConfigDto `json:"proxyConfig,omitempty"`
}

func (CreateProviderDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"ProviderID.required": "providerId is required",
		"AppType.oneof":       "appType must be one of claude, codex, gemini",
		"BaseURL.url":         "baseUrl must be an absolute URL",
	}
}

// 更新供應商，只更新有給的欄位
type UpdateProviderDto struct {
	Name        *string         `json:"name,omitempty" binding:"omitempty,min=1"`
	BaseURL     *string         `json:"baseUrl,omitempty" binding:"omitempty,url"`
	APIKey      *string         `json:"apiKey,omitempty" binding:"omitempty,min=1"`
	AutoRefresh *bool           `json:"autoRefresh,omitempty"`
	ProxyConfig *ProxyConfigDto `json:"proxyConfig,omitempty"`
}

type ProxyConfigResponseDto struct {
	Enabled  bool   `json:"enabled"`
	URL      string `json:"url"`
	Username string `json:"username,omitempty"`
	// 只回傳是否已設定密碼
	HasPassword bool `json:"hasPassword"`
}

type ProviderResponseDto struct {
	ID          string                  `json:"id"`
	ProviderID  string                  `json:"providerId"`
	AppType     core.AppType            `json:"appType"`
	Name        string                  `json:"name"`
	BaseURL     string                  `json:"baseUrl"`
	APIKeyMask  string                  `json:"apiKeyMask"`
	AutoRefresh bool                    `json:"autoRefresh"`
	ProxyConfig *ProxyConfigResponseDto `json:"proxyConfig,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}
