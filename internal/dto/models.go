package dto

import (
	"time"

	"modelfetch/internal/core"
	"modelfetch/internal/pkg/request"
	"modelfetch/internal/service/models"
)

// 抓取模型清單
// baseUrl / apiKey 的空值檢查交給 service，回傳 InvalidInput；
// timeoutSecs 只拒絕負數，超出 5..120 由 service 夾到範圍內
type FetchModelsRequestDto struct {
	AppType     core.AppType `json:"appType" binding:"omitempty,oneof=claude codex gemini"`
	ProviderID  *string      `json:"providerId,omitempty"`
	BaseURL     string       `json:"baseUrl"`
	APIKey      string       `json:"apiKey"`
	TimeoutSecs *int         `json:"timeoutSecs,omitempty" binding:"omitempty,min=0"`
}

func (FetchModelsRequestDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"AppType.oneof":   "appType must be one of claude, codex, gemini",
		"TimeoutSecs.min": "timeoutSecs must not be negative",
	}
}

type SuggestModelsQueryDto struct {
	AppType    core.AppType `form:"appType" binding:"required,oneof=claude codex gemini"`
	ProviderID string       `form:"providerId" binding:"required"`
	Query      string       `form:"q"`
	Limit      int          `form:"limit" binding:"omitempty,min=0,max=500"`
}

func (SuggestModelsQueryDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"AppType.required":    "appType is required",
		"AppType.oneof":       "appType must be one of claude, codex, gemini",
		"ProviderID.required": "providerId is required",
	}
}

type SuggestModelsResponseDto struct {
	Suggestions []models.Suggestion `json:"suggestions"`
	ResolvedURL string              `json:"resolvedUrl,omitempty"`
	FetchedAt   *time.Time          `json:"fetchedAt,omitempty"`
}
