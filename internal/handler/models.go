package handler

import (
	"context"
	"net/http"
	"strings"

	"modelfetch/internal/core"
	"modelfetch/internal/dto"
	"modelfetch/internal/pkg/response"
	"modelfetch/internal/service"
	"modelfetch/internal/service/models"
	"modelfetch/internal/telemetry"
	"modelfetch/utils/validate"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
)

type ModelFetcher interface {
	FetchOpenAIModels(ctx context.Context, params service.FetchParams) (*models.FetchResult, error)
	FetchForProvider(ctx context.Context, appType core.AppType, providerID string, trigger string, requestID string) (*models.FetchResult, error)
}

type ModelSuggester interface {
	SuggestModels(ctx context.Context, query *dto.SuggestModelsQueryDto) (*dto.SuggestModelsResponseDto, error)
}

type ModelsHandler struct {
	trace     *telemetry.Trace
	fetcher   ModelFetcher
	suggester ModelSuggester
}

func NewModelsHandler(
	trace *telemetry.Trace,
	modelFetchService *service.ModelFetchService,
	providerService *service.ProviderService,
) *ModelsHandler {
	return &ModelsHandler{trace: trace, fetcher: modelFetchService, suggester: providerService}
}

// FetchModels 抓取模型清單
// @Summary 抓取 OpenAI 相容端點的模型清單
// @Description 依序嘗試 {base}/v1/models 與 {base}/models，回傳第一個成功的結果
// @Tags Models
// @Accept json
// @Produce json
// @Param body body dto.FetchModelsRequestDto true "抓取參數"
// @Success 200 {object} models.FetchResult
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 429 {object} response.Response
// @Failure 502 {object} response.Response
// @Failure 504 {object} response.Response
// @Router /models/fetch [post]
func (h *ModelsHandler) FetchModels(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var req dto.FetchModelsRequestDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	result, err := h.fetcher.FetchOpenAIModels(ctx, service.FetchParams{
		AppType:     req.AppType,
		ProviderID:  req.ProviderID,
		BaseURL:     req.BaseURL,
		APIKey:      req.APIKey,
		TimeoutSecs: req.TimeoutSecs,
		Trigger:     service.TriggerAPI,
		RequestID:   c.GetString(core.ContextRequestIDKey),
	})
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, result)
}

// Suggest 模型建議
// @Summary 依關鍵字排序已快取的模型 id
// @Tags Models
// @Produce json
// @Param appType query string true "claude / codex / gemini"
// @Param providerId query string true "供應商 ID"
// @Param q query string false "關鍵字"
// @Param limit query int false "最多回傳筆數"
// @Success 200 {object} dto.SuggestModelsResponseDto
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /models/suggest [get]
func (h *ModelsHandler) Suggest(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var query dto.SuggestModelsQueryDto
	if cause, respErr := validate.BindQueryAndValidate(c, &query); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	query.ProviderID = strings.TrimSpace(query.ProviderID)

	resp, err := h.suggester.SuggestModels(ctx, &query)
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, resp)
}

// ProviderModels OpenAI 相容格式的模型清單
// @Summary 以已儲存的供應商設定即時抓取模型清單
// @Description 回應格式同 OpenAI GET /v1/models，不經統一回應包裝
// @Tags Models
// @Produce json
// @Param appType path string true "claude / codex / gemini"
// @Param providerID path string true "供應商 ID"
// @Success 200 {object} openai.ModelsList
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /v1/providers/{appType}/{providerID}/models [get]
func (h *ModelsHandler) ProviderModels(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	appType, err := validate.ParseAppType(c, "appType")
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}

	result, err := h.fetcher.FetchForProvider(ctx, appType, c.Param("providerID"), service.TriggerProvider, c.GetString(core.ContextRequestIDKey))
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, toOpenAIModelsList(result))
}

func toOpenAIModelsList(result *models.FetchResult) openai.ModelsList {
	list := openai.ModelsList{Models: make([]openai.Model, 0, len(result.Models))}
	for _, m := range result.Models {
		model := openai.Model{ID: m.ID, Object: "model"}
		if m.OwnedBy != nil {
			model.OwnedBy = *m.OwnedBy
		}
		if m.Created != nil {
			model.CreatedAt = *m.Created
		}
		list.Models = append(list.Models, model)
	}
	return list
}
