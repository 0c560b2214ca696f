package handler

import (
	"context"

	"modelfetch/internal/core"
	"modelfetch/internal/dto"
	cErr "modelfetch/internal/pkg/error"
	"modelfetch/internal/pkg/response"
	"modelfetch/internal/service"
	"modelfetch/internal/telemetry"
	"modelfetch/utils/validate"

	"github.com/gin-gonic/gin"
)

type ProviderManager interface {
	CreateProvider(ctx context.Context, req *dto.CreateProviderDto) (*dto.ProviderResponseDto, error)
	GetProvider(ctx context.Context, appType core.AppType, providerID string) (*dto.ProviderResponseDto, error)
	ListProviders(ctx context.Context, appType core.AppType, page, size int64) ([]*dto.ProviderResponseDto, error)
	UpdateProvider(ctx context.Context, appType core.AppType, providerID string, req *dto.UpdateProviderDto) error
	DeleteProvider(ctx context.Context, appType core.AppType, providerID string) error
}

type AdminProviderHandler struct {
	trace     *telemetry.Trace
	providers ProviderManager
}

func NewAdminProviderHandler(trace *telemetry.Trace, providerService *service.ProviderService) *AdminProviderHandler {
	return &AdminProviderHandler{trace: trace, providers: providerService}
}

// List 供應商列表
// @Summary 取得供應商列表
// @Tags Admin-Provider
// @Security BearerAuth
// @Produce json
// @Param appType query string false "claude / codex / gemini"
// @Param page query int false "頁碼"
// @Param size query int false "每頁筆數"
// @Success 200 {array} dto.ProviderResponseDto
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/providers [get]
func (h *AdminProviderHandler) List(c *gin.Context) {
	ctx, span, end := h.trace.WithSpan(c)

	appType := c.Query("appType")
	if appType != "" && !validate.IsValidAppType(appType) {
		cause := cErr.ValidatePathParamsErr("appType must be one of claude, codex, gemini")
		end(cause)
		response.AbortWithError(c, cause)
		return
	}
	page, err := validate.GetInt64Query(c, "page", 0)
	if err != nil {
		end(err)
		response.AbortWithError(c, cErr.ValidatePathParamsErr("page must be a number"))
		return
	}
	size, err := validate.GetInt64Query(c, "size", 20)
	if err != nil {
		end(err)
		response.AbortWithError(c, cErr.ValidatePathParamsErr("size must be a number"))
		return
	}

	providers, err := h.providers.ListProviders(ctx, core.AppType(appType), page, size)
	h.trace.ApplyTraceAttributes(span, core.TraceProviderMeta{Op: "list", AppType: appType, Count: len(providers)})
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, providers)
}

// Get 取得供應商
// @Summary 取得單一供應商（API key 遮蔽）
// @Tags Admin-Provider
// @Security BearerAuth
// @Produce json
// @Param appType path string true "claude / codex / gemini"
// @Param providerID path string true "供應商 ID"
// @Success 200 {object} dto.ProviderResponseDto
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/providers/{appType}/{providerID} [get]
func (h *AdminProviderHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	appType, err := validate.ParseAppType(c, "appType")
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}

	provider, err := h.providers.GetProvider(ctx, appType, c.Param("providerID"))
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, provider)
}

// Create 新增供應商
// @Summary 新增供應商
// @Tags Admin-Provider
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateProviderDto true "供應商設定"
// @Success 201 {object} dto.ProviderResponseDto
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/providers [post]
func (h *AdminProviderHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var req dto.CreateProviderDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	provider, err := h.providers.CreateProvider(ctx, &req)
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, provider)
}

// Update 更新供應商
// @Summary 更新供應商（只更新有帶的欄位）
// @Tags Admin-Provider
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param appType path string true "claude / codex / gemini"
// @Param providerID path string true "供應商 ID"
// @Param body body dto.UpdateProviderDto true "更新內容"
// @Success 200 {object} map[string]string
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/providers/{appType}/{providerID} [put]
func (h *AdminProviderHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	appType, err := validate.ParseAppType(c, "appType")
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	var req dto.UpdateProviderDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	err = h.providers.UpdateProvider(ctx, appType, c.Param("providerID"), &req)
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, "provider updated successfully")
}

// Delete 刪除供應商
// @Summary 刪除供應商與其模型快取
// @Tags Admin-Provider
// @Security BearerAuth
// @Produce json
// @Param appType path string true "claude / codex / gemini"
// @Param providerID path string true "供應商 ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/providers/{appType}/{providerID} [delete]
func (h *AdminProviderHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	appType, err := validate.ParseAppType(c, "appType")
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}

	err = h.providers.DeleteProvider(ctx, appType, c.Param("providerID"))
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, "provider deleted successfully")
}
