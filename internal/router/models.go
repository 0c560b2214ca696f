package router

import (
	"modelfetch/internal/handler"
	"modelfetch/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ModelsRouter struct {
	modelsHandler       *handler.ModelsHandler
	ratelimitMiddleware *middleware.RateLimit
}

func NewModelsRouter(
	modelsHandler *handler.ModelsHandler,
	ratelimitMiddleware *middleware.RateLimit,
) *ModelsRouter {
	return &ModelsRouter{
		modelsHandler:       modelsHandler,
		ratelimitMiddleware: ratelimitMiddleware,
	}
}

func (modelsRouter *ModelsRouter) RegisterRoutes(engine *gin.Engine) {
	models := engine.Group("/models")
	{
		models.POST("/fetch", modelsRouter.ratelimitMiddleware.Guard(), modelsRouter.modelsHandler.FetchModels)
		models.GET("/suggest", modelsRouter.modelsHandler.Suggest)
	}

	// OpenAI 相容格式
	v1 := engine.Group("/v1/providers/:appType/:providerID")
	v1.Use(modelsRouter.ratelimitMiddleware.Guard())
	{
		v1.GET("/models", modelsRouter.modelsHandler.ProviderModels)
	}
}
