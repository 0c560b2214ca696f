package router

import (
	"modelfetch/internal/handler"
	"modelfetch/internal/middleware"

	"github.com/gin-gonic/gin"
)

type AdminRouter struct {
	providerHandler *handler.AdminProviderHandler
	adminMiddleware *middleware.Admin
}

func NewAdminRouter(
	providerHandler *handler.AdminProviderHandler,
	adminMiddleware *middleware.Admin,
) *AdminRouter {
	return &AdminRouter{
		providerHandler: providerHandler,
		adminMiddleware: adminMiddleware,
	}
}

func (ar *AdminRouter) RegisterRoutes(r *gin.Engine) {
	admin := r.Group("/admin/providers")
	admin.Use(ar.adminMiddleware.Handler())
	{
		admin.GET("", ar.providerHandler.List)
		admin.POST("", ar.providerHandler.Create)
		admin.GET("/:appType/:providerID", ar.providerHandler.Get)
		admin.PUT("/:appType/:providerID", ar.providerHandler.Update)
		admin.DELETE("/:appType/:providerID", ar.providerHandler.Delete)
	}
}
