package handler

import (
	"modelfetch/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthStatus *service.HealthService
}

func NewHealthHandler(status *service.HealthService) *HealthHandler {
	return &HealthHandler{healthStatus: status}
}

// Liveness
// @Summary 存活檢查
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503
// @Router /health/liveness [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	if h.healthStatus.IsLive() {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
		return
	}
	c.Status(http.StatusServiceUnavailable)
}

// Readiness HTTP server 啟動後才回 ready，關閉中回 503 並帶 draining
// @Summary 就緒檢查
// @Tags Health
// @Produce json
// @Success 200 {object} service.HealthStatus
// @Failure 503 {object} service.HealthStatus
// @Router /health/readiness [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	status := h.healthStatus.Status()
	if status.Ready {
		c.JSON(http.StatusOK, status)
		return
	}
	c.JSON(http.StatusServiceUnavailable, status)
}
