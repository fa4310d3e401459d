package handlers

import (
	"net/http"

	"github.com/fachrinfl/ts-project-management-api/internal/services"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	*BaseHandler
	healthService services.HealthService
}

func NewHealthHandler(base *BaseHandler, healthService services.HealthService) *HealthHandler {
	return &HealthHandler{
		BaseHandler:   base,
		healthService: healthService,
	}
}

func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup, _ RouteMiddlewares) {
	rg.GET("/health", h.Check)
}

// Check godoc
// @Summary      Состояние сервиса
// @Description  Проверяет БД и файловое хранилище. 503, если хотя бы одна проверка не прошла.
// @Tags         health
// @Produce      json
// @Success      200 {object} dto.HealthStatus
// @Failure      503 {object} dto.HealthStatus
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status := h.healthService.Check(c.Request.Context(), h.GetDB(c))

	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
