package handlers

import (
	"net/http"

	"github.com/fachrinfl/ts-project-management-api/internal/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	*BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(base *BaseHandler, analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      base,
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup, mw RouteMiddlewares) {
	analytics := rg.Group("/analytics", mw.RequireAuth)
	{
		analytics.GET("/project/:id", h.ProjectAnalytics)
		analytics.GET("/project/:id/weekly-status", h.WeeklyProjectStatus)
		analytics.GET("/user/top-projects", h.TopActiveProjects)
	}
}

// ProjectAnalytics godoc
// @Summary      Сводка по задачам проекта
// @Description  Разбивка по статусам, число просроченных задач и процент выполнения.
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID проекта"
// @Success      200 {object} dto.ProjectAnalytics
// @Failure      403 {object} apperrors.AppError
// @Failure      404 {object} apperrors.AppError
// @Router       /analytics/project/{id} [get]
func (h *AnalyticsHandler) ProjectAnalytics(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.analyticsService.ProjectAnalytics(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// WeeklyProjectStatus godoc
// @Summary      Статус задач по дням текущей недели
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID проекта"
// @Success      200 {array} dto.DayStatus
// @Router       /analytics/project/{id}/weekly-status [get]
func (h *AnalyticsHandler) WeeklyProjectStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	days, err := h.analyticsService.WeeklyProjectStatus(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, days)
}

// TopActiveProjects godoc
// @Summary      Пять активных проектов с ближайшим сроком
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.TopProject
// @Router       /analytics/user/top-projects [get]
func (h *AnalyticsHandler) TopActiveProjects(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	projects, err := h.analyticsService.TopActiveProjects(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}
