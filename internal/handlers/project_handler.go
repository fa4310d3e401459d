package handlers

import (
	"net/http"

	"github.com/fachrinfl/ts-project-management-api/internal/services"
	"github.com/fachrinfl/ts-project-management-api/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	*BaseHandler
	projectService services.ProjectService
}

func NewProjectHandler(base *BaseHandler, projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:    base,
		projectService: projectService,
	}
}

func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup, mw RouteMiddlewares) {
	projects := rg.Group("/projects", mw.RequireAuth)
	{
		projects.GET("", h.List)
		projects.POST("", h.Create)
		projects.GET("/:id", h.Get)
		projects.PUT("/:id", h.Update)
		projects.DELETE("/:id", h.Delete)
	}
}

// List godoc
// @Summary      Проекты пользователя
// @Description  Проекты, где пользователь создатель или участник команды. Сортировка по дате создания, новые первыми.
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        name    query string false "Подстрока названия"
// @Param        status  query string false "active | on_hold | completed"
// @Param        page    query int    false "Страница" default(1)
// @Param        perPage query int    false "Размер страницы" default(10)
// @Success      200 {object} dto.PaginatedResponse[dto.ProjectDTO]
// @Router       /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.ProjectListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	result, err := h.projectService.List(h.GetDB(c), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Create godoc
// @Summary      Создать проект
// @Description  Неизвестные email из teamEmails молча пропускаются.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateProjectRequest true "Проект"
// @Success      201 {object} dto.ProjectCreatedResponse
// @Failure      400 {object} apperrors.AppError
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	project, err := h.projectService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ProjectCreatedResponse{
		Message: "Project created successfully",
		Project: *project,
	})
}

// Get godoc
// @Summary      Проект по ID
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID проекта"
// @Success      200 {object} dto.DataResponse[dto.ProjectDTO]
// @Failure      403 {object} apperrors.AppError
// @Failure      404 {object} apperrors.AppError
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Get(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse[dto.ProjectDTO]{Data: *project})
}

// Update godoc
// @Summary      Обновить проект
// @Description  Частичное обновление. Если передан teamEmails, команда заменяется целиком.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                   true "ID проекта"
// @Param        request body dto.UpdateProjectRequest true "Изменения"
// @Success      200 {object} dto.MessageDataResponse[dto.ProjectDTO]
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	project, err := h.projectService.Update(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageDataResponse[dto.ProjectDTO]{
		Message: "Project updated successfully",
		Data:    *project,
	})
}

// Delete godoc
// @Summary      Удалить проект
// @Description  Только создатель. Задачи проекта удаляются вместе с ним.
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID проекта"
// @Success      200 {object} dto.MessageResponse
// @Failure      403 {object} apperrors.AppError
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Project deleted successfully"})
}
