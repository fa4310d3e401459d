package handlers

import (
	"net/http"

	"github.com/fachrinfl/ts-project-management-api/internal/services"
	"github.com/fachrinfl/ts-project-management-api/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	*BaseHandler
	taskService services.TaskService
}

func NewTaskHandler(base *BaseHandler, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		BaseHandler: base,
		taskService: taskService,
	}
}

// RegisterRoutes: задачи вложены в проект, но удаляются по одному taskId.
// Сегмент проекта называется :id, как и в маршрутах ProjectHandler.
func (h *TaskHandler) RegisterRoutes(rg *gin.RouterGroup, mw RouteMiddlewares) {
	projects := rg.Group("/projects", mw.RequireAuth)
	{
		projects.GET("/:id/tasks", h.ListByProject)
		projects.POST("/:id/tasks", h.Create)
		projects.GET("/:id/tasks/:taskId", h.Get)
		projects.PUT("/:id/tasks/:taskId", h.Update)
		projects.DELETE("/tasks/:taskId", h.Delete)
	}

	rg.GET("/tasks", mw.RequireAuth, h.ListMine)
}

// ListByProject godoc
// @Summary      Задачи проекта
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string true  "ID проекта"
// @Param        status   query string false "todo | in_progress | done"
// @Param        priority query string false "high | medium | low"
// @Param        page     query int    false "Страница" default(1)
// @Param        perPage  query int    false "Размер страницы" default(10)
// @Success      200 {object} dto.PaginatedResponse[dto.TaskDTO]
// @Router       /projects/{id}/tasks [get]
func (h *TaskHandler) ListByProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.TaskListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	result, err := h.taskService.ListByProject(h.GetDB(c), userID, c.Param("id"), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListMine godoc
// @Summary      Задачи, назначенные текущему пользователю
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        projectId query string false "Фильтр по проекту"
// @Param        status    query string false "todo | in_progress | done"
// @Param        priority  query string false "high | medium | low"
// @Param        page      query int    false "Страница" default(1)
// @Param        perPage   query int    false "Размер страницы" default(10)
// @Success      200 {object} dto.PaginatedResponse[dto.TaskDTO]
// @Router       /tasks [get]
func (h *TaskHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.TaskListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	result, err := h.taskService.ListMine(h.GetDB(c), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Create godoc
// @Summary      Создать задачу в проекте
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                true "ID проекта"
// @Param        request body dto.CreateTaskRequest true "Задача"
// @Success      201 {object} dto.MessageDataResponse[dto.TaskDTO]
// @Failure      400 {object} apperrors.AppError "Ошибка валидации или исполнитель не найден"
// @Failure      403 {object} apperrors.AppError
// @Failure      404 {object} apperrors.AppError
// @Router       /projects/{id}/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	task, err := h.taskService.Create(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageDataResponse[dto.TaskDTO]{
		Message: "Task created successfully",
		Data:    *task,
	})
}

// Get godoc
// @Summary      Задача проекта
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id     path string true "ID проекта"
// @Param        taskId path string true "ID задачи"
// @Success      200 {object} dto.DataResponse[dto.TaskDTO]
// @Failure      404 {object} apperrors.AppError
// @Router       /projects/{id}/tasks/{taskId} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(h.GetDB(c), userID, c.Param("id"), c.Param("taskId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse[dto.TaskDTO]{Data: *task})
}

// Update godoc
// @Summary      Обновить задачу
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                true "ID проекта"
// @Param        taskId  path string                true "ID задачи"
// @Param        request body dto.UpdateTaskRequest true "Изменения"
// @Success      200 {object} dto.MessageDataResponse[dto.TaskDTO]
// @Router       /projects/{id}/tasks/{taskId} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	task, err := h.taskService.Update(h.GetDB(c), userID, c.Param("id"), c.Param("taskId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageDataResponse[dto.TaskDTO]{
		Message: "Task updated successfully",
		Data:    *task,
	})
}

// Delete godoc
// @Summary      Удалить задачу
// @Description  Только создатель задачи.
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        taskId path string true "ID задачи"
// @Success      200 {object} dto.MessageResponse
// @Failure      403 {object} apperrors.AppError
// @Failure      404 {object} apperrors.AppError
// @Router       /projects/tasks/{taskId} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(h.GetDB(c), userID, c.Param("taskId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}
