package handlers

import (
	"net/http"

	"github.com/fachrinfl/ts-project-management-api/internal/services"
	"github.com/fachrinfl/ts-project-management-api/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, mw RouteMiddlewares) {
	users := rg.Group("/users", mw.RequireAuth)
	{
		users.GET("/search", h.SearchByEmail)
	}
}

// SearchByEmail godoc
// @Summary      Поиск пользователей по email
// @Description  Подстрока без учёта регистра, не короче 2 символов. Текущий пользователь исключается, максимум 10 результатов.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q query string true "Часть email"
// @Success      200 {object} dto.DataResponse[[]dto.UserSummary]
// @Failure      400 {object} apperrors.AppError
// @Router       /users/search [get]
func (h *UserHandler) SearchByEmail(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.UserSearchQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	users, err := h.userService.SearchByEmail(h.GetDB(c), userID, query.Q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse[[]dto.UserSummary]{Data: users})
}
