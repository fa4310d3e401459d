package handlers

import (
	"net/http"

	"github.com/fachrinfl/ts-project-management-api/internal/services"
	"github.com/fachrinfl/ts-project-management-api/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes регистрирует маршруты /auth. Выдача токенов ограничена по частоте.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, mw RouteMiddlewares) {
	auth := rg.Group("/auth")
	{
		limited := auth.Group("", mw.RateLimit)
		limited.POST("/register", h.Register)
		limited.POST("/login", h.Login)
		limited.POST("/refresh-token", h.RefreshToken)

		auth.POST("/logout", h.Logout)

		protected := auth.Group("", mw.RequireAuth)
		protected.PUT("/update-password", h.UpdatePassword)
		protected.PUT("/update-profile", h.UpdateProfile)
		protected.GET("/me", h.Me)
	}
}

// Register godoc
// @Summary      Регистрация пользователя
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Данные пользователя"
// @Success      201 {object} dto.RegisterResponse
// @Failure      400 {object} apperrors.AppError "Ошибка валидации или email занят"
// @Failure      429 {object} apperrors.AppError
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.Register(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "User registered successfully",
		User:    *user,
	})
}

// Login godoc
// @Summary      Вход по email и паролю
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Учётные данные"
// @Success      200 {object} dto.LoginResponse
// @Failure      401 {object} apperrors.AppError "Неверный email или пароль"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.authService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message:      "Login successful",
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

// RefreshToken godoc
// @Summary      Новый access-токен по refresh-токену
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshTokenRequest true "Refresh-токен"
// @Success      200 {object} dto.AccessTokenResponse
// @Failure      401 {object} apperrors.AppError "Токен недействителен или отозван"
// @Router       /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	accessToken, err := h.authService.RefreshToken(h.GetDB(c), req.RefreshToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AccessTokenResponse{AccessToken: accessToken})
}

// Logout godoc
// @Summary      Завершение сессии
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LogoutRequest true "Refresh-токен"
// @Success      200 {object} dto.MessageResponse
// @Failure      404 {object} apperrors.AppError "Сессия не найдена"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.Logout(h.GetDB(c), req.RefreshToken); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

// UpdatePassword godoc
// @Summary      Смена пароля
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdatePasswordRequest true "Текущий и новый пароль"
// @Success      200 {object} dto.MessageResponse
// @Failure      401 {object} apperrors.AppError "Неверный текущий пароль"
// @Router       /auth/update-password [put]
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.UpdatePassword(h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}

// UpdateProfile godoc
// @Summary      Частичное обновление профиля
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateProfileRequest true "Имя и/или фото"
// @Success      200 {object} dto.UserResponse
// @Router       /auth/update-profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{Message: "Profile updated successfully", User: *user})
}

// Me godoc
// @Summary      Текущий пользователь
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.UserResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetMe(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{User: *user})
}
