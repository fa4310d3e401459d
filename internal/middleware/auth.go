package middleware

import (
	"strings"

	"github.com/fachrinfl/ts-project-management-api/internal/auth"
	"github.com/fachrinfl/ts-project-management-api/internal/logger"
	"github.com/fachrinfl/ts-project-management-api/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// AuthMiddleware - проверка access-токена из заголовка Authorization: Bearer <token>
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		authHeader := c.GetHeader("Authorization")
		scheme, tokenStr, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenStr) == "" {
			logger.CtxWarn(ctx, "Authorization header missing or invalid", "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		claims, err := tokens.VerifyAccessToken(strings.TrimSpace(tokenStr))
		if err != nil {
			logger.CtxWarn(ctx, "Access token rejected", "error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Request = c.Request.WithContext(logger.WithUserID(ctx, claims.UserID))
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
