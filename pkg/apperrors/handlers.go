package apperrors

import (
	"github.com/gin-gonic/gin"
)

// GinErrorHandler пишет AppError в ответ. Debug=false скрывает текст внутренних ошибок.
type GinErrorHandler struct {
	Debug bool
}

var defaultHandler = &GinErrorHandler{Debug: false}

// SetDebug переключает глобальный обработчик (включается в development)
func SetDebug(debug bool) {
	defaultHandler = &GinErrorHandler{Debug: debug}
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 && h.Debug && appErr.Err != nil {
		appErr = appErr.WithDetails(map[string]string{"cause": appErr.Err.Error()})
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, appErr)
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
