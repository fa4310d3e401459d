package routes

import (
	"net/http"
	"strings"

	_ "github.com/fachrinfl/ts-project-management-api/docs"
	"github.com/fachrinfl/ts-project-management-api/internal/handlers"
	"github.com/fachrinfl/ts-project-management-api/internal/logger"
	"github.com/fachrinfl/ts-project-management-api/internal/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Options struct {
	Middlewares handlers.RouteMiddlewares
	// EnableSwagger - /swagger/*any, вне production
	EnableSwagger bool
	// LocalFiles - если хранилище локальное, файлы отдаются самим сервером
	LocalFiles *storage.LocalStorage
}

// RegisterRoutes регистрирует все HTTP маршруты
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, opts Options) {
	api := ginRouter.Group("/api")
	appHandlers.RegisterRoutes(api, opts.Middlewares)

	if opts.LocalFiles != nil && strings.HasPrefix(opts.LocalFiles.BaseURL(), "/") {
		url := opts.LocalFiles.BaseURL()
		ginRouter.StaticFS(url, http.Dir(opts.LocalFiles.BasePath()))
		logger.Info("Serving local uploads", "url", url, "path", opts.LocalFiles.BasePath())
	}

	if opts.EnableSwagger {
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		logger.Info("Swagger UI route /swagger/index.html registered")
	}

	ginRouter.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "message": "Route not found"})
	})
}
