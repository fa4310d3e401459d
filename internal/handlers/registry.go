package handlers

import "github.com/gin-gonic/gin"

// RouteMiddlewares - middleware, которые хэндлеры навешивают на свои группы
type RouteMiddlewares struct {
	RequireAuth gin.HandlerFunc
	RateLimit   gin.HandlerFunc
}

func passThrough(c *gin.Context) { c.Next() }

func (m RouteMiddlewares) withDefaults() RouteMiddlewares {
	if m.RequireAuth == nil {
		m.RequireAuth = passThrough
	}
	if m.RateLimit == nil {
		m.RateLimit = passThrough
	}
	return m
}

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	ProjectHandler   *ProjectHandler
	TaskHandler      *TaskHandler
	AnalyticsHandler *AnalyticsHandler
	UploadHandler    *UploadHandler
	UserHandler      *UserHandler
	HealthHandler    *HealthHandler
}

// RegisterRoutes монтирует маршруты всех хэндлеров в группу api
func (a *AppHandlers) RegisterRoutes(api *gin.RouterGroup, mw RouteMiddlewares) {
	mw = mw.withDefaults()

	a.HealthHandler.RegisterRoutes(api, mw)
	a.AuthHandler.RegisterRoutes(api, mw)
	a.ProjectHandler.RegisterRoutes(api, mw)
	a.TaskHandler.RegisterRoutes(api, mw)
	a.AnalyticsHandler.RegisterRoutes(api, mw)
	a.UploadHandler.RegisterRoutes(api, mw)
	a.UserHandler.RegisterRoutes(api, mw)
}
