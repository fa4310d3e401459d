package services

import (
	"github.com/fachrinfl/ts-project-management-api/internal/auth"
	"github.com/fachrinfl/ts-project-management-api/internal/repositories"
	"github.com/fachrinfl/ts-project-management-api/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService      AuthService
	ProjectService   ProjectService
	TaskService      TaskService
	AnalyticsService AnalyticsService
	UploadService    UploadService
	UserService      UserService
	HealthService    HealthService
}

// NewServiceContainer собирает сервисы поверх репозиториев. Репозитории без состояния,
// *gorm.DB приходит в каждый вызов из DBMiddleware.
func NewServiceContainer(tokens *auth.TokenManager, store storage.Storage, uploadCfg UploadConfig) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	projectRepo := repositories.NewProjectRepository()
	taskRepo := repositories.NewTaskRepository()
	analyticsRepo := repositories.NewAnalyticsRepository()

	return &ServiceContainer{
		AuthService:      NewAuthService(userRepo, refreshTokenRepo, tokens),
		ProjectService:   NewProjectService(projectRepo, userRepo),
		TaskService:      NewTaskService(taskRepo, projectRepo, userRepo),
		AnalyticsService: NewAnalyticsService(analyticsRepo, projectRepo, taskRepo),
		UploadService:    NewUploadService(store, uploadCfg),
		UserService:      NewUserService(userRepo),
		HealthService:    NewHealthService(store),
	}
}
