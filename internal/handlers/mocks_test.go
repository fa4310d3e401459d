package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/fachrinfl/ts-project-management-api/internal/middleware"
	"github.com/fachrinfl/ts-project-management-api/internal/services"
	"github.com/fachrinfl/ts-project-management-api/internal/services/dto"
	"github.com/fachrinfl/ts-project-management-api/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ---- mocks ----

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserDTO, error) {
	args := m.Called(req)
	u, _ := args.Get(0).(*dto.UserDTO)
	return u, args.Error(1)
}

func (m *mockAuthService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResult, error) {
	args := m.Called(req)
	r, _ := args.Get(0).(*dto.LoginResult)
	return r, args.Error(1)
}

func (m *mockAuthService) RefreshToken(db *gorm.DB, refreshToken string) (string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) Logout(db *gorm.DB, refreshToken string) error {
	return m.Called(refreshToken).Error(0)
}

func (m *mockAuthService) UpdatePassword(db *gorm.DB, userID string, req *dto.UpdatePasswordRequest) error {
	return m.Called(userID, req).Error(0)
}

func (m *mockAuthService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	args := m.Called(userID, req)
	u, _ := args.Get(0).(*dto.UserDTO)
	return u, args.Error(1)
}

func (m *mockAuthService) GetMe(db *gorm.DB, userID string) (*dto.UserDTO, error) {
	args := m.Called(userID)
	u, _ := args.Get(0).(*dto.UserDTO)
	return u, args.Error(1)
}

type mockProjectService struct{ mock.Mock }

func (m *mockProjectService) List(db *gorm.DB, userID string, query *dto.ProjectListQuery) (*dto.PaginatedResponse[dto.ProjectDTO], error) {
	args := m.Called(userID, query)
	r, _ := args.Get(0).(*dto.PaginatedResponse[dto.ProjectDTO])
	return r, args.Error(1)
}

func (m *mockProjectService) Create(db *gorm.DB, userID string, req *dto.CreateProjectRequest) (*dto.ProjectDTO, error) {
	args := m.Called(userID, req)
	p, _ := args.Get(0).(*dto.ProjectDTO)
	return p, args.Error(1)
}

func (m *mockProjectService) Get(db *gorm.DB, userID, projectID string) (*dto.ProjectDTO, error) {
	args := m.Called(userID, projectID)
	p, _ := args.Get(0).(*dto.ProjectDTO)
	return p, args.Error(1)
}

func (m *mockProjectService) Update(db *gorm.DB, userID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectDTO, error) {
	args := m.Called(userID, projectID, req)
	p, _ := args.Get(0).(*dto.ProjectDTO)
	return p, args.Error(1)
}

func (m *mockProjectService) Delete(db *gorm.DB, userID, projectID string) error {
	return m.Called(userID, projectID).Error(0)
}

type mockTaskService struct{ mock.Mock }

func (m *mockTaskService) ListByProject(db *gorm.DB, userID, projectID string, query *dto.TaskListQuery) (*dto.PaginatedResponse[dto.TaskDTO], error) {
	args := m.Called(userID, projectID, query)
	r, _ := args.Get(0).(*dto.PaginatedResponse[dto.TaskDTO])
	return r, args.Error(1)
}

func (m *mockTaskService) ListMine(db *gorm.DB, userID string, query *dto.TaskListQuery) (*dto.PaginatedResponse[dto.TaskDTO], error) {
	args := m.Called(userID, query)
	r, _ := args.Get(0).(*dto.PaginatedResponse[dto.TaskDTO])
	return r, args.Error(1)
}

func (m *mockTaskService) Create(db *gorm.DB, userID, projectID string, req *dto.CreateTaskRequest) (*dto.TaskDTO, error) {
	args := m.Called(userID, projectID, req)
	t, _ := args.Get(0).(*dto.TaskDTO)
	return t, args.Error(1)
}

func (m *mockTaskService) Get(db *gorm.DB, userID, projectID, taskID string) (*dto.TaskDTO, error) {
	args := m.Called(userID, projectID, taskID)
	t, _ := args.Get(0).(*dto.TaskDTO)
	return t, args.Error(1)
}

func (m *mockTaskService) Update(db *gorm.DB, userID, projectID, taskID string, req *dto.UpdateTaskRequest) (*dto.TaskDTO, error) {
	args := m.Called(userID, projectID, taskID, req)
	t, _ := args.Get(0).(*dto.TaskDTO)
	return t, args.Error(1)
}

func (m *mockTaskService) Delete(db *gorm.DB, userID, taskID string) error {
	return m.Called(userID, taskID).Error(0)
}

type mockAnalyticsService struct{ mock.Mock }

func (m *mockAnalyticsService) ProjectAnalytics(db *gorm.DB, userID, projectID string) (*dto.ProjectAnalytics, error) {
	args := m.Called(userID, projectID)
	r, _ := args.Get(0).(*dto.ProjectAnalytics)
	return r, args.Error(1)
}

func (m *mockAnalyticsService) WeeklyProjectStatus(db *gorm.DB, userID, projectID string) ([]dto.DayStatus, error) {
	args := m.Called(userID, projectID)
	r, _ := args.Get(0).([]dto.DayStatus)
	return r, args.Error(1)
}

func (m *mockAnalyticsService) TopActiveProjects(db *gorm.DB, userID string) ([]dto.TopProject, error) {
	args := m.Called(userID)
	r, _ := args.Get(0).([]dto.TopProject)
	return r, args.Error(1)
}

type mockUploadService struct {
	mock.Mock
	received []byte
}

func (m *mockUploadService) Upload(ctx context.Context, file *services.UploadFile) (*dto.UploadResult, error) {
	// сервис отвечает за удаление временного файла, здесь только читаем содержимое
	m.received, _ = os.ReadFile(file.TempPath)
	args := m.Called(file.OriginalName, file.Folder)
	r, _ := args.Get(0).(*dto.UploadResult)
	return r, args.Error(1)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) SearchByEmail(db *gorm.DB, userID, query string) ([]dto.UserSummary, error) {
	args := m.Called(userID, query)
	r, _ := args.Get(0).([]dto.UserSummary)
	return r, args.Error(1)
}

type mockHealthService struct{ mock.Mock }

func (m *mockHealthService) Check(ctx context.Context, db *gorm.DB) dto.HealthStatus {
	return m.Called().Get(0).(dto.HealthStatus)
}

// ---- test router ----

const testUserHeader = "X-Test-User"

// fakeAuth подставляет userID из заголовка вместо проверки JWT
func fakeAuth(c *gin.Context) {
	if id := c.GetHeader(testUserHeader); id != "" {
		c.Set("userID", id)
	}
	c.Next()
}

type testApp struct {
	router    *gin.Engine
	auth      *mockAuthService
	projects  *mockProjectService
	tasks     *mockTaskService
	analytics *mockAnalyticsService
	uploads   *mockUploadService
	users     *mockUserService
	health    *mockHealthService
	tempDir   string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	app := &testApp{
		auth:      &mockAuthService{},
		projects:  &mockProjectService{},
		tasks:     &mockTaskService{},
		analytics: &mockAnalyticsService{},
		uploads:   &mockUploadService{},
		users:     &mockUserService{},
		health:    &mockHealthService{},
		tempDir:   t.TempDir(),
	}

	base := NewBaseHandler(validator.New())
	handlers := &AppHandlers{
		AuthHandler:      NewAuthHandler(base, app.auth),
		ProjectHandler:   NewProjectHandler(base, app.projects),
		TaskHandler:      NewTaskHandler(base, app.tasks),
		AnalyticsHandler: NewAnalyticsHandler(base, app.analytics),
		UploadHandler:    NewUploadHandler(base, app.uploads, app.tempDir),
		UserHandler:      NewUserHandler(base, app.users),
		HealthHandler:    NewHealthHandler(base, app.health),
	}

	r := gin.New()
	r.Use(middleware.DBMiddleware(nil))
	handlers.RegisterRoutes(r.Group("/api"), RouteMiddlewares{RequireAuth: fakeAuth})
	app.router = r
	return app
}

func (a *testApp) do(method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(testUserHeader, userID)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
