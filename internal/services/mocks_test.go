package services

import (
	"context"
	"io"
	"time"

	"github.com/fachrinfl/ts-project-management-api/internal/models"
	"github.com/fachrinfl/ts-project-management-api/internal/repositories"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	args := m.Called(db, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	args := m.Called(db, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByEmails(db *gorm.DB, emails []string) ([]models.User, error) {
	args := m.Called(db, emails)
	u, _ := args.Get(0).([]models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Create(db *gorm.DB, user *models.User) error {
	args := m.Called(db, user)
	if args.Error(0) == nil && user.ID == "" {
		user.ID = "new-user-id"
	}
	return args.Error(0)
}

func (m *mockUserRepo) Update(db *gorm.DB, user *models.User, columns ...string) error {
	return m.Called(db, user, columns).Error(0)
}

func (m *mockUserRepo) UpdatePassword(db *gorm.DB, userID, passwordHash string) error {
	return m.Called(db, userID, passwordHash).Error(0)
}

func (m *mockUserRepo) SearchByEmail(db *gorm.DB, query, excludeUserID string, limit int) ([]models.User, error) {
	args := m.Called(db, query, excludeUserID, limit)
	u, _ := args.Get(0).([]models.User)
	return u, args.Error(1)
}

type mockRefreshTokenRepo struct{ mock.Mock }

func (m *mockRefreshTokenRepo) Create(db *gorm.DB, token *models.RefreshToken) error {
	return m.Called(db, token).Error(0)
}

func (m *mockRefreshTokenRepo) FindByToken(db *gorm.DB, tokenString string) (*models.RefreshToken, error) {
	args := m.Called(db, tokenString)
	t, _ := args.Get(0).(*models.RefreshToken)
	return t, args.Error(1)
}

func (m *mockRefreshTokenRepo) DeleteByToken(db *gorm.DB, tokenString string) error {
	return m.Called(db, tokenString).Error(0)
}

func (m *mockRefreshTokenRepo) CleanExpired(db *gorm.DB, userID string, now time.Time) error {
	return m.Called(db, userID, now).Error(0)
}

func (m *mockRefreshTokenRepo) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	args := m.Called(db, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockProjectRepo struct{ mock.Mock }

func (m *mockProjectRepo) Create(db *gorm.DB, project *models.Project) error {
	args := m.Called(db, project)
	if args.Error(0) == nil && project.ID == "" {
		project.ID = "new-project-id"
	}
	return args.Error(0)
}

func (m *mockProjectRepo) FindByID(db *gorm.DB, id string) (*models.Project, error) {
	args := m.Called(db, id)
	p, _ := args.Get(0).(*models.Project)
	return p, args.Error(1)
}

func (m *mockProjectRepo) List(db *gorm.DB, filter repositories.ProjectFilter) ([]models.Project, int64, error) {
	args := m.Called(db, filter)
	p, _ := args.Get(0).([]models.Project)
	return p, args.Get(1).(int64), args.Error(2)
}

func (m *mockProjectRepo) Update(db *gorm.DB, project *models.Project, columns ...string) error {
	return m.Called(db, project, columns).Error(0)
}

func (m *mockProjectRepo) ReplaceTeam(db *gorm.DB, projectID string, members []models.User) error {
	return m.Called(db, projectID, members).Error(0)
}

func (m *mockProjectRepo) Delete(db *gorm.DB, id string) error {
	return m.Called(db, id).Error(0)
}

func (m *mockProjectRepo) FindTopActive(db *gorm.DB, userID string, limit int) ([]models.Project, error) {
	args := m.Called(db, userID, limit)
	p, _ := args.Get(0).([]models.Project)
	return p, args.Error(1)
}

type mockTaskRepo struct{ mock.Mock }

func (m *mockTaskRepo) Create(db *gorm.DB, task *models.Task) error {
	args := m.Called(db, task)
	if args.Error(0) == nil && task.ID == "" {
		task.ID = "new-task-id"
	}
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(db *gorm.DB, id string) (*models.Task, error) {
	args := m.Called(db, id)
	t, _ := args.Get(0).(*models.Task)
	return t, args.Error(1)
}

func (m *mockTaskRepo) List(db *gorm.DB, filter repositories.TaskFilter) ([]models.Task, int64, error) {
	args := m.Called(db, filter)
	t, _ := args.Get(0).([]models.Task)
	return t, args.Get(1).(int64), args.Error(2)
}

func (m *mockTaskRepo) FindAllByProject(db *gorm.DB, projectID string) ([]models.Task, error) {
	args := m.Called(db, projectID)
	t, _ := args.Get(0).([]models.Task)
	return t, args.Error(1)
}

func (m *mockTaskRepo) Update(db *gorm.DB, task *models.Task, columns ...string) error {
	return m.Called(db, task, columns).Error(0)
}

func (m *mockTaskRepo) Delete(db *gorm.DB, id string) error {
	return m.Called(db, id).Error(0)
}

type mockAnalyticsRepo struct{ mock.Mock }

func (m *mockAnalyticsRepo) TaskCountsByProjects(db *gorm.DB, projectIDs []string) (map[string]repositories.TaskCounts, error) {
	args := m.Called(db, projectIDs)
	c, _ := args.Get(0).(map[string]repositories.TaskCounts)
	return c, args.Error(1)
}

type mockStorage struct {
	mock.Mock
	saved map[string][]byte
}

func (m *mockStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	data, _ := io.ReadAll(reader)
	if m.saved == nil {
		m.saved = map[string][]byte{}
	}
	m.saved[key] = data
	return m.Called(key, contentType).Error(0)
}

func (m *mockStorage) URL(key string) string {
	return "https://cdn.test/" + key
}

func (m *mockStorage) Ping(ctx context.Context) error {
	return m.Called().Error(0)
}

// fixtures

func newUser(id, email string) models.User {
	u := models.User{Name: "User " + id, Email: email}
	u.ID = id
	return u
}

func newProject(id, creator string, team ...string) *models.Project {
	p := &models.Project{
		Name:        "Project " + id,
		Status:      models.ProjectStatusActive,
		CreatedByID: creator,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	p.ID = id
	p.CreatedBy = newUser(creator, creator+"@x.com")
	for _, m := range team {
		p.Teams = append(p.Teams, newUser(m, m+"@x.com"))
	}
	return p
}

func newTaskModel(id, projectID, creator string) *models.Task {
	t := &models.Task{
		Name:        "Task " + id,
		Status:      models.TaskStatusTodo,
		Priority:    models.TaskPriorityHigh,
		ProjectID:   projectID,
		CreatedByID: creator,
		AssigneeID:  creator,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	t.ID = id
	return t
}

func directTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return fn(db)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
