package helpers

import (
	"net/http"
	"testing"
	"time"

	"github.com/fachrinfl/ts-project-management-api/internal/auth"
	"github.com/fachrinfl/ts-project-management-api/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

const DefaultPassword = "password123"

// Session - результат логина через API
type Session struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

// CreateUser пишет пользователя напрямую в БД с захешированным паролем
func (ts *TestServer) CreateUser(t *testing.T, name, email, password string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err, "Не удалось хешировать пароль")

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	require.NoError(t, ts.DB.Create(user).Error, "Не удалось создать пользователя %s", email)
	return user
}

// CreateAndLoginUser создаёт пользователя и логинит его через /api/auth/login
func (ts *TestServer) CreateAndLoginUser(t *testing.T, name, email string) *Session {
	t.Helper()

	user := ts.CreateUser(t, name, email, DefaultPassword)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": DefaultPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: %s", body)

	var login struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	DecodeJSON(t, body, &login)
	require.NotEmpty(t, login.AccessToken)
	require.NotEmpty(t, login.RefreshToken)

	return &Session{User: user, AccessToken: login.AccessToken, RefreshToken: login.RefreshToken}
}

// CreateProject создаёт проект владельца и добавляет участников в команду
func (ts *TestServer) CreateProject(t *testing.T, owner *models.User, name string, end time.Time, members ...*models.User) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:        name,
		StartDate:   end.AddDate(0, -1, 0),
		EndDate:     end,
		Status:      models.ProjectStatusActive,
		CreatedByID: owner.ID,
	}
	for _, m := range members {
		project.Teams = append(project.Teams, *m)
	}
	require.NoError(t, ts.DB.Omit("CreatedBy", "Tasks", "Teams.*").Create(project).Error, "Не удалось создать проект %s", name)
	return project
}

// CreateTask создаёт задачу в проекте
func (ts *TestServer) CreateTask(t *testing.T, project *models.Project, creator, assignee *models.User, status models.TaskStatus, end time.Time) *models.Task {
	t.Helper()

	task := &models.Task{
		Name:        "Task " + string(status),
		StartDate:   end.AddDate(0, 0, -7),
		EndDate:     end,
		Status:      status,
		Priority:    models.TaskPriorityMedium,
		AssigneeID:  assignee.ID,
		CreatedByID: creator.ID,
		ProjectID:   project.ID,
	}
	require.NoError(t, ts.DB.Omit(clause.Associations).Create(task).Error, "Не удалось создать задачу")
	return task
}
