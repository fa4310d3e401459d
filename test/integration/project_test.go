package integration_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/fachrinfl/ts-project-management-api/internal/models"
	"github.com/fachrinfl/ts-project-management-api/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectBody struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	CreatedByID string `json:"createdById"`
	IsOverdue   bool   `json:"isOverdue"`
	OverdueDays *int   `json:"overdueDays"`
	Teams       []struct {
		Email string `json:"email"`
	} `json:"teams"`
	Documents []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"documents"`
}

type taskBody struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	AssigneeID  string `json:"assigneeId"`
	ProjectID   string `json:"projectId"`
	IsOverdue   bool   `json:"isOverdue"`
	OverdueDays *int   `json:"overdueDays"`
}

type paginationBody struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	PerPage     int   `json:"perPage"`
}

func TestProjectLifecycle(t *testing.T) {
	ts := GetTestServer(t)
	owner := ts.CreateAndLoginUser(t, "Owner", "owner@test.com")
	member := ts.CreateAndLoginUser(t, "Member", "a@test.com")
	stranger := ts.CreateAndLoginUser(t, "Stranger", "stranger@test.com")

	start := time.Now().UTC().AddDate(0, 0, -1).Truncate(time.Second)
	end := start.AddDate(0, 1, 0)

	// 1. Создание: неизвестный email из команды пропускается
	res, body := ts.SendRequest(t, http.MethodPost, "/api/projects", owner.AccessToken, map[string]interface{}{
		"name":       "Website",
		"startDate":  start,
		"endDate":    end,
		"status":     "active",
		"documents":  []map[string]string{{"name": "Brief", "url": "https://example.com/brief.pdf"}},
		"teamEmails": []string{"a@test.com", "ghost@test.com"},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created struct {
		Message string      `json:"message"`
		Project projectBody `json:"project"`
	}
	helpers.DecodeJSON(t, body, &created)
	assert.Equal(t, "Project created successfully", created.Message)
	assert.Equal(t, owner.User.ID, created.Project.CreatedByID)
	require.Len(t, created.Project.Teams, 1)
	assert.Equal(t, "a@test.com", created.Project.Teams[0].Email)
	require.Len(t, created.Project.Documents, 1)
	assert.False(t, created.Project.IsOverdue)
	assert.Nil(t, created.Project.OverdueDays)

	projectID := created.Project.ID
	path := "/api/projects/" + projectID

	// 2. Участник команды видит проект, посторонний нет
	res, _ = ts.SendRequest(t, http.MethodGet, path, member.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, path, stranger.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/projects/does-not-exist", owner.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// 3. Список у участника содержит проект
	res, body = ts.SendRequest(t, http.MethodGet, "/api/projects?perPage=5", member.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var list struct {
		Data []projectBody `json:"data"`
		Meta struct {
			Pagination paginationBody `json:"pagination"`
		} `json:"meta"`
	}
	helpers.DecodeJSON(t, body, &list)
	require.Len(t, list.Data, 1)
	assert.Equal(t, projectID, list.Data[0].ID)
	assert.Equal(t, paginationBody{CurrentPage: 1, TotalPages: 1, TotalItems: 1, PerPage: 5}, list.Meta.Pagination)

	// 4. Участник обновляет статус, команда не меняется
	res, body = ts.SendRequest(t, http.MethodPut, path, member.AccessToken, map[string]interface{}{
		"status": "on_hold",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var updated struct {
		Data projectBody `json:"data"`
	}
	helpers.DecodeJSON(t, body, &updated)
	assert.Equal(t, "on_hold", updated.Data.Status)
	assert.Len(t, updated.Data.Teams, 1)

	// 5. Удалить может только создатель
	res, _ = ts.SendRequest(t, http.MethodDelete, path, member.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	ts.CreateTask(t, &models.Project{BaseModel: models.BaseModel{ID: projectID}}, owner.User, member.User, models.TaskStatusTodo, end)

	res, body = ts.SendRequest(t, http.MethodDelete, path, owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var tasksLeft int64
	ts.DB.Model(&models.Task{}).Where("project_id = ?", projectID).Count(&tasksLeft)
	assert.Zero(t, tasksLeft)

	res, _ = ts.SendRequest(t, http.MethodGet, path, owner.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestProjectOverdue(t *testing.T) {
	ts := GetTestServer(t)
	owner := ts.CreateAndLoginUser(t, "Owner", "owner@test.com")

	ended := time.Now().UTC().AddDate(0, 0, -3)
	project := ts.CreateProject(t, owner.User, "Late", ended)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/projects/"+project.ID, owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var out struct {
		Data projectBody `json:"data"`
	}
	helpers.DecodeJSON(t, body, &out)
	assert.True(t, out.Data.IsOverdue)
	require.NotNil(t, out.Data.OverdueDays)
	assert.GreaterOrEqual(t, *out.Data.OverdueDays, 3)
}

func TestTaskLifecycle(t *testing.T) {
	ts := GetTestServer(t)
	owner := ts.CreateAndLoginUser(t, "Owner", "owner@test.com")
	member := ts.CreateAndLoginUser(t, "Member", "a@test.com")
	stranger := ts.CreateAndLoginUser(t, "Stranger", "stranger@test.com")

	project := ts.CreateProject(t, owner.User, "Website", time.Now().UTC().AddDate(0, 1, 0), member.User)
	tasksPath := "/api/projects/" + project.ID + "/tasks"

	start := time.Now().UTC().AddDate(0, 0, -10).Truncate(time.Second)
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Truncate(time.Second)

	// 1. Исполнитель должен существовать
	res, body := ts.SendRequest(t, http.MethodPost, tasksPath, owner.AccessToken, map[string]interface{}{
		"name":       "Landing",
		"startDate":  start,
		"endDate":    yesterday,
		"status":     "todo",
		"priority":   "high",
		"assigneeId": "missing-user",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	// 2. Создание просроченной задачи
	res, body = ts.SendRequest(t, http.MethodPost, tasksPath, owner.AccessToken, map[string]interface{}{
		"name":       "Landing",
		"startDate":  start,
		"endDate":    yesterday,
		"status":     "todo",
		"priority":   "high",
		"assigneeId": member.User.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created struct {
		Message string   `json:"message"`
		Data    taskBody `json:"data"`
	}
	helpers.DecodeJSON(t, body, &created)
	assert.Equal(t, "Task created successfully", created.Message)
	assert.Equal(t, project.ID, created.Data.ProjectID)
	assert.True(t, created.Data.IsOverdue)
	require.NotNil(t, created.Data.OverdueDays)
	assert.GreaterOrEqual(t, *created.Data.OverdueDays, 1)

	taskPath := tasksPath + "/" + created.Data.ID

	// 3. Посторонний не видит задачи проекта
	res, _ = ts.SendRequest(t, http.MethodGet, taskPath, stranger.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// 4. Исполнитель видит задачу в /tasks
	res, body = ts.SendRequest(t, http.MethodGet, "/api/tasks", member.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var mine struct {
		Data []taskBody `json:"data"`
	}
	helpers.DecodeJSON(t, body, &mine)
	require.Len(t, mine.Data, 1)
	assert.Equal(t, created.Data.ID, mine.Data[0].ID)

	// 5. Завершённая задача не просрочена
	res, body = ts.SendRequest(t, http.MethodPut, taskPath, member.AccessToken, map[string]interface{}{
		"status": "done",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var updated struct {
		Data taskBody `json:"data"`
	}
	helpers.DecodeJSON(t, body, &updated)
	assert.Equal(t, "done", updated.Data.Status)
	assert.False(t, updated.Data.IsOverdue)
	assert.Nil(t, updated.Data.OverdueDays)

	// 6. Фильтр по статусу
	res, body = ts.SendRequest(t, http.MethodGet, tasksPath+"?status=todo", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var todo struct {
		Data []taskBody `json:"data"`
	}
	helpers.DecodeJSON(t, body, &todo)
	assert.Empty(t, todo.Data)

	// 7. Удалить может только создатель задачи
	deletePath := "/api/projects/tasks/" + created.Data.ID
	res, _ = ts.SendRequest(t, http.MethodDelete, deletePath, member.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodDelete, deletePath, owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodDelete, deletePath, owner.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestUserSearch(t *testing.T) {
	ts := GetTestServer(t)
	me := ts.CreateAndLoginUser(t, "Me", "jan.me@test.com")
	ts.CreateUser(t, "Janet", "janet@test.com", helpers.DefaultPassword)
	ts.CreateUser(t, "Bob", "bob@test.com", helpers.DefaultPassword)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/users/search?q=jan", me.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var out struct {
		Data []struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	helpers.DecodeJSON(t, body, &out)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "janet@test.com", out.Data[0].Email)
}

func TestHealth(t *testing.T) {
	ts := GetTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"database":true`)
}
