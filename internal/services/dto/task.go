package dto

import (
	"time"

	"github.com/fachrinfl/ts-project-management-api/internal/models"
)

type CreateTaskRequest struct {
	Name        string    `json:"name" validate:"required" example:"Design landing page"`
	Description *string   `json:"description"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required,gtefield=StartDate"`
	Status      string    `json:"status" validate:"required,task_status" example:"todo"`
	Priority    string    `json:"priority" validate:"required,task_priority" example:"high"`
	AssigneeID  string    `json:"assigneeId" validate:"required"`
}

type UpdateTaskRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Status      *string    `json:"status" validate:"omitempty,task_status"`
	Priority    *string    `json:"priority" validate:"omitempty,task_priority"`
	AssigneeID  *string    `json:"assigneeId" validate:"omitempty,min=1"`
}

type TaskListQuery struct {
	ProjectID string `form:"projectId"`
	Status    string `form:"status" validate:"omitempty,task_status"`
	Priority  string `form:"priority" validate:"omitempty,task_priority"`
	PageQuery
}

type ProjectSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TaskDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	Status      string          `json:"status" example:"todo"`
	Priority    string          `json:"priority" example:"high"`
	AssigneeID  string          `json:"assigneeId"`
	CreatedByID string          `json:"createdById"`
	ProjectID   string          `json:"projectId"`
	Assignee    UserSummary     `json:"assignee"`
	CreatedBy   UserSummary     `json:"createdBy"`
	Project     *ProjectSummary `json:"project,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	IsOverdue   bool            `json:"isOverdue"`
	OverdueDays *int            `json:"overdueDays"`
}

func NewTaskDTO(t *models.Task) TaskDTO {
	out := TaskDTO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		AssigneeID:  t.AssigneeID,
		CreatedByID: t.CreatedByID,
		ProjectID:   t.ProjectID,
		Assignee:    NewUserSummary(&t.Assignee),
		CreatedBy:   NewUserSummary(&t.CreatedBy),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Project.ID != "" {
		out.Project = &ProjectSummary{ID: t.Project.ID, Name: t.Project.Name}
	}
	return out
}
