package dto

import (
	"time"

	"github.com/fachrinfl/ts-project-management-api/internal/models"
)

type DocumentDTO struct {
	Name string `json:"name" validate:"required" example:"Brief"`
	URL  string `json:"url" validate:"required,url" example:"https://example.com/brief.pdf"`
}

type CreateProjectRequest struct {
	Name        string        `json:"name" validate:"required" example:"Website redesign"`
	Description *string       `json:"description"`
	StartDate   time.Time     `json:"startDate" validate:"required" example:"2024-03-01T00:00:00Z"`
	EndDate     time.Time     `json:"endDate" validate:"required,gtefield=StartDate" example:"2024-04-01T00:00:00Z"`
	Status      string        `json:"status" validate:"required,project_status" example:"active"`
	Documents   []DocumentDTO `json:"documents" validate:"omitempty,dive"`
	TeamEmails  []string      `json:"teamEmails" validate:"omitempty,dive,email"`
}

// UpdateProjectRequest - nil означает "не менять". TeamEmails != nil заменяет команду целиком.
type UpdateProjectRequest struct {
	Name        *string        `json:"name" validate:"omitempty,min=1"`
	Description *string        `json:"description"`
	StartDate   *time.Time     `json:"startDate"`
	EndDate     *time.Time     `json:"endDate"`
	Status      *string        `json:"status" validate:"omitempty,project_status"`
	Documents   *[]DocumentDTO `json:"documents" validate:"omitempty,dive"`
	TeamEmails  *[]string      `json:"teamEmails" validate:"omitempty,dive,email"`
}

type ProjectListQuery struct {
	Name   string `form:"name"`
	Status string `form:"status" validate:"omitempty,project_status"`
	PageQuery
}

type ProjectDTO struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	Status      string        `json:"status" example:"active"`
	Documents   []DocumentDTO `json:"documents"`
	CreatedByID string        `json:"createdById"`
	CreatedBy   UserSummary   `json:"createdBy"`
	Teams       []UserSummary `json:"teams"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	IsOverdue   bool          `json:"isOverdue"`
	OverdueDays *int          `json:"overdueDays"`
}

type ProjectCreatedResponse struct {
	Message string     `json:"message" example:"Project created successfully"`
	Project ProjectDTO `json:"project"`
}

func NewProjectDTO(p *models.Project) ProjectDTO {
	docs := make([]DocumentDTO, 0, len(p.Documents))
	for _, d := range p.Documents {
		docs = append(docs, DocumentDTO{Name: d.Name, URL: d.URL})
	}
	return ProjectDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      string(p.Status),
		Documents:   docs,
		CreatedByID: p.CreatedByID,
		CreatedBy:   NewUserSummary(&p.CreatedBy),
		Teams:       NewUserSummaries(p.Teams),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToDocuments(in []DocumentDTO) []models.Document {
	out := make([]models.Document, 0, len(in))
	for _, d := range in {
		out = append(out, models.Document{Name: d.Name, URL: d.URL})
	}
	return out
}
