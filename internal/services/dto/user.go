package dto

import (
	"time"

	"github.com/fachrinfl/ts-project-management-api/internal/models"
)

// UserDTO - публичное представление пользователя, без хеша пароля
type UserDTO struct {
	ID        string    `json:"id" example:"6f1c2a9e-3b7d-4d2e-9a51-0c8e4f2b7a11"`
	Name      string    `json:"name" example:"Jane Doe"`
	Email     string    `json:"email" example:"jane@example.com"`
	Photo     *string   `json:"photo" example:"https://cdn.example.com/avatars/jane.png"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummary - короткая форма для создателя, команды и исполнителя
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Photo:     u.Photo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewUserSummary(u *models.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

func NewUserSummaries(users []models.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for i := range users {
		out = append(out, NewUserSummary(&users[i]))
	}
	return out
}

type UserSearchQuery struct {
	Q string `form:"q" validate:"required"`
}
