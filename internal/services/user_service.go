package services

import (
	"strings"
	"unicode/utf8"

	"github.com/fachrinfl/ts-project-management-api/internal/repositories"
	"github.com/fachrinfl/ts-project-management-api/internal/services/dto"
	"github.com/fachrinfl/ts-project-management-api/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	minSearchQueryLen = 2
	searchLimit       = 10
)

type UserService interface {
	// SearchByEmail ищет по подстроке email без учёта регистра, исключая самого пользователя
	SearchByEmail(db *gorm.DB, userID, query string) ([]dto.UserSummary, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) SearchByEmail(db *gorm.DB, userID, query string) ([]dto.UserSummary, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchQueryLen {
		return nil, apperrors.ValidationError(map[string]string{"q": "Must be at least 2 characters long"})
	}

	users, err := s.userRepo.SearchByEmail(db, query, userID, searchLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserSummaries(users), nil
}
