package repositories

import (
	"errors"

	"github.com/fachrinfl/ts-project-management-api/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	// FindByEmails возвращает только существующих пользователей, неизвестные адреса пропускаются
	FindByEmails(db *gorm.DB, emails []string) ([]models.User, error)
	Create(db *gorm.DB, user *models.User) error
	// Update сохраняет только перечисленные колонки
	Update(db *gorm.DB, user *models.User, columns ...string) error
	UpdatePassword(db *gorm.DB, userID, passwordHash string) error
	SearchByEmail(db *gorm.DB, query, excludeUserID string, limit int) ([]models.User, error)
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmails(db *gorm.DB, emails []string) ([]models.User, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	var users []models.User
	err := db.Where("email IN ?", emails).Order("email").Find(&users).Error
	return users, err
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) Update(db *gorm.DB, user *models.User, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	return db.Model(user).Select(columns).Updates(user).Error
}

func (r *userRepository) UpdatePassword(db *gorm.DB, userID, passwordHash string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SearchByEmail(db *gorm.DB, query, excludeUserID string, limit int) ([]models.User, error) {
	var users []models.User
	err := db.Where("LOWER(email) LIKE LOWER(?)", containsPattern(query)).
		Where("id <> ?", excludeUserID).
		Order("email").
		Limit(limit).
		Find(&users).Error
	return users, err
}
