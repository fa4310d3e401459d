package repositories

import (
	"errors"
	"time"

	"github.com/fachrinfl/ts-project-management-api/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrRefreshTokenNotFound возвращается, когда refresh-токен не найден в БД
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

// RefreshTokenRepository хранит сессии: одна запись на каждый вход пользователя
type RefreshTokenRepository interface {
	Create(db *gorm.DB, token *models.RefreshToken) error

	// FindByToken находит refresh-токен по его строковому значению
	FindByToken(db *gorm.DB, tokenString string) (*models.RefreshToken, error)

	// DeleteByToken удаляет сессию, ErrRefreshTokenNotFound если её уже нет
	DeleteByToken(db *gorm.DB, tokenString string) error

	// CleanExpired удаляет истекшие сессии пользователя при очередном входе
	CleanExpired(db *gorm.DB, userID string, now time.Time) error

	// DeleteExpired удаляет истекшие сессии всех пользователей, возвращает число удалённых
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)
}

type refreshTokenRepository struct{}

func NewRefreshTokenRepository() RefreshTokenRepository {
	return &refreshTokenRepository{}
}

func (r *refreshTokenRepository) Create(db *gorm.DB, token *models.RefreshToken) error {
	return db.Create(token).Error
}

func (r *refreshTokenRepository) FindByToken(db *gorm.DB, tokenString string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := db.Where("token = ?", tokenString).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepository) DeleteByToken(db *gorm.DB, tokenString string) error {
	result := db.Where("token = ?", tokenString).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRefreshTokenNotFound
	}
	return nil
}

func (r *refreshTokenRepository) CleanExpired(db *gorm.DB, userID string, now time.Time) error {
	return db.Where("user_id = ? AND expires_at < ?", userID, now).Delete(&models.RefreshToken{}).Error
}

func (r *refreshTokenRepository) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expires_at < ?", now).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}
