package models

import "time"

type User struct {
	BaseModel
	Name         string  `gorm:"type:varchar(255);not null"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string  `gorm:"not null"`
	Photo        *string `gorm:"type:text"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// RefreshToken - сессия: пока запись существует, refresh-токен можно обменять на access-токен
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"type:varchar(36);not null;index"`
	Token     string    `gorm:"type:varchar(512);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
