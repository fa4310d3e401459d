package models

import (
	"time"

	"gorm.io/datatypes"
)

// Document - ссылка на внешний документ проекта, хранится JSON-массивом
type Document struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Project struct {
	BaseModel
	Name        string                       `gorm:"type:varchar(255);not null"`
	Description *string                      `gorm:"type:text"`
	StartDate   time.Time                    `gorm:"not null"`
	EndDate     time.Time                    `gorm:"not null;index"`
	Status      ProjectStatus                `gorm:"type:varchar(20);not null;index"`
	Documents   datatypes.JSONSlice[Document] `gorm:"type:json"`
	CreatedByID string                       `gorm:"type:varchar(36);not null;index"`

	CreatedBy User   `gorm:"foreignKey:CreatedByID"`
	Teams     []User `gorm:"many2many:project_teams;constraint:OnDelete:CASCADE"`
	Tasks     []Task `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// HasMember - создатель или участник команды. Требует загруженного Teams.
func (p *Project) HasMember(userID string) bool {
	if p.CreatedByID == userID {
		return true
	}
	for _, member := range p.Teams {
		if member.ID == userID {
			return true
		}
	}
	return false
}
