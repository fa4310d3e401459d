package models

import "time"

type Task struct {
	BaseModel
	Name        string       `gorm:"type:varchar(255);not null"`
	Description *string      `gorm:"type:text"`
	StartDate   time.Time    `gorm:"not null"`
	EndDate     time.Time    `gorm:"not null;index"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;index"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null"`
	AssigneeID  string       `gorm:"type:varchar(36);not null;index"`
	CreatedByID string       `gorm:"type:varchar(36);not null;index"`
	ProjectID   string       `gorm:"type:varchar(36);not null;index"`

	Assignee  User    `gorm:"foreignKey:AssigneeID"`
	CreatedBy User    `gorm:"foreignKey:CreatedByID"`
	Project   Project `gorm:"foreignKey:ProjectID"`
}

func (t *Task) IsDone() bool {
	return t.Status == TaskStatusDone
}
