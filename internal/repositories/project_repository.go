package repositories

import (
	"errors"

	"github.com/fachrinfl/ts-project-management-api/internal/models"

	"gorm.io/gorm"
)

type ProjectFilter struct {
	UserID string
	Name   string
	Status models.ProjectStatus
	Pagination
}

type ProjectRepository interface {
	Create(db *gorm.DB, project *models.Project) error
	// FindByID загружает проект вместе с создателем и командой
	FindByID(db *gorm.DB, id string) (*models.Project, error)
	// List - только проекты, где пользователь создатель или участник
	List(db *gorm.DB, filter ProjectFilter) ([]models.Project, int64, error)
	Update(db *gorm.DB, project *models.Project, columns ...string) error
	// ReplaceTeam очищает команду и записывает новый состав
	ReplaceTeam(db *gorm.DB, projectID string, members []models.User) error
	Delete(db *gorm.DB, id string) error
	FindTopActive(db *gorm.DB, userID string, limit int) ([]models.Project, error)
}

type projectRepository struct{}

func NewProjectRepository() ProjectRepository {
	return &projectRepository{}
}

// visibleTo ограничивает выборку проектами, доступными пользователю
func visibleTo(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"created_by_id = ? OR id IN (SELECT project_id FROM project_teams WHERE user_id = ?)",
			userID, userID,
		)
	}
}

func (r *projectRepository) Create(db *gorm.DB, project *models.Project) error {
	// Teams.* - пользователи уже существуют, пишем только связи
	return db.Omit("CreatedBy", "Tasks", "Teams.*").Create(project).Error
}

func (r *projectRepository) FindByID(db *gorm.DB, id string) (*models.Project, error) {
	var project models.Project
	err := db.Preload("CreatedBy").Preload("Teams").
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(db *gorm.DB, filter ProjectFilter) ([]models.Project, int64, error) {
	query := db.Model(&models.Project{}).Scopes(visibleTo(filter.UserID))
	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", containsPattern(filter.Name))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := query.Preload("CreatedBy").Preload("Teams").
		Order("created_at DESC").
		Limit(filter.Limit()).Offset(filter.Offset()).
		Find(&projects).Error
	return projects, total, err
}

func (r *projectRepository) Update(db *gorm.DB, project *models.Project, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	return db.Model(project).Select(columns).Updates(project).Error
}

func (r *projectRepository) ReplaceTeam(db *gorm.DB, projectID string, members []models.User) error {
	if err := db.Exec("DELETE FROM project_teams WHERE project_id = ?", projectID).Error; err != nil {
		return err
	}
	if len(members) == 0 {
		return nil
	}

	rows := make([]map[string]interface{}, 0, len(members))
	for _, m := range members {
		rows = append(rows, map[string]interface{}{"project_id": projectID, "user_id": m.ID})
	}
	return db.Table("project_teams").Create(rows).Error
}

func (r *projectRepository) Delete(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_teams WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		return nil
	})
}

func (r *projectRepository) FindTopActive(db *gorm.DB, userID string, limit int) ([]models.Project, error) {
	var projects []models.Project
	err := db.Scopes(visibleTo(userID)).
		Where("status = ?", models.ProjectStatusActive).
		Preload("CreatedBy").Preload("Teams").
		Order("end_date ASC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}
