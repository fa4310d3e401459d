package repositories

import (
	"errors"

	"github.com/fachrinfl/ts-project-management-api/internal/models"

	"gorm.io/gorm"
)

// TaskFilter - пустые поля не фильтруют
type TaskFilter struct {
	ProjectID  string
	AssigneeID string
	Status     models.TaskStatus
	Priority   models.TaskPriority
	Pagination
}

type TaskRepository interface {
	Create(db *gorm.DB, task *models.Task) error
	FindByID(db *gorm.DB, id string) (*models.Task, error)
	// List сортирует по сроку: ближайшие первыми
	List(db *gorm.DB, filter TaskFilter) ([]models.Task, int64, error)
	FindAllByProject(db *gorm.DB, projectID string) ([]models.Task, error)
	Update(db *gorm.DB, task *models.Task, columns ...string) error
	Delete(db *gorm.DB, id string) error
}

type taskRepository struct{}

func NewTaskRepository() TaskRepository {
	return &taskRepository{}
}

func (r *taskRepository) Create(db *gorm.DB, task *models.Task) error {
	return db.Omit("Assignee", "CreatedBy", "Project").Create(task).Error
}

func (r *taskRepository) FindByID(db *gorm.DB, id string) (*models.Task, error) {
	var task models.Task
	err := db.Preload("Assignee").Preload("CreatedBy").Preload("Project").
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) List(db *gorm.DB, filter TaskFilter) ([]models.Task, int64, error) {
	query := db.Model(&models.Task{})
	if filter.ProjectID != "" {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.AssigneeID != "" {
		query = query.Where("assignee_id = ?", filter.AssigneeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	err := query.Preload("Assignee").Preload("CreatedBy").Preload("Project").
		Order("end_date ASC").
		Limit(filter.Limit()).Offset(filter.Offset()).
		Find(&tasks).Error
	return tasks, total, err
}

func (r *taskRepository) FindAllByProject(db *gorm.DB, projectID string) ([]models.Task, error) {
	var tasks []models.Task
	err := db.Where("project_id = ?", projectID).Order("end_date ASC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) Update(db *gorm.DB, task *models.Task, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	return db.Model(task).Select(columns).Updates(task).Error
}

func (r *taskRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
