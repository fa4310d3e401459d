package repositories

import (
	"github.com/fachrinfl/ts-project-management-api/internal/models"

	"gorm.io/gorm"
)

// TaskCounts - всего задач и выполненных в одном проекте
type TaskCounts struct {
	Total int64
	Done  int64
}

type AnalyticsRepository interface {
	// TaskCountsByProjects считает задачи одним сгруппированным запросом.
	// Проекты без задач в результат не попадают.
	TaskCountsByProjects(db *gorm.DB, projectIDs []string) (map[string]TaskCounts, error)
}

type analyticsRepository struct{}

func NewAnalyticsRepository() AnalyticsRepository {
	return &analyticsRepository{}
}

func (r *analyticsRepository) TaskCountsByProjects(db *gorm.DB, projectIDs []string) (map[string]TaskCounts, error) {
	counts := make(map[string]TaskCounts, len(projectIDs))
	if len(projectIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ProjectID string
		Total     int64
		Done      int64
	}
	err := db.Model(&models.Task{}).
		Select("project_id, COUNT(*) AS total, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS done", models.TaskStatusDone).
		Where("project_id IN ?", projectIDs).
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ProjectID] = TaskCounts{Total: row.Total, Done: row.Done}
	}
	return counts, nil
}
