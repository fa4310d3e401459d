package services

import (
	"time"

	"github.com/fachrinfl/ts-project-management-api/internal/repositories"
	"github.com/fachrinfl/ts-project-management-api/internal/services/dto"
	"github.com/fachrinfl/ts-project-management-api/pkg/apperrors"

	"gorm.io/gorm"
)

const topProjectsLimit = 5

type AnalyticsService interface {
	ProjectAnalytics(db *gorm.DB, userID, projectID string) (*dto.ProjectAnalytics, error)
	WeeklyProjectStatus(db *gorm.DB, userID, projectID string) ([]dto.DayStatus, error)
	TopActiveProjects(db *gorm.DB, userID string) ([]dto.TopProject, error)
}

type analyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
	projectRepo   repositories.ProjectRepository
	taskRepo      repositories.TaskRepository
	now           func() time.Time
}

func NewAnalyticsService(
	analyticsRepo repositories.AnalyticsRepository,
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		projectRepo:   projectRepo,
		taskRepo:      taskRepo,
		now:           time.Now,
	}
}

func (s *analyticsService) ProjectAnalytics(db *gorm.DB, userID, projectID string) (*dto.ProjectAnalytics, error) {
	project, err := loadAccessibleProject(db, s.projectRepo, userID, projectID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindAllByProject(db, project.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	breakdown := BuildTaskBreakdown(tasks, s.now())
	return &dto.ProjectAnalytics{
		ProjectID:      project.ID,
		ProjectName:    project.Name,
		TotalTasks:     len(tasks),
		TeamMembers:    len(project.Teams),
		TaskBreakdown:  breakdown,
		CompletionRate: CompletionRate(breakdown.Done, len(tasks)),
	}, nil
}

func (s *analyticsService) WeeklyProjectStatus(db *gorm.DB, userID, projectID string) ([]dto.DayStatus, error) {
	project, err := loadAccessibleProject(db, s.projectRepo, userID, projectID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindAllByProject(db, project.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return BuildWeeklyStatus(tasks, s.now()), nil
}

// TopActiveProjects - активные проекты пользователя с ближайшим сроком
func (s *analyticsService) TopActiveProjects(db *gorm.DB, userID string) ([]dto.TopProject, error) {
	projects, err := s.projectRepo.FindTopActive(db, userID, topProjectsLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	counts, err := s.analyticsRepo.TaskCountsByProjects(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.TopProject, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		c := counts[p.ID]
		result = append(result, dto.TopProject{
			ProjectID:      p.ID,
			ProjectName:    p.Name,
			EndDate:        p.EndDate,
			Status:         string(p.Status),
			CreatedBy:      dto.NewUserSummary(&p.CreatedBy),
			Teams:          dto.NewUserSummaries(p.Teams),
			TotalTasks:     int(c.Total),
			CompletionRate: CompletionRate(int(c.Done), int(c.Total)),
		})
	}
	return result, nil
}
