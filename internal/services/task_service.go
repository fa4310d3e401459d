package services

import (
	"time"

	"github.com/fachrinfl/ts-project-management-api/internal/auth"
	"github.com/fachrinfl/ts-project-management-api/internal/logger"
	"github.com/fachrinfl/ts-project-management-api/internal/models"
	"github.com/fachrinfl/ts-project-management-api/internal/repositories"
	"github.com/fachrinfl/ts-project-management-api/internal/services/dto"
	"github.com/fachrinfl/ts-project-management-api/pkg/apperrors"

	"gorm.io/gorm"
)

type TaskService interface {
	ListByProject(db *gorm.DB, userID, projectID string, query *dto.TaskListQuery) (*dto.PaginatedResponse[dto.TaskDTO], error)
	// ListMine - задачи, назначенные пользователю, во всех проектах
	ListMine(db *gorm.DB, userID string, query *dto.TaskListQuery) (*dto.PaginatedResponse[dto.TaskDTO], error)
	Create(db *gorm.DB, userID, projectID string, req *dto.CreateTaskRequest) (*dto.TaskDTO, error)
	Get(db *gorm.DB, userID, projectID, taskID string) (*dto.TaskDTO, error)
	Update(db *gorm.DB, userID, projectID, taskID string, req *dto.UpdateTaskRequest) (*dto.TaskDTO, error)
	Delete(db *gorm.DB, userID, taskID string) error
}

type taskService struct {
	taskRepo    repositories.TaskRepository
	projectRepo repositories.ProjectRepository
	userRepo    repositories.UserRepository
	now         func() time.Time
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
) TaskService {
	return &taskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

func (s *taskService) ListByProject(db *gorm.DB, userID, projectID string, query *dto.TaskListQuery) (*dto.PaginatedResponse[dto.TaskDTO], error) {
	if _, err := loadAccessibleProject(db, s.projectRepo, userID, projectID); err != nil {
		return nil, err
	}
	return s.list(db, repositories.TaskFilter{ProjectID: projectID}, query)
}

func (s *taskService) ListMine(db *gorm.DB, userID string, query *dto.TaskListQuery) (*dto.PaginatedResponse[dto.TaskDTO], error) {
	return s.list(db, repositories.TaskFilter{AssigneeID: userID, ProjectID: query.ProjectID}, query)
}

func (s *taskService) list(db *gorm.DB, filter repositories.TaskFilter, query *dto.TaskListQuery) (*dto.PaginatedResponse[dto.TaskDTO], error) {
	page := query.PageQuery.Normalize()
	filter.Status = models.TaskStatus(query.Status)
	filter.Priority = models.TaskPriority(query.Priority)
	filter.Pagination = repositories.Pagination{Page: page.Page, PerPage: page.PerPage}

	tasks, total, err := s.taskRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := s.now()
	items := make([]dto.TaskDTO, 0, len(tasks))
	for i := range tasks {
		items = append(items, taskView(&tasks[i], now))
	}

	resp := dto.NewPaginated(items, page, total)
	return &resp, nil
}

func (s *taskService) Create(db *gorm.DB, userID, projectID string, req *dto.CreateTaskRequest) (*dto.TaskDTO, error) {
	project, err := loadAccessibleProject(db, s.projectRepo, userID, projectID)
	if err != nil {
		return nil, err
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, endBeforeStartError()
	}
	if err := s.ensureAssignee(db, req.AssigneeID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		AssigneeID:  req.AssigneeID,
		CreatedByID: userID,
		ProjectID:   project.ID,
	}
	if err := s.taskRepo.Create(db, task); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctxOf(db), "Task created", "task_id", task.ID, "project_id", project.ID)
	return s.reload(db, task.ID)
}

func (s *taskService) Get(db *gorm.DB, userID, projectID, taskID string) (*dto.TaskDTO, error) {
	task, err := s.loadProjectTask(db, userID, projectID, taskID)
	if err != nil {
		return nil, err
	}
	view := taskView(task, s.now())
	return &view, nil
}

func (s *taskService) Update(db *gorm.DB, userID, projectID, taskID string, req *dto.UpdateTaskRequest) (*dto.TaskDTO, error) {
	task, err := s.loadProjectTask(db, userID, projectID, taskID)
	if err != nil {
		return nil, err
	}

	var columns []string
	if req.Name != nil {
		task.Name = *req.Name
		columns = append(columns, "name")
	}
	if req.Description != nil {
		task.Description = req.Description
		columns = append(columns, "description")
	}
	if req.StartDate != nil {
		task.StartDate = *req.StartDate
		columns = append(columns, "start_date")
	}
	if req.EndDate != nil {
		task.EndDate = *req.EndDate
		columns = append(columns, "end_date")
	}
	if req.Status != nil {
		task.Status = models.TaskStatus(*req.Status)
		columns = append(columns, "status")
	}
	if req.Priority != nil {
		task.Priority = models.TaskPriority(*req.Priority)
		columns = append(columns, "priority")
	}
	if req.AssigneeID != nil && *req.AssigneeID != task.AssigneeID {
		if err := s.ensureAssignee(db, *req.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = *req.AssigneeID
		columns = append(columns, "assignee_id")
	}
	if task.EndDate.Before(task.StartDate) {
		return nil, endBeforeStartError()
	}

	if err := s.taskRepo.Update(db, task, columns...); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.reload(db, task.ID)
}

// Delete - только автор задачи. Проект не проверяется: маршрут не содержит projectId.
func (s *taskService) Delete(db *gorm.DB, userID, taskID string) error {
	task, err := s.findTask(db, taskID)
	if err != nil {
		return err
	}
	if !auth.CanDeleteTask(task, userID) {
		return apperrors.ErrTaskDeleteDenied
	}

	if err := s.taskRepo.Delete(db, task.ID); err != nil {
		if apperrors.Is(err, repositories.ErrTaskNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctxOf(db), "Task deleted", "task_id", task.ID)
	return nil
}

// loadProjectTask: проект существует и доступен, задача принадлежит именно ему
func (s *taskService) loadProjectTask(db *gorm.DB, userID, projectID, taskID string) (*models.Task, error) {
	if _, err := loadAccessibleProject(db, s.projectRepo, userID, projectID); err != nil {
		return nil, err
	}
	task, err := s.findTask(db, taskID)
	if err != nil {
		return nil, err
	}
	if task.ProjectID != projectID {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}

func (s *taskService) findTask(db *gorm.DB, taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(db, taskID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTaskNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return task, nil
}

func (s *taskService) ensureAssignee(db *gorm.DB, assigneeID string) error {
	if _, err := s.userRepo.FindByID(db, assigneeID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ValidationError(map[string]string{"assigneeId": "Assignee does not exist"})
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *taskService) reload(db *gorm.DB, taskID string) (*dto.TaskDTO, error) {
	task, err := s.findTask(db, taskID)
	if err != nil {
		return nil, err
	}
	view := taskView(task, s.now())
	return &view, nil
}

func taskView(t *models.Task, now time.Time) dto.TaskDTO {
	view := dto.NewTaskDTO(t)
	view.IsOverdue, view.OverdueDays = ComputeOverdue(t.EndDate, now, t.IsDone())
	return view
}
