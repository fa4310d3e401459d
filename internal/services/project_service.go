package services

import (
	"time"

	"github.com/fachrinfl/ts-project-management-api/internal/auth"
	"github.com/fachrinfl/ts-project-management-api/internal/logger"
	"github.com/fachrinfl/ts-project-management-api/internal/models"
	"github.com/fachrinfl/ts-project-management-api/internal/repositories"
	"github.com/fachrinfl/ts-project-management-api/internal/services/dto"
	"github.com/fachrinfl/ts-project-management-api/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectService interface {
	List(db *gorm.DB, userID string, query *dto.ProjectListQuery) (*dto.PaginatedResponse[dto.ProjectDTO], error)
	Create(db *gorm.DB, userID string, req *dto.CreateProjectRequest) (*dto.ProjectDTO, error)
	Get(db *gorm.DB, userID, projectID string) (*dto.ProjectDTO, error)
	Update(db *gorm.DB, userID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectDTO, error)
	Delete(db *gorm.DB, userID, projectID string) error
}

type projectService struct {
	projectRepo repositories.ProjectRepository
	userRepo    repositories.UserRepository
	withTx      txRunner
	now         func() time.Time
}

func NewProjectService(projectRepo repositories.ProjectRepository, userRepo repositories.UserRepository) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		withTx:      gormTx,
		now:         time.Now,
	}
}

func (s *projectService) List(db *gorm.DB, userID string, query *dto.ProjectListQuery) (*dto.PaginatedResponse[dto.ProjectDTO], error) {
	page := query.PageQuery.Normalize()

	projects, total, err := s.projectRepo.List(db, repositories.ProjectFilter{
		UserID:     userID,
		Name:       query.Name,
		Status:     models.ProjectStatus(query.Status),
		Pagination: repositories.Pagination{Page: page.Page, PerPage: page.PerPage},
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := s.now()
	items := make([]dto.ProjectDTO, 0, len(projects))
	for i := range projects {
		items = append(items, projectView(&projects[i], now))
	}

	resp := dto.NewPaginated(items, page, total)
	return &resp, nil
}

func (s *projectService) Create(db *gorm.DB, userID string, req *dto.CreateProjectRequest) (*dto.ProjectDTO, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, endBeforeStartError()
	}

	members, err := s.resolveTeam(db, req.TeamEmails)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      models.ProjectStatus(req.Status),
		Documents:   datatypes.JSONSlice[models.Document](dto.ToDocuments(req.Documents)),
		CreatedByID: userID,
		Teams:       members,
	}
	if err := s.projectRepo.Create(db, project); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctxOf(db), "Project created", "project_id", project.ID, "team_size", len(members))
	return s.reload(db, project.ID)
}

func (s *projectService) Get(db *gorm.DB, userID, projectID string) (*dto.ProjectDTO, error) {
	project, err := loadAccessibleProject(db, s.projectRepo, userID, projectID)
	if err != nil {
		return nil, err
	}
	view := projectView(project, s.now())
	return &view, nil
}

func (s *projectService) Update(db *gorm.DB, userID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectDTO, error) {
	project, err := loadAccessibleProject(db, s.projectRepo, userID, projectID)
	if err != nil {
		return nil, err
	}

	var columns []string
	if req.Name != nil {
		project.Name = *req.Name
		columns = append(columns, "name")
	}
	if req.Description != nil {
		project.Description = req.Description
		columns = append(columns, "description")
	}
	if req.StartDate != nil {
		project.StartDate = *req.StartDate
		columns = append(columns, "start_date")
	}
	if req.EndDate != nil {
		project.EndDate = *req.EndDate
		columns = append(columns, "end_date")
	}
	if req.Status != nil {
		project.Status = models.ProjectStatus(*req.Status)
		columns = append(columns, "status")
	}
	if req.Documents != nil {
		project.Documents = datatypes.JSONSlice[models.Document](dto.ToDocuments(*req.Documents))
		columns = append(columns, "documents")
	}
	if project.EndDate.Before(project.StartDate) {
		return nil, endBeforeStartError()
	}

	var members []models.User
	if req.TeamEmails != nil {
		if members, err = s.resolveTeam(db, *req.TeamEmails); err != nil {
			return nil, err
		}
	}

	err = s.withTx(db, func(tx *gorm.DB) error {
		if err := s.projectRepo.Update(tx, project, columns...); err != nil {
			return err
		}
		if req.TeamEmails != nil {
			return s.projectRepo.ReplaceTeam(tx, project.ID, members)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.reload(db, project.ID)
}

func (s *projectService) Delete(db *gorm.DB, userID, projectID string) error {
	project, err := findProject(db, s.projectRepo, projectID)
	if err != nil {
		return err
	}
	if !auth.CanDeleteProject(project, userID) {
		return apperrors.ErrProjectDeleteDenied
	}

	if err := s.projectRepo.Delete(db, project.ID); err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctxOf(db), "Project deleted", "project_id", project.ID)
	return nil
}

// resolveTeam - точное совпадение адресов, неизвестные молча отбрасываются
func (s *projectService) resolveTeam(db *gorm.DB, emails []string) ([]models.User, error) {
	emails = uniqueEmails(emails)
	if len(emails) == 0 {
		return nil, nil
	}
	users, err := s.userRepo.FindByEmails(db, emails)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	seen := make(map[string]struct{}, len(users))
	members := make([]models.User, 0, len(users))
	for _, u := range users {
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		members = append(members, u)
	}
	return members, nil
}

func (s *projectService) reload(db *gorm.DB, projectID string) (*dto.ProjectDTO, error) {
	project, err := findProject(db, s.projectRepo, projectID)
	if err != nil {
		return nil, err
	}
	view := projectView(project, s.now())
	return &view, nil
}

// projectView добавляет производные поля просрочки. Статус completed от просрочки не освобождает.
func projectView(p *models.Project, now time.Time) dto.ProjectDTO {
	view := dto.NewProjectDTO(p)
	view.IsOverdue, view.OverdueDays = ComputeOverdue(p.EndDate, now, false)
	return view
}

func findProject(db *gorm.DB, repo repositories.ProjectRepository, projectID string) (*models.Project, error) {
	project, err := repo.FindByID(db, projectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return project, nil
}

// loadAccessibleProject: NotFound раньше Forbidden
func loadAccessibleProject(db *gorm.DB, repo repositories.ProjectRepository, userID, projectID string) (*models.Project, error) {
	project, err := findProject(db, repo, projectID)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessProject(project, userID) {
		return nil, apperrors.ErrProjectAccessDenied
	}
	return project, nil
}

func endBeforeStartError() *apperrors.AppError {
	return apperrors.ValidationError(map[string]string{"endDate": "Must not be before startDate"})
}
