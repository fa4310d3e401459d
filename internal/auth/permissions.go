package auth

import "github.com/fachrinfl/ts-project-management-api/internal/models"

// Правила доступа к проектам и задачам. Сервисы не проверяют владение сами,
// а всегда идут через эти функции. Проект должен быть загружен вместе с Teams.

// CanAccessProject - чтение и изменение проекта и его задач: создатель или участник команды
func CanAccessProject(project *models.Project, userID string) bool {
	if project == nil || userID == "" {
		return false
	}
	return project.HasMember(userID)
}

// CanDeleteProject - только создатель
func CanDeleteProject(project *models.Project, userID string) bool {
	return project != nil && userID != "" && project.CreatedByID == userID
}

// CanDeleteTask - только создатель задачи, даже не владелец проекта
func CanDeleteTask(task *models.Task, userID string) bool {
	return task != nil && userID != "" && task.CreatedByID == userID
}
