package validator

import (
	"log"

	"github.com/fachrinfl/ts-project-management-api/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные теги для статусов из statuses.go
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без правил валидации запускаться нельзя
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("project_status", validateProjectStatus)
	mustRegister("task_status", validateTaskStatus)
	mustRegister("task_priority", validateTaskPriority)
}

// Пустые значения пропускаем, для этого есть 'required'.

func validateProjectStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ProjectStatus(value).IsValid()
}

func validateTaskStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.TaskStatus(value).IsValid()
}

func validateTaskPriority(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.TaskPriority(value).IsValid()
}
