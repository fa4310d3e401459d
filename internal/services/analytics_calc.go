package services

import (
	"fmt"
	"math"
	"time"

	"github.com/fachrinfl/ts-project-management-api/internal/models"
	"github.com/fachrinfl/ts-project-management-api/internal/services/dto"
)

// BuildTaskBreakdown раскладывает задачи по статусам и отдельно считает просроченные
func BuildTaskBreakdown(tasks []models.Task, now time.Time) dto.TaskBreakdown {
	var b dto.TaskBreakdown
	for i := range tasks {
		t := &tasks[i]
		switch t.Status {
		case models.TaskStatusTodo:
			b.Todo++
		case models.TaskStatusInProgress:
			b.InProgress++
		case models.TaskStatusDone:
			b.Done++
		}
		if overdue, _ := ComputeOverdue(t.EndDate, now, t.IsDone()); overdue {
			b.Overdue++
		}
	}
	return b
}

// CompletionRate - "N%" с округлением, "0%" при пустом наборе
func CompletionRate(done, total int) string {
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", int(math.Round(float64(done)/float64(total)*100)))
}

// CurrentWeek возвращает полночь каждого дня текущей недели с понедельника по воскресенье
func CurrentWeek(now time.Time) []time.Time {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	// Sunday = 0, сдвигаем так, чтобы понедельник был 0
	offset := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -offset)

	days := make([]time.Time, 7)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// BuildWeeklyStatus: complete - выполненные со сроком в этот день,
// ongoing - невыполненные со сроком в этот день или позже
func BuildWeeklyStatus(tasks []models.Task, now time.Time) []dto.DayStatus {
	loc := now.Location()
	week := CurrentWeek(now)

	result := make([]dto.DayStatus, 0, len(week))
	for _, day := range week {
		dayDate := civilDate(day, loc)
		status := dto.DayStatus{Day: day.Weekday().String()[:3]}

		for i := range tasks {
			end := civilDate(tasks[i].EndDate, loc)
			if tasks[i].IsDone() {
				if end.Equal(dayDate) {
					status.Complete++
				}
			} else if !end.Before(dayDate) {
				status.Ongoing++
			}
		}
		result = append(result, status)
	}
	return result
}
