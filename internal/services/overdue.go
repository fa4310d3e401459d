package services

import "time"

// ComputeOverdue - единое правило просрочки для проектов и задач.
// Выполненная задача не просрочена. Дни считаются по календарю в часовом поясе now
// и не бывают меньше 1, если срок уже прошёл.
func ComputeOverdue(endDate, now time.Time, done bool) (bool, *int) {
	if done || !now.After(endDate) {
		return false, nil
	}
	days := calendarDays(now, endDate)
	if days < 1 {
		days = 1
	}
	return true, &days
}

// calendarDays - разница в календарных днях later - earlier, время суток игнорируется
func calendarDays(later, earlier time.Time) int {
	a := civilDate(later, later.Location())
	b := civilDate(earlier, later.Location())
	return int(a.Sub(b).Hours() / 24)
}

// civilDate переносит дату в UTC-полночь, чтобы переходы на летнее время не искажали разницу
func civilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
