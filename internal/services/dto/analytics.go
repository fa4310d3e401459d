package dto

import "time"

// TaskBreakdown - overdue считается поверх статусов, а не вместо них
type TaskBreakdown struct {
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
	Overdue    int `json:"overdue"`
}

type ProjectAnalytics struct {
	ProjectID      string        `json:"projectId"`
	ProjectName    string        `json:"projectName"`
	TotalTasks     int           `json:"totalTasks"`
	TeamMembers    int           `json:"teamMembers"`
	TaskBreakdown  TaskBreakdown `json:"taskBreakdown"`
	CompletionRate string        `json:"completionRate" example:"40%"`
}

type DayStatus struct {
	Day      string `json:"day" example:"Mon"`
	Complete int    `json:"complete"`
	Ongoing  int    `json:"ongoing"`
}

type TopProject struct {
	ProjectID      string        `json:"projectId"`
	ProjectName    string        `json:"projectName"`
	EndDate        time.Time     `json:"endDate"`
	Status         string        `json:"status"`
	CreatedBy      UserSummary   `json:"createdBy"`
	Teams          []UserSummary `json:"teams"`
	TotalTasks     int           `json:"totalTasks"`
	CompletionRate string        `json:"completionRate"`
}
