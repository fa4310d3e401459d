package services

import (
	"testing"

	"github.com/fachrinfl/ts-project-management-api/internal/models"
	"github.com/fachrinfl/ts-project-management-api/internal/repositories"
	"github.com/fachrinfl/ts-project-management-api/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAnalyticsFixture() (*analyticsService, *mockAnalyticsRepo, *mockProjectRepo, *mockTaskRepo) {
	analytics := &mockAnalyticsRepo{}
	projects := &mockProjectRepo{}
	tasks := &mockTaskRepo{}
	svc := NewAnalyticsService(analytics, projects, tasks).(*analyticsService)
	svc.now = fixedClock(testNow)
	return svc, analytics, projects, tasks
}

func TestAnalyticsService_ProjectAnalytics_YesterdayScenario(t *testing.T) {
	svc, _, projects, tasks := newAnalyticsFixture()

	yesterday := testNow.AddDate(0, 0, -1)
	project := newProject("p1", "owner", "m1", "m2")
	project.EndDate = yesterday
	projects.On("FindByID", mock.Anything, "p1").Return(project, nil)

	todo := newTaskModel("t1", "p1", "owner")
	todo.EndDate = yesterday
	tasks.On("FindAllByProject", mock.Anything, "p1").Return([]models.Task{*todo}, nil)

	out, err := svc.ProjectAnalytics(nil, "owner", "p1")
	require.NoError(t, err)

	assert.Equal(t, "p1", out.ProjectID)
	assert.Equal(t, 1, out.TotalTasks)
	assert.Equal(t, 2, out.TeamMembers)
	assert.Equal(t, 1, out.TaskBreakdown.Todo)
	assert.Equal(t, 1, out.TaskBreakdown.Overdue)
	assert.Equal(t, 0, out.TaskBreakdown.Done)
	assert.Equal(t, "0%", out.CompletionRate)
}

func TestAnalyticsService_ProjectAnalytics_Access(t *testing.T) {
	svc, _, projects, tasks := newAnalyticsFixture()
	projects.On("FindByID", mock.Anything, "p1").Return(newProject("p1", "owner"), nil)
	projects.On("FindByID", mock.Anything, "missing").Return(nil, repositories.ErrProjectNotFound)

	_, err := svc.ProjectAnalytics(nil, "stranger", "p1")
	assert.ErrorIs(t, err, apperrors.ErrProjectAccessDenied)

	_, err = svc.WeeklyProjectStatus(nil, "owner", "missing")
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)

	tasks.AssertNotCalled(t, "FindAllByProject", mock.Anything, mock.Anything)
}

func TestAnalyticsService_WeeklyProjectStatus(t *testing.T) {
	svc, _, projects, tasks := newAnalyticsFixture()
	projects.On("FindByID", mock.Anything, "p1").Return(newProject("p1", "owner"), nil)
	tasks.On("FindAllByProject", mock.Anything, "p1").Return([]models.Task(nil), nil)

	out, err := svc.WeeklyProjectStatus(nil, "owner", "p1")
	require.NoError(t, err)
	require.Len(t, out, 7)
	assert.Equal(t, "Mon", out[0].Day)
	assert.Equal(t, "Sun", out[6].Day)
}

func TestAnalyticsService_TopActiveProjects(t *testing.T) {
	svc, analytics, projects, _ := newAnalyticsFixture()

	p1 := newProject("p1", "owner", "m1")
	p2 := newProject("p2", "other", "owner")
	projects.On("FindTopActive", mock.Anything, "owner", 5).Return([]models.Project{*p1, *p2}, nil)
	analytics.On("TaskCountsByProjects", mock.Anything, []string{"p1", "p2"}).
		Return(map[string]repositories.TaskCounts{"p1": {Total: 3, Done: 2}}, nil)

	out, err := svc.TopActiveProjects(nil, "owner")
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "p1", out[0].ProjectID)
	assert.Equal(t, 3, out[0].TotalTasks)
	assert.Equal(t, "67%", out[0].CompletionRate)
	assert.Len(t, out[0].Teams, 1)
	assert.Equal(t, "owner", out[0].CreatedBy.ID)

	assert.Equal(t, 0, out[1].TotalTasks)
	assert.Equal(t, "0%", out[1].CompletionRate)
}
