package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type document struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
}

type sample struct {
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"password" validate:"required,min=6"`
	Status    string     `json:"status" validate:"required,project_status"`
	TaskState string     `json:"taskStatus" validate:"omitempty,task_status"`
	Priority  string     `json:"priority" validate:"omitempty,task_priority"`
	Documents []document `json:"documents" validate:"omitempty,dive"`
}

func TestValidate_OK(t *testing.T) {
	v := New()

	err := v.Validate(&sample{
		Email:     "a@x.com",
		Password:  "secret1",
		Status:    "on_hold",
		TaskState: "in_progress",
		Priority:  "low",
		Documents: []document{{Name: "brief", URL: "https://example.com/a.pdf"}},
	})
	assert.NoError(t, err)
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	v := New()

	err := v.Validate(&sample{
		Email:     "not-an-email",
		Password:  "123",
		Status:    "archived",
		TaskState: "blocked",
		Priority:  "urgent",
		Documents: []document{{Name: "x", URL: "nope"}},
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "Must be at least 6 characters long", vErr.Errors["password"])
	assert.Equal(t, "Must be one of: active, on_hold, completed", vErr.Errors["status"])
	assert.Contains(t, vErr.Errors, "taskStatus")
	assert.Contains(t, vErr.Errors, "priority")
	assert.Equal(t, "Must be a valid URL", vErr.Errors["documents[0].url"])
	assert.Contains(t, vErr.Error(), "field 'email'")
}

func TestValidate_Required(t *testing.T) {
	v := New()

	err := v.Validate(&sample{})
	require.Error(t, err)

	vErr := err.(*ValidationError)
	assert.Equal(t, "This field is required", vErr.Errors["email"])
	assert.Equal(t, "This field is required", vErr.Errors["status"])
	assert.NotContains(t, vErr.Errors, "priority")
}
