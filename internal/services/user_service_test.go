package services

import (
	"testing"

	"github.com/fachrinfl/ts-project-management-api/internal/models"
	"github.com/fachrinfl/ts-project-management-api/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_SearchByEmail(t *testing.T) {
	users := &mockUserRepo{}
	svc := NewUserService(users)

	users.On("SearchByEmail", mock.Anything, "jan", "me", 10).
		Return([]models.User{newUser("u2", "jane@x.com")}, nil)

	out, err := svc.SearchByEmail(nil, "me", "  jan ")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "jane@x.com", out[0].Email)
}

func TestUserService_SearchByEmail_TooShort(t *testing.T) {
	users := &mockUserRepo{}
	svc := NewUserService(users)

	for _, q := range []string{"", " ", "j", " j "} {
		_, err := svc.SearchByEmail(nil, "me", q)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok, q)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	}
	users.AssertNotCalled(t, "SearchByEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
