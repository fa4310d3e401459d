package handlers

import (
	"net/http"
	"testing"

	"github.com/fachrinfl/ts-project-management-api/internal/services/dto"
	"github.com/fachrinfl/ts-project-management-api/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	app := newTestApp(t)
	app.auth.On("Register", mock.MatchedBy(func(req *dto.RegisterRequest) bool {
		return req.Email == "jane@x.com" && req.Password == "secret1"
	})).Return(&dto.UserDTO{ID: "u1", Name: "Jane", Email: "jane@x.com"}, nil)

	w := app.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Jane", "email": "jane@x.com", "password": "secret1",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "User registered successfully", body["message"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "u1", user["id"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "", "email": "not-an-email", "password": "123",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, string(apperrors.CodeValidationFailed), body["code"])
	fields := body["errors"].(map[string]interface{})
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	app.auth.AssertNotCalled(t, "Register", mock.Anything)
}

func TestAuthHandler_Register_MalformedJSON(t *testing.T) {
	app := newTestApp(t)
	w := app.do(http.MethodPost, "/api/auth/register", "", "just a string")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	app := newTestApp(t)
	app.auth.On("Login", mock.MatchedBy(func(req *dto.LoginRequest) bool {
		return req.Email == "jane@x.com" && req.Password == "secret1"
	})).
		Return(&dto.LoginResult{
			User:         dto.UserDTO{ID: "u1", Email: "jane@x.com"},
			AccessToken:  "access",
			RefreshToken: "refresh",
		}, nil)
	app.auth.On("Login", mock.Anything).Return(nil, apperrors.ErrInvalidCredentials)

	w := app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "jane@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Login successful", body["message"])
	assert.Equal(t, "access", body["accessToken"])
	assert.Equal(t, "refresh", body["refreshToken"])

	wrong := app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "jane@x.com", "password": "nope"})
	unknown := app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ghost@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, "Invalid email or password", decode(t, wrong)["message"])
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
	app.auth.AssertNumberOfCalls(t, "Login", 3)
}

func TestAuthHandler_RefreshAndLogout(t *testing.T) {
	app := newTestApp(t)
	app.auth.On("RefreshToken", "good").Return("new-access", nil)
	app.auth.On("RefreshToken", "revoked").Return("", apperrors.ErrTokenRevoked)
	app.auth.On("Logout", "unknown").Return(apperrors.ErrTokenNotFound)
	app.auth.On("Logout", "good").Return(nil)

	w := app.do(http.MethodPost, "/api/auth/refresh-token", "", gin.H{"refreshToken": "good"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"accessToken": "new-access"}, decode(t, w))

	w = app.do(http.MethodPost, "/api/auth/refresh-token", "", gin.H{"refreshToken": "revoked"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, string(apperrors.CodeTokenRevoked), decode(t, w)["code"])

	w = app.do(http.MethodPost, "/api/auth/logout", "", gin.H{"refreshToken": "unknown"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodPost, "/api/auth/logout", "", gin.H{"refreshToken": "good"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged out successfully", decode(t, w)["message"])
}

func TestAuthHandler_ProtectedRoutes(t *testing.T) {
	app := newTestApp(t)
	app.auth.On("GetMe", "u1").Return(&dto.UserDTO{ID: "u1", Name: "Jane"}, nil)
	app.auth.On("UpdatePassword", "u1", mock.Anything).Return(nil)
	name := "Janet"
	app.auth.On("UpdateProfile", "u1", mock.MatchedBy(func(req *dto.UpdateProfileRequest) bool {
		return req.Name != nil && *req.Name == name && req.Photo == nil
	})).Return(&dto.UserDTO{ID: "u1", Name: name}, nil)

	w := app.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(http.MethodGet, "/api/auth/me", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", decode(t, w)["user"].(map[string]interface{})["id"])

	w = app.do(http.MethodPut, "/api/auth/update-password", "u1", gin.H{"currentPassword": "secret1", "newPassword": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodPut, "/api/auth/update-password", "u1", gin.H{"currentPassword": "secret1", "newPassword": "secret2"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodPut, "/api/auth/update-profile", "u1", gin.H{"name": name})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Profile updated successfully", body["message"])
	assert.Equal(t, name, body["user"].(map[string]interface{})["name"])
}
