package apperrors

import (
	"net/http"
)

// Предопределённые ошибки домена. Никогда не мутируйте их напрямую,
// используйте WithDetails/WithError, которые возвращают копию.

// --- Auth ---

// ErrInvalidCredentials - неверный email или пароль.
// Одна и та же ошибка для "нет такого email" и "неверный пароль".
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailTaken = New(
	CodeEmailTaken,
	"auth",
	"Email already registered",
	http.StatusBadRequest,
)

// ErrInvalidToken - подпись/срок действия токена не прошли проверку
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrTokenRevoked - подпись валидна, но сессии в БД уже нет (logout)
var ErrTokenRevoked = New(
	CodeTokenRevoked,
	"auth",
	"Refresh token has been revoked",
	http.StatusUnauthorized,
)

var ErrTokenNotFound = New(
	CodeTokenNotFound,
	"auth",
	"Refresh token not found",
	http.StatusNotFound,
)

// --- Users ---

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// --- Projects & Tasks ---

var ErrProjectNotFound = New(
	CodeNotFound,
	"project",
	"Project not found",
	http.StatusNotFound,
)

var ErrProjectAccessDenied = New(
	CodeForbidden,
	"project",
	"You are not a member of this project",
	http.StatusForbidden,
)

var ErrProjectDeleteDenied = New(
	CodeForbidden,
	"project",
	"Only the project creator can delete this project",
	http.StatusForbidden,
)

var ErrTaskNotFound = New(
	CodeNotFound,
	"task",
	"Task not found",
	http.StatusNotFound,
)

var ErrTaskDeleteDenied = New(
	CodeForbidden,
	"task",
	"You are not authorized to delete this task",
	http.StatusForbidden,
)

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"upload",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"upload",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

var ErrStorageUnavailable = New(
	CodeExternalServiceError,
	"storage",
	"File storage is unavailable",
	http.StatusBadGateway,
)

// --- Transport ---

var ErrTooManyRequests = New(
	CodeRateLimited,
	"request",
	"Too many requests",
	http.StatusTooManyRequests,
)
