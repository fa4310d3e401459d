package dto

type RegisterRequest struct {
	Name     string `json:"name" validate:"required" example:"Jane Doe"`
	Email    string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"secret123"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password string `json:"password" validate:"required" example:"secret123"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UpdateProfileRequest - частичное обновление, nil-поля не трогаются
type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Photo *string `json:"photo" validate:"omitempty,url"`
}

type LoginResult struct {
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
}

type RegisterResponse struct {
	Message string  `json:"message" example:"User registered successfully"`
	User    UserDTO `json:"user"`
}

type LoginResponse struct {
	Message      string  `json:"message" example:"Login successful"`
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

type UserResponse struct {
	Message string  `json:"message,omitempty"`
	User    UserDTO `json:"user"`
}
