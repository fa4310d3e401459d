package services

import (
	"sync"
	"time"

	"github.com/fachrinfl/ts-project-management-api/internal/auth"
	"github.com/fachrinfl/ts-project-management-api/internal/logger"
	"github.com/fachrinfl/ts-project-management-api/internal/models"
	"github.com/fachrinfl/ts-project-management-api/internal/repositories"
	"github.com/fachrinfl/ts-project-management-api/internal/services/dto"
	"github.com/fachrinfl/ts-project-management-api/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserDTO, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResult, error)
	// RefreshToken выдаёт новый access-токен. Сам refresh-токен не ротируется.
	RefreshToken(db *gorm.DB, refreshToken string) (string, error)
	Logout(db *gorm.DB, refreshToken string) error
	UpdatePassword(db *gorm.DB, userID string, req *dto.UpdatePasswordRequest) error
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error)
	GetMe(db *gorm.DB, userID string) (*dto.UserDTO, error)
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	tokens           *auth.TokenManager
	now              func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	tokens *auth.TokenManager,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokens:           tokens,
		now:              time.Now,
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// equalizeTiming тратит на неизвестный email столько же времени, сколько на проверку пароля
func equalizeTiming(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = auth.HashPassword("timing-equalizer")
	})
	auth.CheckPasswordHash(password, dummyHash)
}

func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserDTO, error) {
	ctx := ctxOf(db)
	email := normalizeEmail(req.Email)

	if _, err := s.userRepo.FindByEmail(db, email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		// гонка двух регистраций на один email
		if apperrors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "User registered", "user_id", user.ID)
	out := dto.NewUserDTO(user)
	return &out, nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResult, error) {
	ctx := ctxOf(db)

	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			equalizeTiming(req.Password)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	refreshToken, expiresAt, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.refreshTokenRepo.CleanExpired(db, user.ID, s.now()); err != nil {
		logger.CtxWarn(ctx, "Failed to clean expired sessions", "user_id", user.ID, "error", err)
	}

	session := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: expiresAt,
	}
	if err := s.refreshTokenRepo.Create(db, session); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "User logged in", "user_id", user.ID)
	return &dto.LoginResult{
		User:         dto.NewUserDTO(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, refreshToken string) (string, error) {
	ctx := ctxOf(db)

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidToken
	}

	session, err := s.refreshTokenRepo.FindByToken(db, refreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return "", apperrors.ErrTokenRevoked
		}
		return "", apperrors.InternalError(err)
	}

	if !s.now().Before(session.ExpiresAt) {
		if err := s.refreshTokenRepo.DeleteByToken(db, refreshToken); err != nil &&
			!apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			logger.CtxWarn(ctx, "Failed to delete expired session", "user_id", session.UserID, "error", err)
		}
		return "", apperrors.ErrInvalidToken
	}

	if session.UserID != claims.UserID {
		return "", apperrors.ErrInvalidToken
	}

	accessToken, err := s.tokens.IssueAccessToken(claims.UserID)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return accessToken, nil
}

func (s *AuthServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	if err := s.refreshTokenRepo.DeleteByToken(db, refreshToken); err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return apperrors.ErrTokenNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) UpdatePassword(db *gorm.DB, userID string, req *dto.UpdatePasswordRequest) error {
	user, err := s.findUser(db, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, user.ID, hash); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctxOf(db), "Password updated", "user_id", user.ID)
	return nil
}

func (s *AuthServiceImpl) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}

	var columns []string
	if req.Name != nil {
		user.Name = *req.Name
		columns = append(columns, "name")
	}
	if req.Photo != nil {
		user.Photo = req.Photo
		columns = append(columns, "photo")
	}

	if err := s.userRepo.Update(db, user, columns...); err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := dto.NewUserDTO(user)
	return &out, nil
}

func (s *AuthServiceImpl) GetMe(db *gorm.DB, userID string) (*dto.UserDTO, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	out := dto.NewUserDTO(user)
	return &out, nil
}

func (s *AuthServiceImpl) findUser(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}
