package services

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"returnit_backend/internal/auth"
	"returnit_backend/internal/models"
	"returnit_backend/internal/repositories"
	"returnit_backend/internal/services/dto"
	"returnit_backend/pkg/apperrors"
)

var (
	ErrInvalidCredentials  = apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	ErrInvalidRefreshToken = apperrors.New(apperrors.CodeInvalidToken, "auth", "Invalid or expired refresh token", http.StatusUnauthorized)
)

// Refresh tokens outlive the access JWT so a session survives its expiry.
const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	Profile(db *gorm.DB, userID string) (*dto.UserResponse, error)
	DeleteUser(db *gorm.DB, userID string) error
}

type authService struct {
	users repositories.UserRepository
}

func NewAuthService(users repositories.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleUser,
	}

	if err := s.users.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.New(apperrors.CodeAlreadyExists, "auth", "Email is already registered", http.StatusConflict)
		}
		return nil, apperrors.RepositoryError("auth", err)
	}

	return s.buildAuthResponse(db, user)
}

func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(db, req.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperrors.RepositoryError("auth", err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.buildAuthResponse(db, user)
}

// Refresh exchanges a stored refresh token for a fresh access JWT. The old
// token is rotated out so each refresh token works exactly once.
func (s *authService) Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.users.FindRefreshToken(db, refreshToken)
	if err != nil || stored == nil {
		return nil, ErrInvalidRefreshToken
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.users.DeleteRefreshToken(db, refreshToken)
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(db, stored.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	if err := s.users.DeleteRefreshToken(db, refreshToken); err != nil {
		return nil, apperrors.RepositoryError("auth", err)
	}

	return s.buildAuthResponse(db, user)
}

func (s *authService) Logout(db *gorm.DB, refreshToken string) error {
	if err := s.users.DeleteRefreshToken(db, refreshToken); err != nil {
		return apperrors.RepositoryError("auth", err)
	}
	return nil
}

func (s *authService) Profile(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(db, userID)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.NewNotFoundError("auth", "User not found")
	}
	if err != nil {
		return nil, apperrors.RepositoryError("auth", err)
	}

	resp := userResponse(user)
	return &resp, nil
}

func (s *authService) DeleteUser(db *gorm.DB, userID string) error {
	if err := s.users.Delete(db, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("auth", "User not found")
		}
		return apperrors.RepositoryError("auth", err)
	}
	return nil
}

func (s *authService) buildAuthResponse(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.users.CreateRefreshToken(db, refreshToken); err != nil {
		return nil, apperrors.RepositoryError("auth", err)
	}

	return &dto.AuthResponse{
		Token:        token,
		RefreshToken: refreshToken.Token,
		User:         userResponse(user),
	}, nil
}

func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	}
}
