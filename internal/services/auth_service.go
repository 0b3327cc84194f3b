package services

import (
	"errors"
	"time"

	"careerlift_backend/internal/auth"
	"careerlift_backend/internal/logger"
	"careerlift_backend/internal/models"
	"careerlift_backend/internal/repositories"
	"careerlift_backend/internal/services/dto"
	"careerlift_backend/pkg/apperrors"

	"github.com/google/uuid"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	coachRepo        repositories.CoachRepository

	now func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	coachRepo repositories.CoachRepository,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		coachRepo:        coachRepo,
		now:              time.Now,
	}
}

// Register создает пользователя с ролью job_seeker или coach.
// Админ регистрацией не создается.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         models.UserRole(req.Role),
		Status:       models.UserStatusActive,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	// Коуч сразу получает незаполненный профиль, чтобы было что править
	if user.Role == models.UserRoleCoach {
		profile := &models.CoachProfile{UserID: user.ID, Complete: false}
		if err := s.coachRepo.Create(profile); err != nil {
			return nil, err
		}
	}

	logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return s.issueTokens(user)
}

// Login проверяет учетные данные и выдает пару токенов.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh обменивает refresh-токен на новую пару токенов.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	stored, err := s.refreshTokenRepo.FindByToken(req.RefreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if stored.ExpiresAt.Before(s.now()) {
		_ = s.refreshTokenRepo.Delete(stored.Token)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// Ротация: старый refresh-токен одноразовый
	_ = s.refreshTokenRepo.Delete(stored.Token)

	return s.issueTokens(user)
}

// GetMe возвращает профиль текущего пользователя.
func (s *AuthService) GetMe(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	return &dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}, nil
}

func (s *AuthService) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(refreshTokenTTL),
	}
	if err := s.refreshTokenRepo.Create(refreshToken); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		User: dto.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		},
	}, nil
}
