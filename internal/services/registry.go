package services

import (
	"careerlift_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService        *AuthService
	AccessService      *AccessService
	MarketplaceService *MarketplaceService
	EscrowService      *EscrowService
	ResumeService      *ResumeService
	CoachService       *CoachService
	SessionService     *SessionService
}

// NewServiceContainer собирает сервисы поверх репозиториев.
func NewServiceContainer(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	resumeRepo repositories.ResumeRepository,
	coachRepo repositories.CoachRepository,
	taskRepo repositories.TaskRepository,
	bidRepo repositories.BidRepository,
	escrowRepo repositories.EscrowRepository,
	sessionRepo repositories.SessionRepository,
	notifier Notifier,
	currency string,
) *ServiceContainer {
	access := NewAccessService(userRepo, resumeRepo, sessionRepo, coachRepo, taskRepo)

	return &ServiceContainer{
		AuthService:        NewAuthService(userRepo, refreshTokenRepo, coachRepo),
		AccessService:      access,
		MarketplaceService: NewMarketplaceService(taskRepo, bidRepo, userRepo, resumeRepo, access, notifier),
		EscrowService:      NewEscrowService(escrowRepo, taskRepo, bidRepo, userRepo, access, notifier, currency),
		ResumeService:      NewResumeService(resumeRepo, access),
		CoachService:       NewCoachService(coachRepo, access),
		SessionService:     NewSessionService(sessionRepo, coachRepo, access),
	}
}
