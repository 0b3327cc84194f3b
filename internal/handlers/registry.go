package handlers

import (
	"careerlift_backend/internal/services"
	"careerlift_backend/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	ResumeHandler  *ResumeHandler
	CoachHandler   *CoachHandler
	TaskHandler    *TaskHandler
	EscrowHandler  *EscrowHandler
	SessionHandler *SessionHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:    NewAuthHandler(base, sc.AuthService),
		UserHandler:    NewUserHandler(base, sc.AccessService),
		ResumeHandler:  NewResumeHandler(base, sc.ResumeService),
		CoachHandler:   NewCoachHandler(base, sc.CoachService),
		TaskHandler:    NewTaskHandler(base, sc.MarketplaceService, sc.AccessService),
		EscrowHandler:  NewEscrowHandler(base, sc.EscrowService),
		SessionHandler: NewSessionHandler(base, sc.SessionService, sc.AccessService),
	}
}
