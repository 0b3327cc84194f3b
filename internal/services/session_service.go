package services

import (
	"errors"
	"time"

	"careerlift_backend/internal/auth"
	"careerlift_backend/internal/models"
	"careerlift_backend/internal/repositories"
	"careerlift_backend/internal/services/dto"
	"careerlift_backend/pkg/apperrors"
)

type SessionService struct {
	sessionRepo repositories.SessionRepository
	coachRepo   repositories.CoachRepository
	access      *AccessService

	now func() time.Time
}

func NewSessionService(
	sessionRepo repositories.SessionRepository,
	coachRepo repositories.CoachRepository,
	access *AccessService,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		coachRepo:   coachRepo,
		access:      access,
		now:         time.Now,
	}
}

// BookSession бронирует сессию у коуча с заполненным профилем.
func (s *SessionService) BookSession(seekerID string, req *dto.BookSessionRequest) (*dto.SessionResponse, error) {
	if !s.access.HasPermission(seekerID, auth.PermBookSessions) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	profile, err := s.coachRepo.FindByUserID(req.CoachID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	if !profile.Complete {
		return nil, apperrors.ErrInvalidOperation("sessions", "Coach profile is not complete")
	}

	if req.ScheduledAt.Before(s.now()) {
		return nil, apperrors.ValidationError(map[string]string{"scheduled_at": "must be in the future"})
	}

	session := &models.Session{
		SeekerID:        seekerID,
		CoachID:         req.CoachID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Topic:           req.Topic,
		Status:          models.SessionStatusScheduled,
	}

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	return buildSessionResponse(session), nil
}

// GetSession - доступ решает ресурсное правило: владелец или
// назначенный коуч.
func (s *SessionService) GetSession(requesterID, sessionID string) (*dto.SessionResponse, error) {
	decision := s.access.CanAccessResource(requesterID, ResourceSession, sessionID, ActionView)
	if !decision.Allowed {
		if decision.Reason == "Resource not found" {
			return nil, apperrors.ErrNotFound(repositories.ErrNotFound)
		}
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	return buildSessionResponse(session), nil
}

// ListMySessions возвращает сессии пользователя в обеих ролях.
func (s *SessionService) ListMySessions(userID string) ([]dto.SessionResponse, error) {
	asSeeker, err := s.sessionRepo.ListBySeeker(userID)
	if err != nil {
		return nil, err
	}

	asCoach, err := s.sessionRepo.ListByCoach(userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SessionResponse, 0, len(asSeeker)+len(asCoach))
	for i := range asSeeker {
		out = append(out, *buildSessionResponse(&asSeeker[i]))
	}
	for i := range asCoach {
		out = append(out, *buildSessionResponse(&asCoach[i]))
	}
	return out, nil
}

// CancelSession - отмена владельцем или коучем до начала.
func (s *SessionService) CancelSession(requesterID, sessionID string) error {
	decision := s.access.CanAccessResource(requesterID, ResourceSession, sessionID, ActionEdit)
	if !decision.Allowed {
		if decision.Reason == "Resource not found" {
			return apperrors.ErrNotFound(repositories.ErrNotFound)
		}
		return apperrors.NewForbiddenError(decision.Reason)
	}

	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}

	if session.Status != models.SessionStatusScheduled {
		return apperrors.ErrInvalidStatus("sessions", "Only scheduled sessions can be cancelled")
	}

	session.Status = models.SessionStatusCancelled
	return s.sessionRepo.Update(session)
}

func buildSessionResponse(session *models.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:              session.ID,
		SeekerID:        session.SeekerID,
		CoachID:         session.CoachID,
		ScheduledAt:     session.ScheduledAt,
		DurationMinutes: session.DurationMinutes,
		Topic:           session.Topic,
		Status:          string(session.Status),
	}
}
