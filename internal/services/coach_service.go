package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"careerlift_backend/internal/models"
	"careerlift_backend/internal/repositories"
	"careerlift_backend/internal/services/dto"
	"careerlift_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type CoachService struct {
	coachRepo repositories.CoachRepository
	access    *AccessService
}

func NewCoachService(coachRepo repositories.CoachRepository, access *AccessService) *CoachService {
	return &CoachService{
		coachRepo: coachRepo,
		access:    access,
	}
}

// GetProfile - просмотр профиля открыт всем аутентифицированным.
func (s *CoachService) GetProfile(requesterID, profileID string) (*dto.CoachResponse, error) {
	decision := s.access.CanAccessResource(requesterID, ResourceCoachProfile, profileID, ActionView)
	if !decision.Allowed {
		if decision.Reason == "Resource not found" {
			return nil, apperrors.ErrNotFound(repositories.ErrNotFound)
		}
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	profile, err := s.coachRepo.FindByID(profileID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	return buildCoachResponse(profile), nil
}

// GetOwnProfile возвращает профиль коуча текущего пользователя.
func (s *CoachService) GetOwnProfile(userID string) (*dto.CoachResponse, error) {
	profile, err := s.coachRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return buildCoachResponse(profile), nil
}

// UpdateProfile - правка только владельцем. Заполненный профиль
// помечается Complete, после чего коуч появляется в листинге.
func (s *CoachService) UpdateProfile(userID string, req *dto.UpdateCoachProfileRequest) (*dto.CoachResponse, error) {
	profile, err := s.coachRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	decision := s.access.CanAccessResource(userID, ResourceCoachProfile, profile.ID, ActionEdit)
	if !decision.Allowed {
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.HourlyRate != nil {
		profile.HourlyRate = *req.HourlyRate
	}
	if req.Specialties != nil {
		specialtiesJSON, err := json.Marshal(req.Specialties)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal specialties: %w", err)
		}
		profile.Specialties = datatypes.JSON(specialtiesJSON)
	}
	if req.Availability != nil {
		availabilityJSON, err := json.Marshal(req.Availability)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal availability: %w", err)
		}
		profile.Availability = datatypes.JSON(availabilityJSON)
	}

	profile.Complete = profile.Bio != "" && profile.HourlyRate > 0

	if err := s.coachRepo.Update(profile); err != nil {
		return nil, err
	}

	return buildCoachResponse(profile), nil
}

// ListCoaches возвращает заполненные профили для публичного каталога.
func (s *CoachService) ListCoaches(limit int) ([]dto.CoachResponse, error) {
	profiles, err := s.coachRepo.ListComplete(limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CoachResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, *buildCoachResponse(&profiles[i]))
	}
	return out, nil
}

func buildCoachResponse(profile *models.CoachProfile) *dto.CoachResponse {
	var specialties []string
	var availability []dto.AvailabilitySlot

	if len(profile.Specialties) > 0 {
		_ = json.Unmarshal(profile.Specialties, &specialties)
	}
	if len(profile.Availability) > 0 {
		_ = json.Unmarshal(profile.Availability, &availability)
	}

	return &dto.CoachResponse{
		ID:           profile.ID,
		UserID:       profile.UserID,
		Bio:          profile.Bio,
		HourlyRate:   profile.HourlyRate,
		Specialties:  specialties,
		Availability: availability,
		Rating:       profile.Rating,
		ReviewsCount: profile.ReviewsCount,
		Complete:     profile.Complete,
	}
}
