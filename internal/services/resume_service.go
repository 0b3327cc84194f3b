package services

import (
	"encoding/json"
	"fmt"

	"careerlift_backend/internal/auth"
	"careerlift_backend/internal/models"
	"careerlift_backend/internal/repositories"
	"careerlift_backend/internal/services/dto"
	"careerlift_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

// ResumeService - CRUD резюме. Каждое чтение и мутация проходят через
// ресурсную проверку доступа, а не через локальные сравнения ID.
type ResumeService struct {
	resumeRepo repositories.ResumeRepository
	access     *AccessService
}

func NewResumeService(resumeRepo repositories.ResumeRepository, access *AccessService) *ResumeService {
	return &ResumeService{
		resumeRepo: resumeRepo,
		access:     access,
	}
}

func (s *ResumeService) CreateResume(userID string, req *dto.CreateResumeRequest) (*dto.ResumeResponse, error) {
	if !s.access.HasPermission(userID, auth.PermCreateResume) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	sectionsJSON, err := json.Marshal(req.Sections)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sections: %w", err)
	}

	template := req.Template
	if template == "" {
		template = "classic"
	}

	resume := &models.Resume{
		UserID:   userID,
		Title:    req.Title,
		Template: template,
		Sections: datatypes.JSON(sectionsJSON),
		Status:   models.ResumeStatusDraft,
	}

	if err := s.resumeRepo.Create(resume); err != nil {
		return nil, err
	}

	return buildResumeResponse(resume), nil
}

func (s *ResumeService) GetResume(userID, resumeID string) (*dto.ResumeResponse, error) {
	decision := s.access.CanAccessResource(userID, ResourceResume, resumeID, ActionView)
	if !decision.Allowed {
		if decision.Reason == "Resource not found" {
			return nil, apperrors.ErrNotFound(repositories.ErrNotFound)
		}
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	resume, err := s.resumeRepo.FindByID(resumeID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	return buildResumeResponse(resume), nil
}

func (s *ResumeService) ListUserResumes(userID, requesterID string) ([]dto.ResumeResponse, error) {
	if userID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	resumes, err := s.resumeRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ResumeResponse, 0, len(resumes))
	for i := range resumes {
		out = append(out, *buildResumeResponse(&resumes[i]))
	}
	return out, nil
}

func (s *ResumeService) UpdateResume(userID, resumeID string, req *dto.UpdateResumeRequest) (*dto.ResumeResponse, error) {
	decision := s.access.CanAccessResource(userID, ResourceResume, resumeID, ActionEdit)
	if !decision.Allowed {
		if decision.Reason == "Resource not found" {
			return nil, apperrors.ErrNotFound(repositories.ErrNotFound)
		}
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	resume, err := s.resumeRepo.FindByID(resumeID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if req.Title != nil {
		resume.Title = *req.Title
	}
	if req.Template != nil {
		resume.Template = *req.Template
	}
	if req.Status != nil {
		resume.Status = models.ResumeStatus(*req.Status)
	}
	if req.Sections != nil {
		sectionsJSON, err := json.Marshal(req.Sections)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal sections: %w", err)
		}
		resume.Sections = datatypes.JSON(sectionsJSON)
	}

	if err := s.resumeRepo.Update(resume); err != nil {
		return nil, err
	}

	return buildResumeResponse(resume), nil
}

func (s *ResumeService) DeleteResume(userID, resumeID string) error {
	decision := s.access.CanAccessResource(userID, ResourceResume, resumeID, ActionDelete)
	if !decision.Allowed {
		if decision.Reason == "Resource not found" {
			return apperrors.ErrNotFound(repositories.ErrNotFound)
		}
		return apperrors.NewForbiddenError(decision.Reason)
	}

	return s.resumeRepo.Delete(resumeID)
}

func buildResumeResponse(resume *models.Resume) *dto.ResumeResponse {
	var sections []dto.ResumeSectionItem
	if len(resume.Sections) > 0 {
		_ = json.Unmarshal(resume.Sections, &sections)
	}

	return &dto.ResumeResponse{
		ID:        resume.ID,
		UserID:    resume.UserID,
		Title:     resume.Title,
		Template:  resume.Template,
		Sections:  sections,
		Status:    string(resume.Status),
		CreatedAt: resume.CreatedAt,
		UpdatedAt: resume.UpdatedAt,
	}
}
