package repositories

import (
	"errors"

	"careerlift_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByID(id string) (*models.Resume, error)
	FindByUser(userID string) ([]models.Resume, error)
	Update(resume *models.Resume) error
	Delete(id string) error
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) Create(resume *models.Resume) error {
	if resume.ID == "" {
		resume.ID = uuid.NewString()
	}
	return r.db.Create(resume).Error
}

func (r *resumeRepository) FindByID(id string) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.First(&resume, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resume, nil
}

func (r *resumeRepository) FindByUser(userID string) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&resumes).Error
	return resumes, err
}

func (r *resumeRepository) Update(resume *models.Resume) error {
	return r.db.Save(resume).Error
}

func (r *resumeRepository) Delete(id string) error {
	return r.db.Delete(&models.Resume{}, "id = ?", id).Error
}
