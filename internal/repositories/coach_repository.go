package repositories

import (
	"errors"

	"careerlift_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CoachRepository interface {
	Create(profile *models.CoachProfile) error
	FindByID(id string) (*models.CoachProfile, error)
	FindByUserID(userID string) (*models.CoachProfile, error)
	Update(profile *models.CoachProfile) error
	ListComplete(limit int) ([]models.CoachProfile, error)
}

type coachRepository struct {
	db *gorm.DB
}

func NewCoachRepository(db *gorm.DB) CoachRepository {
	return &coachRepository{db: db}
}

func (r *coachRepository) Create(profile *models.CoachProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	return r.db.Create(profile).Error
}

func (r *coachRepository) FindByID(id string) (*models.CoachProfile, error) {
	var profile models.CoachProfile
	err := r.db.First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *coachRepository) FindByUserID(userID string) (*models.CoachProfile, error) {
	var profile models.CoachProfile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *coachRepository) Update(profile *models.CoachProfile) error {
	return r.db.Save(profile).Error
}

func (r *coachRepository) ListComplete(limit int) ([]models.CoachProfile, error) {
	var profiles []models.CoachProfile
	q := r.db.Where("complete = ?", true).Order("rating DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&profiles).Error
	return profiles, err
}
