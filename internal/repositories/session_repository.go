package repositories

import (
	"errors"

	"careerlift_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *models.Session) error
	FindByID(id string) (*models.Session, error)
	ListBySeeker(seekerID string) ([]models.Session, error)
	ListByCoach(coachID string) ([]models.Session, error)
	Update(session *models.Session) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	return r.db.Create(session).Error
}

func (r *sessionRepository) FindByID(id string) (*models.Session, error) {
	var session models.Session
	err := r.db.First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) ListBySeeker(seekerID string) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.Where("seeker_id = ?", seekerID).Order("scheduled_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) ListByCoach(coachID string) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.Where("coach_id = ?", coachID).Order("scheduled_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) Update(session *models.Session) error {
	return r.db.Save(session).Error
}
