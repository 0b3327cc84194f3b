package repositories

import (
	"errors"
	"time"

	"careerlift_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(task *models.VerificationTask) error
	FindByID(id string) (*models.VerificationTask, error)
	ListOpen(limit int) ([]models.VerificationTask, error)
	ListBySeeker(seekerID string) ([]models.VerificationTask, error)
	ListByAssignedCoach(coachID string) ([]models.VerificationTask, error)
	// UpdateStatus переводит задачу из from в to; возвращает ErrTaskConflict,
	// если задача уже не в статусе from.
	UpdateStatus(id string, from, to models.TaskStatus) error
	MarkCompleted(id string, completedAt time.Time) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *models.VerificationTask) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	return r.db.Create(task).Error
}

func (r *taskRepository) FindByID(id string) (*models.VerificationTask, error) {
	var task models.VerificationTask
	err := r.db.First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListOpen(limit int) ([]models.VerificationTask, error) {
	var tasks []models.VerificationTask
	q := r.db.Where("status IN ?", []models.TaskStatus{models.TaskStatusOpen, models.TaskStatusBidding}).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) ListBySeeker(seekerID string) ([]models.VerificationTask, error) {
	var tasks []models.VerificationTask
	err := r.db.Where("seeker_id = ?", seekerID).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) ListByAssignedCoach(coachID string) ([]models.VerificationTask, error) {
	var tasks []models.VerificationTask
	err := r.db.Where("assigned_coach_id = ?", coachID).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) UpdateStatus(id string, from, to models.TaskStatus) error {
	result := r.db.Model(&models.VerificationTask{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskConflict
	}
	return nil
}

func (r *taskRepository) MarkCompleted(id string, completedAt time.Time) error {
	result := r.db.Model(&models.VerificationTask{}).
		Where("id = ? AND status = ?", id, models.TaskStatusInProgress).
		Updates(map[string]interface{}{
			"status":       models.TaskStatusCompleted,
			"completed_at": completedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskConflict
	}
	return nil
}
