package repositories

import (
	"errors"
	"strings"
	"time"

	"careerlift_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EscrowRepository interface {
	Create(record *models.EscrowRecord) error
	FindByTaskID(taskID string) (*models.EscrowRecord, error)
	// Release и Refund переводят запись из held_in_escrow в терминальный
	// статус ровно один раз; повторный вызов возвращает ErrEscrowConflict.
	Release(taskID string, releasedAt time.Time) error
	Refund(taskID string) error
}

type escrowRepository struct {
	db *gorm.DB
}

func NewEscrowRepository(db *gorm.DB) EscrowRepository {
	return &escrowRepository{db: db}
}

func (r *escrowRepository) Create(record *models.EscrowRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	err := r.db.Create(record).Error
	if err != nil && isUniqueViolation(err) {
		return ErrEscrowExists
	}
	return err
}

func (r *escrowRepository) FindByTaskID(taskID string) (*models.EscrowRecord, error) {
	var record models.EscrowRecord
	err := r.db.First(&record, "task_id = ?", taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *escrowRepository) Release(taskID string, releasedAt time.Time) error {
	result := r.db.Model(&models.EscrowRecord{}).
		Where("task_id = ? AND status = ?", taskID, models.EscrowStatusHeld).
		Updates(map[string]interface{}{
			"status":      models.EscrowStatusReleased,
			"released_at": releasedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEscrowConflict
	}
	return nil
}

func (r *escrowRepository) Refund(taskID string) error {
	result := r.db.Model(&models.EscrowRecord{}).
		Where("task_id = ? AND status = ?", taskID, models.EscrowStatusHeld).
		Update("status", models.EscrowStatusRefunded)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEscrowConflict
	}
	return nil
}

// isUniqueViolation распознает нарушение уникального индекса task_id.
func isUniqueViolation(err error) bool {
	return err != nil && (errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key"))
}
