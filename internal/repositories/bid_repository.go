package repositories

import (
	"errors"

	"careerlift_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BidRepository interface {
	Create(bid *models.Bid) error
	FindByID(id string) (*models.Bid, error)
	// ListByTask возвращает ставки по возрастанию цены; при равной цене
	// раньше идет более ранняя ставка.
	ListByTask(taskID string) ([]models.Bid, error)
	ListByCoach(coachID string) ([]models.Bid, error)
	// AcceptBid атомарно: ставка -> accepted, все pending-соседи -> rejected,
	// задача -> assigned с назначенным коучем и финальной ценой.
	// Возвращает ErrTaskConflict, если задача уже не принимает ставки.
	AcceptBid(bid *models.Bid) error
}

type bidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) BidRepository {
	return &bidRepository{db: db}
}

func (r *bidRepository) Create(bid *models.Bid) error {
	if bid.ID == "" {
		bid.ID = uuid.NewString()
	}
	return r.db.Create(bid).Error
}

func (r *bidRepository) FindByID(id string) (*models.Bid, error) {
	var bid models.Bid
	err := r.db.First(&bid, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &bid, nil
}

func (r *bidRepository) ListByTask(taskID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.Where("task_id = ?", taskID).
		Order("price ASC").Order("created_at ASC").
		Find(&bids).Error
	return bids, err
}

func (r *bidRepository) ListByCoach(coachID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.Where("coach_id = ?", coachID).Order("created_at DESC").Find(&bids).Error
	return bids, err
}

func (r *bidRepository) AcceptBid(bid *models.Bid) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Перевод задачи служит барьером против конкурентного принятия:
		// второй вызов не найдет строку в статусе open/bidding.
		taskUpdate := tx.Model(&models.VerificationTask{}).
			Where("id = ? AND status IN ?", bid.TaskID,
				[]models.TaskStatus{models.TaskStatusOpen, models.TaskStatusBidding}).
			Updates(map[string]interface{}{
				"status":            models.TaskStatusAssigned,
				"assigned_coach_id": bid.CoachID,
				"final_price":       bid.Price,
			})
		if taskUpdate.Error != nil {
			return taskUpdate.Error
		}
		if taskUpdate.RowsAffected == 0 {
			return ErrTaskConflict
		}

		if err := tx.Model(&models.Bid{}).
			Where("id = ?", bid.ID).
			Update("status", models.BidStatusAccepted).Error; err != nil {
			return err
		}

		return tx.Model(&models.Bid{}).
			Where("task_id = ? AND id <> ? AND status = ?",
				bid.TaskID, bid.ID, models.BidStatusPending).
			Update("status", models.BidStatusRejected).Error
	})
}
