package services

import (
	"errors"
	"time"

	"careerlift_backend/internal/auth"
	"careerlift_backend/internal/logger"
	"careerlift_backend/internal/models"
	"careerlift_backend/internal/repositories"
	"careerlift_backend/internal/services/dto"
	"careerlift_backend/pkg/apperrors"
)

// EscrowService - кастодиальный учет средств по принятой ставке.
// Состояние монотонно: held_in_escrow -> released | refunded, терминальные
// статусы не покидаются. Сам платеж проводит внешний шлюз до вызова
// HoldPaymentInEscrow; здесь фиксируется только его reference.
type EscrowService struct {
	escrowRepo repositories.EscrowRepository
	taskRepo   repositories.TaskRepository
	bidRepo    repositories.BidRepository
	userRepo   repositories.UserRepository
	access     *AccessService
	notifier   Notifier

	currency string
	now      func() time.Time
}

func NewEscrowService(
	escrowRepo repositories.EscrowRepository,
	taskRepo repositories.TaskRepository,
	bidRepo repositories.BidRepository,
	userRepo repositories.UserRepository,
	access *AccessService,
	notifier Notifier,
	currency string,
) *EscrowService {
	if currency == "" {
		currency = "USD"
	}
	return &EscrowService{
		escrowRepo: escrowRepo,
		taskRepo:   taskRepo,
		bidRepo:    bidRepo,
		userRepo:   userRepo,
		access:     access,
		notifier:   notifier,
		currency:   currency,
		now:        time.Now,
	}
}

// HoldPaymentInEscrow создает escrow-запись по принятой ставке.
// Статус ставки читается из хранилища, а не принимается от вызывающего:
// принятие должно быть уже зафиксировано.
func (s *EscrowService) HoldPaymentInEscrow(actorID, taskID string, req *dto.HoldEscrowRequest) (*dto.EscrowStatusResponse, error) {
	if !s.access.HasPermission(actorID, auth.PermHoldEscrow) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	if task.SeekerID != actorID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	bid, err := s.bidRepo.FindByID(req.BidID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	if bid.TaskID != task.ID {
		return nil, apperrors.ErrInvalidOperation("escrow", "Bid does not belong to this task")
	}

	if bid.Status != models.BidStatusAccepted {
		return nil, apperrors.ErrInvalidStatus("escrow", "Bid is not accepted")
	}

	if task.Status != models.TaskStatusAssigned {
		return nil, apperrors.ErrInvalidTaskStatus
	}

	if _, err := s.escrowRepo.FindByTaskID(task.ID); err == nil {
		return nil, apperrors.ErrEscrowAlreadyExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	record := &models.EscrowRecord{
		TaskID:           task.ID,
		BidID:            bid.ID,
		Amount:           bid.Price,
		Currency:         s.currency,
		Status:           models.EscrowStatusHeld,
		PaymentReference: req.PaymentReference,
		HeldAt:           s.now(),
	}

	if err := s.escrowRepo.Create(record); err != nil {
		if errors.Is(err, repositories.ErrEscrowExists) {
			return nil, apperrors.ErrEscrowAlreadyExists
		}
		return nil, err
	}

	logger.Info("payment held in escrow",
		"task_id", task.ID,
		"bid_id", bid.ID,
		"amount", record.Amount,
		"payment_reference", record.PaymentReference,
	)

	return buildEscrowStatus(record), nil
}

// ReleaseEscrow выпускает средства коучу после завершения задачи.
// Терминально: повторный вызов отвергается.
func (s *EscrowService) ReleaseEscrow(actorID, taskID string) (*dto.EscrowStatusResponse, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	if task.SeekerID != actorID && !s.isAdmin(actorID) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	record, err := s.escrowRepo.FindByTaskID(taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	if record.Status != models.EscrowStatusHeld {
		return nil, apperrors.ErrEscrowNotHeld
	}

	if task.Status != models.TaskStatusCompleted {
		return nil, apperrors.ErrEscrowTaskNotCompleted
	}

	releasedAt := s.now()
	if err := s.escrowRepo.Release(taskID, releasedAt); err != nil {
		if errors.Is(err, repositories.ErrEscrowConflict) {
			return nil, apperrors.ErrEscrowNotHeld
		}
		return nil, err
	}

	record.Status = models.EscrowStatusReleased
	record.ReleasedAt = &releasedAt

	if task.AssignedCoachID != nil && s.notifier != nil {
		if coach, err := s.userRepo.FindByID(*task.AssignedCoachID); err == nil {
			go s.notifier.EscrowReleased(coach.Email, task.ID, record.Amount)
		}
	}

	logger.Info("escrow released", "task_id", taskID, "amount", record.Amount)
	return buildEscrowStatus(record), nil
}

// RefundEscrow возвращает средства соискателю (диспут). Терминально.
func (s *EscrowService) RefundEscrow(actorID, taskID string) (*dto.EscrowStatusResponse, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	if task.SeekerID != actorID && !s.isAdmin(actorID) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	record, err := s.escrowRepo.FindByTaskID(taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	if record.Status != models.EscrowStatusHeld {
		return nil, apperrors.ErrEscrowNotHeld
	}

	if err := s.escrowRepo.Refund(taskID); err != nil {
		if errors.Is(err, repositories.ErrEscrowConflict) {
			return nil, apperrors.ErrEscrowNotHeld
		}
		return nil, err
	}

	record.Status = models.EscrowStatusRefunded

	logger.Info("escrow refunded", "task_id", taskID, "amount", record.Amount)
	return buildEscrowStatus(record), nil
}

// GetEscrowStatus - read-only проекция; HasEscrow=false, пока записи нет.
func (s *EscrowService) GetEscrowStatus(actorID, taskID string) (*dto.EscrowStatusResponse, error) {
	decision := s.access.CanAccessResource(actorID, ResourceVerificationTask, taskID, ActionView)
	if !decision.Allowed {
		if decision.Reason == "Resource not found" {
			return nil, apperrors.ErrNotFound(repositories.ErrNotFound)
		}
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	record, err := s.escrowRepo.FindByTaskID(taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &dto.EscrowStatusResponse{HasEscrow: false}, nil
		}
		return nil, err
	}

	return buildEscrowStatus(record), nil
}

func (s *EscrowService) isAdmin(userID string) bool {
	user, err := s.userRepo.FindByID(userID)
	return err == nil && auth.IsAdmin(user.Role)
}

func buildEscrowStatus(record *models.EscrowRecord) *dto.EscrowStatusResponse {
	heldAt := record.HeldAt
	return &dto.EscrowStatusResponse{
		HasEscrow:  true,
		Status:     string(record.Status),
		Amount:     record.Amount,
		Currency:   record.Currency,
		HeldAt:     &heldAt,
		ReleasedAt: record.ReleasedAt,
	}
}
