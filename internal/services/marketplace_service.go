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

// MarketplaceService - жизненный цикл задач и ставок:
// open -> bidding -> assigned -> in_progress -> completed | disputed.
// Все проверки идут в фиксированном порядке: сначала авторизация,
// затем статусные предусловия; частичных мутаций нет.
type MarketplaceService struct {
	taskRepo   repositories.TaskRepository
	bidRepo    repositories.BidRepository
	userRepo   repositories.UserRepository
	resumeRepo repositories.ResumeRepository
	access     *AccessService
	notifier   Notifier

	now func() time.Time
}

// Notifier - уведомления о событиях маркетплейса. Отправка не влияет
// на результат операции.
type Notifier interface {
	BidAccepted(coachEmail, taskID string, price float64)
	EscrowReleased(coachEmail, taskID string, amount float64)
}

func NewMarketplaceService(
	taskRepo repositories.TaskRepository,
	bidRepo repositories.BidRepository,
	userRepo repositories.UserRepository,
	resumeRepo repositories.ResumeRepository,
	access *AccessService,
	notifier Notifier,
) *MarketplaceService {
	return &MarketplaceService{
		taskRepo:   taskRepo,
		bidRepo:    bidRepo,
		userRepo:   userRepo,
		resumeRepo: resumeRepo,
		access:     access,
		notifier:   notifier,
		now:        time.Now,
	}
}

// CreateTask создает задачу на проверку в статусе open.
func (s *MarketplaceService) CreateTask(seekerID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if !s.access.HasPermission(seekerID, auth.PermCreateVerificationTask) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	resume, err := s.resumeRepo.FindByID(req.ResumeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	if resume.UserID != seekerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if !models.ValidTaskType(models.TaskType(req.Type)) || !models.ValidTaskUrgency(models.TaskUrgency(req.Urgency)) {
		return nil, apperrors.ValidationError(map[string]string{"type": "invalid task type or urgency"})
	}

	task := &models.VerificationTask{
		SeekerID:       seekerID,
		ResumeID:       req.ResumeID,
		Type:           models.TaskType(req.Type),
		Urgency:        models.TaskUrgency(req.Urgency),
		SuggestedPrice: req.SuggestedPrice,
		Status:         models.TaskStatusOpen,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}

	return buildTaskResponse(task, nil), nil
}

// CreateBid создает ставку коуча по задаче в статусе open или bidding.
// Первая ставка переводит задачу open -> bidding.
// Количество ставок одного коуча по задаче не ограничивается.
func (s *MarketplaceService) CreateBid(coachID, taskID string, req *dto.CreateBidRequest) (*dto.BidSummary, error) {
	if !s.access.HasPermission(coachID, auth.PermBidOnTasks) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	if task.SeekerID == coachID {
		return nil, apperrors.ErrCannotBidOwnTask
	}

	if task.Status != models.TaskStatusOpen && task.Status != models.TaskStatusBidding {
		return nil, apperrors.ErrTaskNotBiddable
	}

	if req.Price <= 0 || req.EstimatedMinutes <= 0 {
		return nil, apperrors.ValidationError(map[string]string{
			"price": "price and estimated_minutes must be positive",
		})
	}

	bid := &models.Bid{
		TaskID:           task.ID,
		CoachID:          coachID,
		Price:            req.Price,
		EstimatedMinutes: req.EstimatedMinutes,
		Message:          req.Message,
		Status:           models.BidStatusPending,
	}

	if err := s.bidRepo.Create(bid); err != nil {
		return nil, err
	}

	if task.Status == models.TaskStatusOpen {
		if err := s.taskRepo.UpdateStatus(task.ID, models.TaskStatusOpen, models.TaskStatusBidding); err != nil &&
			!errors.Is(err, repositories.ErrTaskConflict) {
			// Конфликт означает, что другая ставка уже перевела задачу
			// в bidding - это не ошибка.
			return nil, err
		}
	}

	return buildBidSummary(bid), nil
}

// AcceptBid принимает ставку от имени владельца задачи. Переход атомарен:
// выбранная ставка -> accepted, остальные pending -> rejected, задача ->
// assigned с назначенным коучем и финальной ценой; промежуточное состояние
// никогда не наблюдаемо.
func (s *MarketplaceService) AcceptBid(seekerID, bidID string) (*dto.AcceptBidResult, error) {
	bid, err := s.bidRepo.FindByID(bidID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	task, err := s.taskRepo.FindByID(bid.TaskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	// Авторизация раньше статусных проверок: чужая задача дает
	// отказ в правах даже при неподходящем статусе.
	if task.SeekerID != seekerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if task.Status != models.TaskStatusOpen && task.Status != models.TaskStatusBidding {
		return nil, apperrors.ErrInvalidTaskStatus
	}

	if bid.Status != models.BidStatusPending {
		return nil, apperrors.ErrBidAlreadyDecided
	}

	if err := s.bidRepo.AcceptBid(bid); err != nil {
		if errors.Is(err, repositories.ErrTaskConflict) {
			return nil, apperrors.ErrInvalidTaskStatus
		}
		return nil, err
	}

	bid.Status = models.BidStatusAccepted
	task.Status = models.TaskStatusAssigned
	task.AssignedCoachID = &bid.CoachID
	task.FinalPrice = &bid.Price

	if coach, err := s.userRepo.FindByID(bid.CoachID); err == nil && s.notifier != nil {
		go s.notifier.BidAccepted(coach.Email, task.ID, bid.Price)
	}

	logger.Info("bid accepted",
		"task_id", task.ID,
		"bid_id", bid.ID,
		"coach_id", bid.CoachID,
		"final_price", bid.Price,
	)

	return &dto.AcceptBidResult{
		Task:        *buildTaskResponse(task, nil),
		AcceptedBid: *buildBidSummary(bid),
	}, nil
}

// StartTask - назначенный коуч начинает работу: assigned -> in_progress.
func (s *MarketplaceService) StartTask(coachID, taskID string) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return err
	}

	if task.AssignedCoachID == nil || *task.AssignedCoachID != coachID {
		return apperrors.ErrInsufficientPermissions
	}

	if task.Status != models.TaskStatusAssigned {
		return apperrors.ErrInvalidTaskStatus
	}

	if err := s.taskRepo.UpdateStatus(taskID, models.TaskStatusAssigned, models.TaskStatusInProgress); err != nil {
		if errors.Is(err, repositories.ErrTaskConflict) {
			return apperrors.ErrInvalidTaskStatus
		}
		return err
	}
	return nil
}

// CompleteTask - владелец подтверждает выполнение: in_progress -> completed.
func (s *MarketplaceService) CompleteTask(seekerID, taskID string) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return err
	}

	if task.SeekerID != seekerID {
		return apperrors.ErrInsufficientPermissions
	}

	if task.Status != models.TaskStatusInProgress {
		return apperrors.ErrInvalidTaskStatus
	}

	if err := s.taskRepo.MarkCompleted(taskID, s.now()); err != nil {
		if errors.Is(err, repositories.ErrTaskConflict) {
			return apperrors.ErrInvalidTaskStatus
		}
		return err
	}
	return nil
}

// DisputeTask - владелец или назначенный коуч открывает спор:
// assigned | in_progress -> disputed. Это единственный путь назад
// после назначения.
func (s *MarketplaceService) DisputeTask(userID, taskID string) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return err
	}

	isOwner := task.SeekerID == userID
	isAssigned := task.AssignedCoachID != nil && *task.AssignedCoachID == userID
	if !isOwner && !isAssigned {
		return apperrors.ErrInsufficientPermissions
	}

	if task.Status != models.TaskStatusAssigned && task.Status != models.TaskStatusInProgress {
		return apperrors.ErrInvalidTaskStatus
	}

	if err := s.taskRepo.UpdateStatus(taskID, task.Status, models.TaskStatusDisputed); err != nil {
		if errors.Is(err, repositories.ErrTaskConflict) {
			return apperrors.ErrInvalidTaskStatus
		}
		return err
	}

	logger.Warn("task disputed", "task_id", taskID, "by", userID)
	return nil
}

// GetTask возвращает задачу; владелец видит ставки.
func (s *MarketplaceService) GetTask(userID, taskID string) (*dto.TaskResponse, error) {
	decision := s.access.CanAccessResource(userID, ResourceVerificationTask, taskID, ActionView)
	if !decision.Allowed {
		if decision.Reason == "Resource not found" {
			return nil, apperrors.ErrNotFound(repositories.ErrNotFound)
		}
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	var bids []models.Bid
	if task.SeekerID == userID {
		bids, err = s.bidRepo.ListByTask(taskID)
		if err != nil {
			return nil, err
		}
	}

	return buildTaskResponse(task, bids), nil
}

// ListOpenTasks возвращает задачи, доступные для ставок.
func (s *MarketplaceService) ListOpenTasks(limit int) ([]dto.TaskResponse, error) {
	tasks, err := s.taskRepo.ListOpen(limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, *buildTaskResponse(&tasks[i], nil))
	}
	return out, nil
}

// ListSeekerTasks возвращает задачи соискателя.
func (s *MarketplaceService) ListSeekerTasks(seekerID, requesterID string) ([]dto.TaskResponse, error) {
	if seekerID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	tasks, err := s.taskRepo.ListBySeeker(seekerID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, *buildTaskResponse(&tasks[i], nil))
	}
	return out, nil
}

// ListTaskBids возвращает ставки по задаче владельцу: дешевые первыми,
// при равной цене выигрывает более ранняя. Это правило отображения,
// не авторизации.
func (s *MarketplaceService) ListTaskBids(seekerID, taskID string) ([]dto.BidSummary, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	if task.SeekerID != seekerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	bids, err := s.bidRepo.ListByTask(taskID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BidSummary, 0, len(bids))
	for i := range bids {
		out = append(out, *buildBidSummary(&bids[i]))
	}
	return out, nil
}

// ListCoachBids возвращает ставки коуча.
func (s *MarketplaceService) ListCoachBids(coachID, requesterID string) ([]dto.BidSummary, error) {
	if coachID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	bids, err := s.bidRepo.ListByCoach(coachID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BidSummary, 0, len(bids))
	for i := range bids {
		out = append(out, *buildBidSummary(&bids[i]))
	}
	return out, nil
}

// --- Helpers ---

func buildTaskResponse(task *models.VerificationTask, bids []models.Bid) *dto.TaskResponse {
	resp := &dto.TaskResponse{
		ID:              task.ID,
		SeekerID:        task.SeekerID,
		ResumeID:        task.ResumeID,
		Type:            string(task.Type),
		Urgency:         string(task.Urgency),
		SuggestedPrice:  task.SuggestedPrice,
		Status:          string(task.Status),
		AssignedCoachID: task.AssignedCoachID,
		FinalPrice:      task.FinalPrice,
		CompletedAt:     task.CompletedAt,
		CreatedAt:       task.CreatedAt,
	}

	for i := range bids {
		resp.Bids = append(resp.Bids, *buildBidSummary(&bids[i]))
	}

	return resp
}

func buildBidSummary(bid *models.Bid) *dto.BidSummary {
	return &dto.BidSummary{
		ID:               bid.ID,
		TaskID:           bid.TaskID,
		CoachID:          bid.CoachID,
		Price:            bid.Price,
		EstimatedMinutes: bid.EstimatedMinutes,
		Message:          bid.Message,
		Status:           string(bid.Status),
		CreatedAt:        bid.CreatedAt,
	}
}
