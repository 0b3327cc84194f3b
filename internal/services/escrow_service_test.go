package services

import (
	"testing"

	"careerlift_backend/internal/models"
	"careerlift_backend/internal/services/dto"
	"careerlift_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupAssignedTask доводит задачу до assigned с принятой ставкой.
func setupAssignedTask(t *testing.T, f *fixture) (seeker, coach *models.User, task *models.VerificationTask, bidID string) {
	t.Helper()

	seeker = f.addUser(models.UserRoleJobSeeker)
	coach = f.addUser(models.UserRoleCoach)
	resume := f.addResume(seeker.ID)
	task = f.addTask(seeker.ID, resume.ID, models.TaskStatusBidding)
	bid := f.addBid(task.ID, coach.ID, 35)

	_, err := f.marketplace.AcceptBid(seeker.ID, bid.ID)
	require.NoError(t, err)
	return seeker, coach, task, bid.ID
}

func TestHoldPaymentInEscrow(t *testing.T) {
	t.Parallel()

	f := newFixture()
	seeker, _, task, bidID := setupAssignedTask(t, f)

	status, err := f.escrow.HoldPaymentInEscrow(seeker.ID, task.ID, &dto.HoldEscrowRequest{
		BidID:            bidID,
		PaymentReference: "pi_123",
	})
	require.NoError(t, err)
	assert.True(t, status.HasEscrow)
	assert.Equal(t, string(models.EscrowStatusHeld), status.Status)
	assert.Equal(t, 35.0, status.Amount)
	assert.Equal(t, "USD", status.Currency)
	require.NotNil(t, status.HeldAt)

	// Повторный hold по той же задаче
	_, err = f.escrow.HoldPaymentInEscrow(seeker.ID, task.ID, &dto.HoldEscrowRequest{
		BidID:            bidID,
		PaymentReference: "pi_456",
	})
	assert.ErrorIs(t, err, apperrors.ErrEscrowAlreadyExists)
}

func TestHoldPaymentInEscrow_Preconditions(t *testing.T) {
	t.Parallel()

	f := newFixture()
	seeker, coach, task, bidID := setupAssignedTask(t, f)

	// Коуч не имеет права держать эскроу
	_, err := f.escrow.HoldPaymentInEscrow(coach.ID, task.ID, &dto.HoldEscrowRequest{
		BidID:            bidID,
		PaymentReference: "pi_123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	// Ставка должна принадлежать задаче
	otherSeeker := f.addUser(models.UserRoleJobSeeker)
	otherResume := f.addResume(otherSeeker.ID)
	otherTask := f.addTask(otherSeeker.ID, otherResume.ID, models.TaskStatusBidding)
	foreignBid := f.addBid(otherTask.ID, coach.ID, 20)

	_, err = f.escrow.HoldPaymentInEscrow(seeker.ID, task.ID, &dto.HoldEscrowRequest{
		BidID:            foreignBid.ID,
		PaymentReference: "pi_123",
	})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)

	// Непринятая ставка не эскроуится
	pendingBid := f.addBid(task.ID, coach.ID, 30)
	_, err = f.escrow.HoldPaymentInEscrow(seeker.ID, task.ID, &dto.HoldEscrowRequest{
		BidID:            pendingBid.ID,
		PaymentReference: "pi_123",
	})
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestReleaseEscrow_Monotonic(t *testing.T) {
	t.Parallel()

	f := newFixture()
	seeker, coach, task, bidID := setupAssignedTask(t, f)

	_, err := f.escrow.HoldPaymentInEscrow(seeker.ID, task.ID, &dto.HoldEscrowRequest{
		BidID:            bidID,
		PaymentReference: "pi_123",
	})
	require.NoError(t, err)

	// Release до завершения задачи запрещен
	_, err = f.escrow.ReleaseEscrow(seeker.ID, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrEscrowTaskNotCompleted)

	require.NoError(t, f.marketplace.StartTask(coach.ID, task.ID))
	require.NoError(t, f.marketplace.CompleteTask(seeker.ID, task.ID))

	status, err := f.escrow.ReleaseEscrow(seeker.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.EscrowStatusReleased), status.Status)
	require.NotNil(t, status.ReleasedAt)

	// Терминальность: повторный release и refund отклоняются
	_, err = f.escrow.ReleaseEscrow(seeker.ID, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrEscrowNotHeld)

	_, err = f.escrow.RefundEscrow(seeker.ID, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrEscrowNotHeld)
}

func TestRefundEscrow(t *testing.T) {
	t.Parallel()

	f := newFixture()
	seeker, coach, task, bidID := setupAssignedTask(t, f)

	_, err := f.escrow.HoldPaymentInEscrow(seeker.ID, task.ID, &dto.HoldEscrowRequest{
		BidID:            bidID,
		PaymentReference: "pi_123",
	})
	require.NoError(t, err)

	// Коуч не может распоряжаться эскроу
	_, err = f.escrow.RefundEscrow(coach.ID, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	// Refund не требует завершения задачи (диспут)
	require.NoError(t, f.marketplace.DisputeTask(seeker.ID, task.ID))

	status, err := f.escrow.RefundEscrow(seeker.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.EscrowStatusRefunded), status.Status)

	// Терминальность
	_, err = f.escrow.ReleaseEscrow(seeker.ID, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrEscrowNotHeld)
}

func TestRefundEscrow_AdminOverride(t *testing.T) {
	t.Parallel()

	f := newFixture()
	seeker, _, task, bidID := setupAssignedTask(t, f)
	admin := f.addUser(models.UserRoleAdmin)

	_, err := f.escrow.HoldPaymentInEscrow(seeker.ID, task.ID, &dto.HoldEscrowRequest{
		BidID:            bidID,
		PaymentReference: "pi_123",
	})
	require.NoError(t, err)

	// Админ разрешает спор возвратом средств
	status, err := f.escrow.RefundEscrow(admin.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.EscrowStatusRefunded), status.Status)
}

func TestGetEscrowStatus(t *testing.T) {
	t.Parallel()

	f := newFixture()
	seeker, _, task, bidID := setupAssignedTask(t, f)
	stranger := f.addUser(models.UserRoleJobSeeker)

	// До hold записи нет
	status, err := f.escrow.GetEscrowStatus(seeker.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, status.HasEscrow)

	_, err = f.escrow.HoldPaymentInEscrow(seeker.ID, task.ID, &dto.HoldEscrowRequest{
		BidID:            bidID,
		PaymentReference: "pi_123",
	})
	require.NoError(t, err)

	status, err = f.escrow.GetEscrowStatus(seeker.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, status.HasEscrow)
	assert.Equal(t, string(models.EscrowStatusHeld), status.Status)

	// Посторонний не видит эскроу чужой задачи
	_, err = f.escrow.GetEscrowStatus(stranger.ID, task.ID)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

// Полный путь: задача -> ставки 50/40/35 -> принятие 35 -> работа ->
// завершение -> hold -> release; повторный release отклоняется.
func TestMarketplaceEscrow_FullFlow(t *testing.T) {
	t.Parallel()

	f := newFixture()
	seeker := f.addUser(models.UserRoleJobSeeker)
	coachA := f.addUser(models.UserRoleCoach)
	coachB := f.addUser(models.UserRoleCoach)
	coachC := f.addUser(models.UserRoleCoach)
	resume := f.addResume(seeker.ID)

	task, err := f.marketplace.CreateTask(seeker.ID, &dto.CreateTaskRequest{
		ResumeID:       resume.ID,
		Type:           string(models.TaskTypeFullReview),
		Urgency:        string(models.TaskUrgencyStandard),
		SuggestedPrice: 50,
	})
	require.NoError(t, err)

	_, err = f.marketplace.CreateBid(coachA.ID, task.ID, &dto.CreateBidRequest{Price: 50, EstimatedMinutes: 60})
	require.NoError(t, err)
	_, err = f.marketplace.CreateBid(coachB.ID, task.ID, &dto.CreateBidRequest{Price: 40, EstimatedMinutes: 45})
	require.NoError(t, err)
	winning, err := f.marketplace.CreateBid(coachC.ID, task.ID, &dto.CreateBidRequest{Price: 35, EstimatedMinutes: 45})
	require.NoError(t, err)

	result, err := f.marketplace.AcceptBid(seeker.ID, winning.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Task.FinalPrice)
	assert.Equal(t, 35.0, *result.Task.FinalPrice)

	// Hold делается сразу после назначения, пока задача assigned
	held, err := f.escrow.HoldPaymentInEscrow(seeker.ID, task.ID, &dto.HoldEscrowRequest{
		BidID:            winning.ID,
		PaymentReference: "pi_123",
	})
	require.NoError(t, err)
	assert.Equal(t, 35.0, held.Amount)

	require.NoError(t, f.marketplace.StartTask(coachC.ID, task.ID))
	require.NoError(t, f.marketplace.CompleteTask(seeker.ID, task.ID))

	released, err := f.escrow.ReleaseEscrow(seeker.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.EscrowStatusReleased), released.Status)

	// Повторный release отклоняется
	_, err = f.escrow.ReleaseEscrow(seeker.ID, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrEscrowNotHeld)

	// Hold после завершения невозможен в принципе: задача уже не assigned
	otherSeeker := f.addUser(models.UserRoleJobSeeker)
	otherResume := f.addResume(otherSeeker.ID)
	otherTask := f.addTask(otherSeeker.ID, otherResume.ID, models.TaskStatusCompleted)
	lateBid := f.addBid(otherTask.ID, coachA.ID, 20)
	f.bidRepo.bids[lateBid.ID].Status = models.BidStatusAccepted

	_, err = f.escrow.HoldPaymentInEscrow(otherSeeker.ID, otherTask.ID, &dto.HoldEscrowRequest{
		BidID:            lateBid.ID,
		PaymentReference: "pi_456",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTaskStatus)
}
