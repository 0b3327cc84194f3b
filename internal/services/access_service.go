package services

import (
	"errors"
	"time"

	"careerlift_backend/internal/auth"
	"careerlift_backend/internal/models"
	"careerlift_backend/internal/repositories"
	"careerlift_backend/internal/services/dto"
	"careerlift_backend/pkg/apperrors"
)

// Типы ресурсов, известные проверке доступа
const (
	ResourceResume           = "resume"
	ResourceSession          = "session"
	ResourceCoachProfile     = "coach_profile"
	ResourceVerificationTask = "verification_task"
)

// Действия над ресурсами
const (
	ActionView   = "view"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// resourceChecker - правило доступа для одного типа ресурса.
// Вызывается после проверок "админ" и "пользователь существует";
// владение и карв-ауты ролей решаются внутри.
type resourceChecker func(s *AccessService, user *models.User, resourceID, action string) dto.AccessDecision

// Requirement - единое требование доступа: плоское разрешение и/или
// ресурсная проверка. Используется и route-гардами, и сервисами,
// чтобы логика политики не дублировалась.
type Requirement struct {
	Permission   auth.Permission
	ResourceType string
	ResourceID   string
	Action       string
}

type AccessService struct {
	userRepo    repositories.UserRepository
	resumeRepo  repositories.ResumeRepository
	sessionRepo repositories.SessionRepository
	coachRepo   repositories.CoachRepository
	taskRepo    repositories.TaskRepository

	checkers map[string]resourceChecker
	now      func() time.Time
}

func NewAccessService(
	userRepo repositories.UserRepository,
	resumeRepo repositories.ResumeRepository,
	sessionRepo repositories.SessionRepository,
	coachRepo repositories.CoachRepository,
	taskRepo repositories.TaskRepository,
) *AccessService {
	s := &AccessService{
		userRepo:    userRepo,
		resumeRepo:  resumeRepo,
		sessionRepo: sessionRepo,
		coachRepo:   coachRepo,
		taskRepo:    taskRepo,
		now:         time.Now,
	}

	// Новый тип ресурса добавляется регистрацией обработчика,
	// а не расширением switch.
	s.checkers = map[string]resourceChecker{
		ResourceResume:           (*AccessService).checkResumeAccess,
		ResourceSession:          (*AccessService).checkSessionAccess,
		ResourceCoachProfile:     (*AccessService).checkCoachProfileAccess,
		ResourceVerificationTask: (*AccessService).checkTaskAccess,
	}

	return s
}

// HasPermission проверяет плоское разрешение пользователя.
// Отказывает закрыто: неизвестный пользователь ничего не может.
func (s *AccessService) HasPermission(userID string, permission auth.Permission) bool {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return false
	}
	return auth.RoleHasPermission(user.Role, permission)
}

// GetUserPermissions возвращает полный выведенный набор разрешений роли
// пользователя; пустой набор, если пользователь не найден.
func (s *AccessService) GetUserPermissions(userID string) (*dto.PermissionsResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &dto.PermissionsResponse{UserID: userID, Permissions: []string{}}, nil
		}
		return nil, err
	}

	perms := auth.PermissionsForRole(user.Role)
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}

	return &dto.PermissionsResponse{
		UserID:      user.ID,
		Role:        string(user.Role),
		Permissions: out,
	}, nil
}

// CanAccessResource решает доступ к конкретному ресурсу.
// Порядок проверок фиксирован: админ -> существование ресурса ->
// владение -> ролевые карв-ауты -> отказ.
func (s *AccessService) CanAccessResource(userID, resourceType, resourceID, action string) dto.AccessDecision {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return dto.AccessDecision{Allowed: false, Reason: "User not found"}
	}

	if auth.IsAdmin(user.Role) {
		return dto.AccessDecision{Allowed: true}
	}

	checker, ok := s.checkers[resourceType]
	if !ok {
		return dto.AccessDecision{Allowed: false, Reason: "Unknown resource type"}
	}

	return checker(s, user, resourceID, action)
}

// Authorize - единая точка входа для route-гардов и сервисов.
// Сначала плоское разрешение, затем (если задан) ресурс.
func (s *AccessService) Authorize(userID string, req Requirement) dto.AccessDecision {
	if req.Permission != "" && !s.HasPermission(userID, req.Permission) {
		return dto.AccessDecision{Allowed: false, Reason: "Insufficient permissions"}
	}

	if req.ResourceType != "" {
		return s.CanAccessResource(userID, req.ResourceType, req.ResourceID, req.Action)
	}

	return dto.AccessDecision{Allowed: true}
}

// AssignRole - административная смена роли.
func (s *AccessService) AssignRole(actingAdminID, targetUserID string, newRole models.UserRole) (*dto.AssignRoleResult, error) {
	actor, err := s.userRepo.FindByID(actingAdminID)
	if err != nil || !auth.IsAdmin(actor.Role) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if !models.ValidUserRole(newRole) {
		return nil, apperrors.ErrInvalidUserRole
	}

	target, err := s.userRepo.FindByID(targetUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	oldRole := target.Role
	if err := s.userRepo.UpdateRole(target.ID, newRole, s.now()); err != nil {
		return nil, err
	}

	return &dto.AssignRoleResult{
		UserID:  target.ID,
		OldRole: string(oldRole),
		NewRole: string(newRole),
	}, nil
}

// RequestRoleChange - самостоятельная смена роли.
// Разрешен только переход job_seeker -> coach при отсутствии профиля коуча;
// остальные переходы - мягкий отказ (нужен админ), не ошибка.
func (s *AccessService) RequestRoleChange(userID string, requestedRole models.UserRole, reason *string) (*dto.RoleChangeResult, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	if user.Role != models.UserRoleJobSeeker || requestedRole != models.UserRoleCoach {
		return &dto.RoleChangeResult{
			Success: false,
			Message: "This role change requires admin approval",
		}, nil
	}

	// Проверка профиля идет первой: повторный запрос не должен
	// трогать ни роль, ни существующий профиль.
	if _, err := s.coachRepo.FindByUserID(user.ID); err == nil {
		return &dto.RoleChangeResult{
			Success: false,
			Message: "Coach profile already exists",
		}, nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	if err := s.userRepo.UpdateRole(user.ID, models.UserRoleCoach, s.now()); err != nil {
		return nil, err
	}

	// Профиль создается незаполненным: пользователь оформит его сам.
	profile := &models.CoachProfile{
		UserID:   user.ID,
		Complete: false,
	}
	if err := s.coachRepo.Create(profile); err != nil {
		return nil, err
	}

	return &dto.RoleChangeResult{
		Success: true,
		Message: "Role changed to coach",
		NewRole: string(models.UserRoleCoach),
	}, nil
}

// --- Ресурсные правила ---

// Резюме: владелец может всё; коуч может только просматривать.
func (s *AccessService) checkResumeAccess(user *models.User, resourceID, action string) dto.AccessDecision {
	resume, err := s.resumeRepo.FindByID(resourceID)
	if err != nil {
		return dto.AccessDecision{Allowed: false, Reason: "Resource not found"}
	}

	if resume.UserID == user.ID {
		return dto.AccessDecision{Allowed: true}
	}

	if user.Role == models.UserRoleCoach && action == ActionView {
		return dto.AccessDecision{Allowed: true}
	}

	return dto.AccessDecision{Allowed: false, Reason: "Access denied"}
}

// Сессия: доступна соискателю-владельцу и назначенному коучу.
// Коуч резолвится через его профиль, а не через прямое сравнение ID.
func (s *AccessService) checkSessionAccess(user *models.User, resourceID, action string) dto.AccessDecision {
	session, err := s.sessionRepo.FindByID(resourceID)
	if err != nil {
		return dto.AccessDecision{Allowed: false, Reason: "Resource not found"}
	}

	if session.SeekerID == user.ID {
		return dto.AccessDecision{Allowed: true}
	}

	if user.Role == models.UserRoleCoach {
		if _, err := s.coachRepo.FindByUserID(user.ID); err == nil && session.CoachID == user.ID {
			return dto.AccessDecision{Allowed: true}
		}
	}

	return dto.AccessDecision{Allowed: false, Reason: "Access denied"}
}

// Профиль коуча: просмотр открыт всем, правка - только владельцу.
func (s *AccessService) checkCoachProfileAccess(user *models.User, resourceID, action string) dto.AccessDecision {
	profile, err := s.coachRepo.FindByID(resourceID)
	if err != nil {
		return dto.AccessDecision{Allowed: false, Reason: "Resource not found"}
	}

	if action == ActionView {
		return dto.AccessDecision{Allowed: true}
	}

	if profile.UserID == user.ID {
		return dto.AccessDecision{Allowed: true}
	}

	return dto.AccessDecision{Allowed: false, Reason: "Access denied"}
}

// Задача: владелец и назначенный коуч имеют полный доступ;
// любой коуч может просматривать задачу, пока она открыта.
func (s *AccessService) checkTaskAccess(user *models.User, resourceID, action string) dto.AccessDecision {
	task, err := s.taskRepo.FindByID(resourceID)
	if err != nil {
		return dto.AccessDecision{Allowed: false, Reason: "Resource not found"}
	}

	if task.SeekerID == user.ID {
		return dto.AccessDecision{Allowed: true}
	}

	if task.AssignedCoachID != nil && *task.AssignedCoachID == user.ID {
		return dto.AccessDecision{Allowed: true}
	}

	if user.Role == models.UserRoleCoach && action == ActionView &&
		(task.Status == models.TaskStatusOpen || task.Status == models.TaskStatusBidding) {
		return dto.AccessDecision{Allowed: true}
	}

	return dto.AccessDecision{Allowed: false, Reason: "Access denied"}
}
