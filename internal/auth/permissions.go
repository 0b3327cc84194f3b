package auth

import (
	"careerlift_backend/internal/models"
)

// Permission - именованная способность из фиксированного каталога.
// Разрешения никогда не назначаются пользователю напрямую: они целиком
// выводятся из его роли через статическую таблицу ниже.
type Permission string

const (
	// Профиль
	PermManageProfile Permission = "profile:manage"

	// Резюме
	PermCreateResume Permission = "resumes:create"
	PermEditResume   Permission = "resumes:edit"
	PermDeleteResume Permission = "resumes:delete"
	PermViewResume   Permission = "resumes:view"

	// Коучинг
	PermManageCoachProfile Permission = "coaching:manage_profile"
	PermConductSessions    Permission = "coaching:conduct_sessions"

	// Маркетплейс
	PermCreateVerificationTask Permission = "tasks:create"
	PermBidOnTasks             Permission = "tasks:bid"
	PermAcceptBids             Permission = "tasks:accept_bids"

	// Сессии
	PermBookSessions Permission = "sessions:book"

	// Платежи
	PermHoldEscrow   Permission = "escrow:hold"
	PermViewPayments Permission = "payments:view"

	// Администрирование
	PermManageUsers     Permission = "users:manage"
	PermAssignRoles     Permission = "roles:assign"
	PermResolveDisputes Permission = "disputes:resolve"
)

// allPermissions - полный каталог. Набор админа вычисляется как
// объединение, поэтому новое разрешение достаточно добавить сюда
// и в таблицу нужной роли.
var allPermissions = []Permission{
	PermManageProfile,
	PermCreateResume,
	PermEditResume,
	PermDeleteResume,
	PermViewResume,
	PermManageCoachProfile,
	PermConductSessions,
	PermCreateVerificationTask,
	PermBidOnTasks,
	PermAcceptBids,
	PermBookSessions,
	PermHoldEscrow,
	PermViewPayments,
	PermManageUsers,
	PermAssignRoles,
	PermResolveDisputes,
}

// RolePermissions - статическая таблица роль -> разрешения.
// Единственный источник правды: никаких пер-пользовательских оверрайдов.
var RolePermissions map[models.UserRole][]Permission

func init() {
	RolePermissions = map[models.UserRole][]Permission{
		models.UserRoleJobSeeker: {
			PermManageProfile,
			PermCreateResume,
			PermEditResume,
			PermDeleteResume,
			PermViewResume,
			PermCreateVerificationTask,
			PermAcceptBids,
			PermBookSessions,
			PermHoldEscrow,
			PermViewPayments,
		},
		models.UserRoleCoach: {
			PermManageProfile,
			PermViewResume,
			PermManageCoachProfile,
			PermConductSessions,
			PermBidOnTasks,
			PermViewPayments,
		},
	}

	// Админ получает объединение всего каталога
	admin := make([]Permission, len(allPermissions))
	copy(admin, allPermissions)
	RolePermissions[models.UserRoleAdmin] = admin
}

// AllPermissions возвращает копию полного каталога разрешений
func AllPermissions() []Permission {
	out := make([]Permission, len(allPermissions))
	copy(out, allPermissions)
	return out
}

// PermissionsForRole возвращает копию набора разрешений роли
func PermissionsForRole(role models.UserRole) []Permission {
	perms, exists := RolePermissions[role]
	if !exists {
		return nil
	}
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// RoleHasPermission проверяет есть ли у роли указанное разрешение
func RoleHasPermission(role models.UserRole, permission Permission) bool {
	perms, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

// IsAdmin проверяет является ли роль административной
func IsAdmin(role models.UserRole) bool {
	return role == models.UserRoleAdmin
}
