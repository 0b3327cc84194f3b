package auth

import (
	"testing"

	"careerlift_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRolePermissions_AdminIsUnion(t *testing.T) {
	t.Parallel()

	admin := PermissionsForRole(models.UserRoleAdmin)
	assert.ElementsMatch(t, AllPermissions(), admin)

	// Любое разрешение любой роли входит в набор админа
	for role, perms := range RolePermissions {
		for _, p := range perms {
			assert.True(t, RoleHasPermission(models.UserRoleAdmin, p),
				"admin must have %s from role %s", p, role)
		}
	}
}

func TestRolePermissions_Separation(t *testing.T) {
	t.Parallel()

	// Соискатель не торгуется и не ведет сессии
	assert.False(t, RoleHasPermission(models.UserRoleJobSeeker, PermBidOnTasks))
	assert.False(t, RoleHasPermission(models.UserRoleJobSeeker, PermConductSessions))
	assert.True(t, RoleHasPermission(models.UserRoleJobSeeker, PermCreateVerificationTask))
	assert.True(t, RoleHasPermission(models.UserRoleJobSeeker, PermAcceptBids))
	assert.True(t, RoleHasPermission(models.UserRoleJobSeeker, PermHoldEscrow))

	// Коуч не создает задачи и не держит эскроу
	assert.False(t, RoleHasPermission(models.UserRoleCoach, PermCreateVerificationTask))
	assert.False(t, RoleHasPermission(models.UserRoleCoach, PermHoldEscrow))
	assert.False(t, RoleHasPermission(models.UserRoleCoach, PermAssignRoles))
	assert.True(t, RoleHasPermission(models.UserRoleCoach, PermBidOnTasks))
	assert.True(t, RoleHasPermission(models.UserRoleCoach, PermViewResume))

	// Неизвестная роль ничего не может
	assert.False(t, RoleHasPermission(models.UserRole("ghost"), PermManageProfile))
	assert.Nil(t, PermissionsForRole(models.UserRole("ghost")))
}

func TestPermissionsForRole_ReturnsCopy(t *testing.T) {
	t.Parallel()

	perms := PermissionsForRole(models.UserRoleCoach)
	perms[0] = Permission("tampered")

	again := PermissionsForRole(models.UserRoleCoach)
	assert.NotEqual(t, Permission("tampered"), again[0])
}
