package dto

// AccessDecision - результат проверки доступа к ресурсу.
// Reason заполняется только при отказе.
type AccessDecision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

type PermissionsResponse struct {
	UserID      string   `json:"user_id"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

type AssignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=job_seeker coach admin"`
}

type AssignRoleResult struct {
	UserID  string `json:"user_id"`
	OldRole string `json:"old_role"`
	NewRole string `json:"new_role"`
}

type RoleChangeRequest struct {
	RequestedRole string  `json:"requested_role" validate:"required,oneof=job_seeker coach admin"`
	Reason        *string `json:"reason,omitempty"`
}

// RoleChangeResult - мягкий результат: отказ в самостоятельной смене роли
// не ошибка, а сигнал, что нужен админ.
type RoleChangeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	NewRole string `json:"new_role,omitempty"`
}
