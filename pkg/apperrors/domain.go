package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// =========================================================================
// Фабричные функции (оборачивание ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для операций против неподходящего статуса (409)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// =========================================================================
// Предопределенные переменные (частые, статичные ошибки)
// =========================================================================

// ErrInsufficientPermissions - у пользователя нет требуемого разрешения.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrInvalidUserRole - операция не предусмотрена для роли пользователя.
var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

// --- Marketplace (задачи и ставки) ---

// ErrTaskNotBiddable - по задаче больше нельзя делать ставки.
var ErrTaskNotBiddable = New(
	CodeInvalidStatus,
	"marketplace",
	"Task is no longer accepting bids",
	http.StatusConflict,
)

// ErrInvalidTaskStatus - операция невозможна в текущем статусе задачи.
var ErrInvalidTaskStatus = New(
	CodeInvalidStatus,
	"marketplace",
	"Operation not allowed for the current task status",
	http.StatusConflict,
)

// ErrBidAlreadyDecided - ставка уже принята или отклонена.
var ErrBidAlreadyDecided = New(
	CodeInvalidStatus,
	"marketplace",
	"Bid has already been decided",
	http.StatusConflict,
)

// ErrCannotBidOwnTask - автор задачи не может ставить на неё сам.
var ErrCannotBidOwnTask = New(
	CodeForbidden,
	"marketplace",
	"You cannot bid on your own task",
	http.StatusForbidden,
)

// --- Escrow ---

// ErrEscrowAlreadyExists - по задаче уже открыт escrow.
var ErrEscrowAlreadyExists = New(
	CodeAlreadyExists,
	"escrow",
	"Escrow record already exists for this task",
	http.StatusConflict,
)

// ErrEscrowNotHeld - escrow уже в терминальном статусе, повторный
// release/refund запрещен.
var ErrEscrowNotHeld = New(
	CodeInvalidStatus,
	"escrow",
	"Escrow is not in held state",
	http.StatusConflict,
)

// ErrEscrowTaskNotCompleted - release до завершения задачи.
var ErrEscrowTaskNotCompleted = New(
	CodeInvalidStatus,
	"escrow",
	"Task must be completed before escrow release",
	http.StatusConflict,
)

// --- Auth & Users ---

// ErrWeakPassword - пароль слишком слабый.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

// ErrEmailAlreadyExists - email уже используется.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - неверный или просроченный токен.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrCoachProfileExists - у пользователя уже есть профиль коуча,
// самостоятельная смена роли невозможна.
var ErrCoachProfileExists = New(
	CodeConflict,
	"users",
	"Coach profile already exists for this user",
	http.StatusConflict,
)
