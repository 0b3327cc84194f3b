package models

type UserStatus string
type UserRole string
type ResumeStatus string
type TaskType string
type TaskUrgency string
type TaskStatus string
type BidStatus string
type EscrowStatus string
type SessionStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleJobSeeker UserRole = "job_seeker"
	UserRoleCoach     UserRole = "coach"
	UserRoleAdmin     UserRole = "admin"

	ResumeStatusDraft     ResumeStatus = "draft"
	ResumeStatusPublished ResumeStatus = "published"

	TaskTypeQuickReview       TaskType = "quick_review"
	TaskTypeFullReview        TaskType = "full_review"
	TaskTypeCoverLetterReview TaskType = "cover_letter_review"

	TaskUrgencyStandard TaskUrgency = "standard"
	TaskUrgencyUrgent   TaskUrgency = "urgent"
	TaskUrgencyRush     TaskUrgency = "rush"

	TaskStatusOpen       TaskStatus = "open"
	TaskStatusBidding    TaskStatus = "bidding"
	TaskStatusAssigned   TaskStatus = "assigned"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusDisputed   TaskStatus = "disputed"

	BidStatusPending  BidStatus = "pending"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRejected BidStatus = "rejected"

	EscrowStatusHeld     EscrowStatus = "held_in_escrow"
	EscrowStatusReleased EscrowStatus = "released"
	EscrowStatusRefunded EscrowStatus = "refunded"

	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// ValidUserRole проверяет валидность роли
func ValidUserRole(role UserRole) bool {
	switch role {
	case UserRoleJobSeeker, UserRoleCoach, UserRoleAdmin:
		return true
	default:
		return false
	}
}

// ValidTaskType проверяет валидность типа задачи
func ValidTaskType(t TaskType) bool {
	switch t {
	case TaskTypeQuickReview, TaskTypeFullReview, TaskTypeCoverLetterReview:
		return true
	default:
		return false
	}
}

// ValidTaskUrgency проверяет валидность срочности
func ValidTaskUrgency(u TaskUrgency) bool {
	switch u {
	case TaskUrgencyStandard, TaskUrgencyUrgent, TaskUrgencyRush:
		return true
	default:
		return false
	}
}
