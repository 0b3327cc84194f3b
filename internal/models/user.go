package models

import "time"

type User struct {
	BaseModel
	Email         string     `gorm:"uniqueIndex;not null"`
	PasswordHash  string     `gorm:"not null"`
	Name          string     `gorm:"not null"`
	Role          UserRole   `gorm:"type:varchar(20);not null"`
	Status        UserStatus `gorm:"type:varchar(20);default:'pending'"`
	IsVerified    bool       `gorm:"default:false"`
	RoleChangedAt *time.Time

	// Relations
	CoachProfile  *CoachProfile      `gorm:"foreignKey:UserID"`
	Resumes       []Resume           `gorm:"foreignKey:UserID"`
	Tasks         []VerificationTask `gorm:"foreignKey:SeekerID"`
	RefreshTokens []RefreshToken     `gorm:"foreignKey:UserID"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
