package models

import "time"

// Session - коучинговая сессия, забронированная соискателем у коуча.
type Session struct {
	BaseModel
	SeekerID        string        `gorm:"type:uuid;not null;index"`
	CoachID         string        `gorm:"type:uuid;not null;index"`
	ScheduledAt     time.Time     `gorm:"not null"`
	DurationMinutes int           `gorm:"not null;default:60"`
	Topic           *string
	Status          SessionStatus `gorm:"type:varchar(20);not null;default:'scheduled'"`

	Seeker *User `gorm:"foreignKey:SeekerID"`
	Coach  *User `gorm:"foreignKey:CoachID"`
}
