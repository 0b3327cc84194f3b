package models

import "time"

// VerificationTask - единица платной работы: проверка резюме или
// сопроводительного письма, выставленная соискателем на биддинг.
type VerificationTask struct {
	BaseModel
	SeekerID       string      `gorm:"type:uuid;not null;index"`
	ResumeID       string      `gorm:"type:uuid;not null"`
	Type           TaskType    `gorm:"type:varchar(30);not null"`
	Urgency        TaskUrgency `gorm:"type:varchar(20);not null;default:'standard'"`
	SuggestedPrice float64     `gorm:"not null"`
	Status         TaskStatus  `gorm:"type:varchar(20);not null;default:'open';index"`
	// AssignedCoachID и FinalPrice выставляются вместе, ровно один раз,
	// в момент принятия ставки.
	AssignedCoachID *string `gorm:"type:uuid"`
	FinalPrice      *float64
	CompletedAt     *time.Time

	Seeker *User `gorm:"foreignKey:SeekerID"`
	Bids   []Bid `gorm:"foreignKey:TaskID"`
}
