package models

// Bid - конкурентное предложение коуча по задаче: цена и оценка времени.
// На одну задачу может быть принята максимум одна ставка.
type Bid struct {
	BaseModel
	TaskID           string    `gorm:"type:uuid;not null;index"`
	CoachID          string    `gorm:"type:uuid;not null;index"`
	Price            float64   `gorm:"not null"`
	EstimatedMinutes int       `gorm:"not null"`
	Message          *string
	Status           BidStatus `gorm:"type:varchar(20);not null;default:'pending'"`

	Task  *VerificationTask `gorm:"foreignKey:TaskID"`
	Coach *User             `gorm:"foreignKey:CoachID"`
}
