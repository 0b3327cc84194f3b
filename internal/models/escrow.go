package models

import "time"

// EscrowRecord - кастодиальное состояние средств по принятой ставке.
// Сам платеж проводит внешний шлюз; здесь хранится только ссылка на него
// и монотонный статус held_in_escrow -> released | refunded.
type EscrowRecord struct {
	BaseModel
	TaskID           string       `gorm:"type:uuid;not null;uniqueIndex"`
	BidID            string       `gorm:"type:uuid;not null"`
	Amount           float64      `gorm:"not null"`
	Currency         string       `gorm:"type:varchar(3);not null;default:'USD'"`
	Status           EscrowStatus `gorm:"type:varchar(20);not null;default:'held_in_escrow'"`
	PaymentReference string       `gorm:"not null"` // opaque id платежного шлюза
	HeldAt           time.Time    `gorm:"not null"`
	ReleasedAt       *time.Time

	Task *VerificationTask `gorm:"foreignKey:TaskID"`
	Bid  *Bid              `gorm:"foreignKey:BidID"`
}
