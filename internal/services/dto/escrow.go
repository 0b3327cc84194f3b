package dto

import "time"

// HoldEscrowRequest - платеж уже проведен шлюзом; сюда приходит
// только его непрозрачный идентификатор.
type HoldEscrowRequest struct {
	BidID            string `json:"bid_id" validate:"required,uuid"`
	PaymentReference string `json:"payment_reference" validate:"required"`
}

type EscrowStatusResponse struct {
	HasEscrow  bool       `json:"has_escrow"`
	Status     string     `json:"status,omitempty"`
	Amount     float64    `json:"amount,omitempty"`
	Currency   string     `json:"currency,omitempty"`
	HeldAt     *time.Time `json:"held_at,omitempty"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
}
