package dto

import "time"

type CreateBidRequest struct {
	Price            float64 `json:"price" validate:"required,gt=0"`
	EstimatedMinutes int     `json:"estimated_minutes" validate:"required,gt=0"`
	Message          *string `json:"message,omitempty" validate:"omitempty,max=1000"`
}

type BidSummary struct {
	ID               string    `json:"id"`
	TaskID           string    `json:"task_id"`
	CoachID          string    `json:"coach_id"`
	Price            float64   `json:"price"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	Message          *string   `json:"message,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type AcceptBidResult struct {
	Task        TaskResponse `json:"task"`
	AcceptedBid BidSummary   `json:"accepted_bid"`
}
