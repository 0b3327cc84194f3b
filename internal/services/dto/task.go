package dto

import "time"

type CreateTaskRequest struct {
	ResumeID       string  `json:"resume_id" validate:"required,uuid"`
	Type           string  `json:"type" validate:"required,oneof=quick_review full_review cover_letter_review"`
	Urgency        string  `json:"urgency" validate:"required,oneof=standard urgent rush"`
	SuggestedPrice float64 `json:"suggested_price" validate:"required,gt=0"`
}

type TaskResponse struct {
	ID              string       `json:"id"`
	SeekerID        string       `json:"seeker_id"`
	ResumeID        string       `json:"resume_id"`
	Type            string       `json:"type"`
	Urgency         string       `json:"urgency"`
	SuggestedPrice  float64      `json:"suggested_price"`
	Status          string       `json:"status"`
	AssignedCoachID *string      `json:"assigned_coach_id,omitempty"`
	FinalPrice      *float64     `json:"final_price,omitempty"`
	CompletedAt     *time.Time   `json:"completed_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	Bids            []BidSummary `json:"bids,omitempty"`
}
