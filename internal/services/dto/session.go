package dto

import "time"

type BookSessionRequest struct {
	CoachID         string    `json:"coach_id" validate:"required,uuid"`
	ScheduledAt     time.Time `json:"scheduled_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gt=0,max=240"`
	Topic           *string   `json:"topic,omitempty" validate:"omitempty,max=500"`
}

type SessionResponse struct {
	ID              string    `json:"id"`
	SeekerID        string    `json:"seeker_id"`
	CoachID         string    `json:"coach_id"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Topic           *string   `json:"topic,omitempty"`
	Status          string    `json:"status"`
}
