package dto

import "time"

type CreateResumeRequest struct {
	Title    string              `json:"title" validate:"required,min=1,max=200"`
	Template string              `json:"template" validate:"omitempty,max=50"`
	Sections []ResumeSectionItem `json:"sections" validate:"omitempty,dive"`
}

type UpdateResumeRequest struct {
	Title    *string             `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Template *string             `json:"template,omitempty" validate:"omitempty,max=50"`
	Sections []ResumeSectionItem `json:"sections,omitempty" validate:"omitempty,dive"`
	Status   *string             `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
}

type ResumeSectionItem struct {
	Kind    string `json:"kind" validate:"required,oneof=summary experience education skills projects"`
	Content string `json:"content" validate:"required"`
}

type ResumeResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Title     string              `json:"title"`
	Template  string              `json:"template"`
	Sections  []ResumeSectionItem `json:"sections,omitempty"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}
