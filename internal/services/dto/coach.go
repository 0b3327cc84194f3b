package dto

type UpdateCoachProfileRequest struct {
	Bio          *string            `json:"bio,omitempty" validate:"omitempty,max=2000"`
	HourlyRate   *float64           `json:"hourly_rate,omitempty" validate:"omitempty,gt=0"`
	Specialties  []string           `json:"specialties,omitempty"`
	Availability []AvailabilitySlot `json:"availability,omitempty" validate:"omitempty,dive"`
}

type AvailabilitySlot struct {
	Weekday int    `json:"weekday" validate:"min=0,max=6"`
	From    string `json:"from" validate:"required"`
	To      string `json:"to" validate:"required"`
}

type CoachResponse struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user_id"`
	Bio          string             `json:"bio"`
	HourlyRate   float64            `json:"hourly_rate"`
	Specialties  []string           `json:"specialties,omitempty"`
	Availability []AvailabilitySlot `json:"availability,omitempty"`
	Rating       float64            `json:"rating"`
	ReviewsCount int                `json:"reviews_count"`
	Complete     bool               `json:"complete"`
}
