package models

import "gorm.io/datatypes"

type CoachProfile struct {
	BaseModel
	UserID      string         `gorm:"type:uuid;not null;uniqueIndex"`
	Bio         string
	HourlyRate  float64        `gorm:"default:0"`
	Specialties datatypes.JSON `gorm:"type:jsonb"` // ["resume_review", "interview_prep", ...]
	// Слоты доступности: [{"weekday": 1, "from": "09:00", "to": "17:00"}, ...]
	Availability datatypes.JSON `gorm:"type:jsonb"`
	Rating       float64        `gorm:"default:0"`
	ReviewsCount int            `gorm:"default:0"`
	// Профиль, созданный при смене роли, остается незаполненным,
	// пока пользователь сам не внесет данные.
	Complete bool `gorm:"default:false"`

	User *User `gorm:"foreignKey:UserID"`
}
