package models

import "gorm.io/datatypes"

type Resume struct {
	BaseModel
	UserID   string         `gorm:"type:uuid;not null;index"`
	Title    string         `gorm:"not null"`
	Template string         `gorm:"default:'classic'"`
	Sections datatypes.JSON `gorm:"type:jsonb"` // experience, education, skills...
	Status   ResumeStatus   `gorm:"type:varchar(20);default:'draft'"`

	User *User `gorm:"foreignKey:UserID"`
}
