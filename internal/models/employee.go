package models

import "time"

type Employee struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	WorkFor uint `gorm:"index;not null" json:"work_for"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Email     string `gorm:"size:100" json:"email"`
	Gender    string `gorm:"size:20" json:"gender"`

	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
	RatingMean  float64 `json:"rating_mean"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
