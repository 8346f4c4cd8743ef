package models

import "time"

type Service struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OwnerID uint `gorm:"index;not null" json:"owner_id"`

	Name         string  `gorm:"size:100;not null" json:"name"`
	PricePerHour float64 `json:"price_per_hour"`
	DurationMin  int     `gorm:"default:60" json:"duration_min"`
	PhotoURL     string  `gorm:"size:255" json:"photo_url"`

	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
	RatingMean  float64 `json:"rating_mean"`

	Employees []Employee `gorm:"foreignKey:WorkFor" json:"employees"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
