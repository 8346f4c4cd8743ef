package models

import "time"

// Rating targets exactly one of service or employee.
type Rating struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	RatingType string  `gorm:"size:20;not null" json:"rating_type"`
	ServiceID  *uint   `gorm:"index" json:"service_id,omitempty"`
	EmployeeID *uint   `gorm:"index" json:"employee_id,omitempty"`
	RaterID    uint    `gorm:"index;not null" json:"rater_id"`
	Score      float64 `gorm:"not null" json:"score"`

	CreatedAt time.Time `json:"created_at"`
}
