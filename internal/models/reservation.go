package models

import "time"

const (
	PaidStatusUnpaid  = "unpaid"
	PaidStatusPending = "pending"
	PaidStatusPaid    = "paid"
)

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID  uint `gorm:"index;not null" json:"service_id"`
	EmployeeID uint `gorm:"index:idx_reservations_employee_slot,priority:1;not null" json:"employee_id"`
	CustomerID uint `gorm:"index;not null" json:"customer_id"`

	DateReserved time.Time `gorm:"index:idx_reservations_employee_slot,priority:2;not null" json:"date_reserved"`
	EndsAt       time.Time `gorm:"not null" json:"ends_at"`

	IsCancel    bool       `gorm:"default:false;not null" json:"is_cancel"`
	CancelledAt *time.Time `json:"cancelled_at"`
	PaidStatus  string     `gorm:"size:20;default:'unpaid'" json:"paid_status"`

	CreatedAt time.Time `json:"date_created"`
	UpdatedAt time.Time `json:"updated_at"`
}
