package models

import "time"

type Receipt struct {
	ID            uint   `gorm:"primaryKey" json:"receipt_id"`
	ReceiptNo     string `gorm:"size:36;uniqueIndex;not null" json:"receipt_no"`
	CustomerID    uint   `gorm:"index;not null" json:"customer_id"`
	ReservationID uint   `gorm:"uniqueIndex;not null" json:"reservation_id"`

	Price         float64   `json:"price"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentStatus string    `gorm:"size:20" json:"payment_status"`
	PaymentRef    string    `gorm:"size:64" json:"payment_ref"`
	DocumentKey   string    `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
