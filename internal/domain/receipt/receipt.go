package receipt

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/matchsage/booking-api/internal/models"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

// Price is the hourly rate times the reserved hours, rounded to cents.
func Price(pricePerHour float64, reserved time.Duration) float64 {
	if reserved <= 0 || pricePerHour <= 0 {
		return 0
	}
	return math.Round(pricePerHour*reserved.Hours()*100) / 100
}

// Repository persists receipts. Lookups return domain.ErrNotFound when
// nothing matches.
type Repository interface {
	GetReservation(ctx context.Context, id uint) (*models.Reservation, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)

	// CreateReceipt reports a conflict business error when the reservation
	// already has a receipt.
	CreateReceipt(ctx context.Context, r *models.Receipt) error
	GetReceipt(ctx context.Context, id uint) (*models.Receipt, error)
	ListReceiptsByCustomer(ctx context.Context, customerID uint) ([]models.Receipt, error)

	// SavePayment stores the payment outcome on the receipt and mirrors it
	// onto the reservation's paid status.
	SavePayment(ctx context.Context, r *models.Receipt, paidStatus string) error
}

// Charge is what a payment gateway is asked to collect.
type Charge struct {
	Amount      float64
	Description string
	PayerEmail  string
	Reference   string
}

type ChargeResult struct {
	Ref    string
	Status string
}

type Gateway interface {
	Charge(ctx context.Context, ch Charge) (ChargeResult, error)
}

// Document is the rendered receipt content.
type Document struct {
	Receipt     models.Receipt
	Reservation models.Reservation
	ServiceName string
	Customer    string
}

type Renderer interface {
	Render(w io.Writer, doc Document) error
}

// Store keeps rendered documents and uploaded images.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (url string, err error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// Notifier is told about every issued receipt.
type Notifier interface {
	ReceiptIssued(ctx context.Context, r models.Receipt)
}

// PaidStatus maps a payment status onto the reservation's paid_status.
func PaidStatus(paymentStatus string) string {
	switch paymentStatus {
	case PaymentStatusApproved:
		return models.PaidStatusPaid
	case PaymentStatusPending:
		return models.PaidStatusPending
	}
	return models.PaidStatusUnpaid
}
