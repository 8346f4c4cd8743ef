// Package queue publishes booking events to RabbitMQ and consumes them.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	resv "github.com/matchsage/booking-api/internal/domain/reservation"
	"github.com/matchsage/booking-api/internal/models"
)

const (
	Exchange = "booking.events"
	LogQueue = "booking.events.log"

	EventReceiptIssued = "receipt.issued"
)

// Message is the JSON body of every published event. Exactly one of
// Reservation and Receipt is set.
type Message struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`

	Reservation *ReservationPayload `json:"reservation,omitempty"`
	Receipt     *ReceiptPayload     `json:"receipt,omitempty"`
}

type ReservationPayload struct {
	ID         uint      `json:"id"`
	ServiceID  uint      `json:"service_id"`
	EmployeeID uint      `json:"employee_id"`
	CustomerID uint      `json:"customer_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	IsCancel   bool      `json:"is_cancel"`
}

type ReceiptPayload struct {
	ID            uint    `json:"id"`
	ReceiptNo     string  `json:"receipt_no"`
	ReservationID uint    `json:"reservation_id"`
	CustomerID    uint    `json:"customer_id"`
	Price         float64 `json:"price"`
	PaymentStatus string  `json:"payment_status"`
}

func reservationMessage(ev resv.Event, now time.Time) Message {
	r := ev.Reservation
	return Message{
		Type:       ev.Type,
		OccurredAt: now.UTC(),
		Reservation: &ReservationPayload{
			ID:         r.ID,
			ServiceID:  r.ServiceID,
			EmployeeID: r.EmployeeID,
			CustomerID: r.CustomerID,
			Start:      r.DateReserved.UTC(),
			End:        r.EndsAt.UTC(),
			IsCancel:   r.IsCancel,
		},
	}
}

func receiptMessage(rc models.Receipt, now time.Time) Message {
	return Message{
		Type:       EventReceiptIssued,
		OccurredAt: now.UTC(),
		Receipt: &ReceiptPayload{
			ID:            rc.ID,
			ReceiptNo:     rc.ReceiptNo,
			ReservationID: rc.ReservationID,
			CustomerID:    rc.CustomerID,
			Price:         rc.Price,
			PaymentStatus: rc.PaymentStatus,
		},
	}
}

// Describe renders a message as one log line.
func Describe(m Message) string {
	switch {
	case m.Reservation != nil:
		r := m.Reservation
		return fmt.Sprintf("[%s] %s | reservation_id=%d | service_id=%d | employee_id=%d | customer_id=%d | %s - %s",
			m.OccurredAt.Format(time.RFC3339), m.Type, r.ID, r.ServiceID, r.EmployeeID, r.CustomerID,
			r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
	case m.Receipt != nil:
		rc := m.Receipt
		return fmt.Sprintf("[%s] %s | receipt_no=%s | reservation_id=%d | customer_id=%d | price=%.2f | status=%s",
			m.OccurredAt.Format(time.RFC3339), m.Type, rc.ReceiptNo, rc.ReservationID, rc.CustomerID, rc.Price, rc.PaymentStatus)
	}
	return fmt.Sprintf("[%s] %s", m.OccurredAt.Format(time.RFC3339), m.Type)
}

func decode(body []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(body, &m); err != nil {
		return Message{}, fmt.Errorf("unmarshal: %w", err)
	}
	if m.Type == "" {
		return Message{}, fmt.Errorf("message without type")
	}
	return m, nil
}
