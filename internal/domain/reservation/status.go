package reservation

import (
	"time"

	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/models"
)

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

func StatusOf(r *models.Reservation) Status {
	if r.IsCancel {
		return StatusCancelled
	}
	return StatusActive
}

func InitialStatus() Status {
	return StatusActive
}

// CanCancel only allows Active -> Cancelled. Cancelled is terminal.
func CanCancel(current Status) error {
	if current != StatusActive {
		return httperr.InvalidStateErr("reservation_already_cancelled")
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

func Cancel(r *models.Reservation, now time.Time) error {
	if err := CanCancel(StatusOf(r)); err != nil {
		return err
	}

	r.IsCancel = true
	r.CancelledAt = &now
	return nil
}
