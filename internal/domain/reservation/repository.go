package reservation

import (
	"context"

	"github.com/matchsage/booking-api/internal/models"
)

// Repository is the persistence port of the reservation lifecycle.
// Lookups return domain.ErrNotFound when nothing matches.
type Repository interface {
	// -------- References --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetEmployee(
		ctx context.Context,
		id uint,
	) (*models.Employee, error)

	ListEmployeeIDs(
		ctx context.Context,
		serviceID uint,
	) ([]uint, error)

	// -------- Availability --------
	ListActiveReservations(
		ctx context.Context,
		employeeIDs []uint,
		w Window,
	) ([]models.Reservation, error)

	// -------- Reservation (create / conflict) --------

	// CreateReservation checks for an overlapping active reservation of the
	// same employee and inserts in one transaction. A lost race surfaces as a
	// conflict business error.
	CreateReservation(
		ctx context.Context,
		r *models.Reservation,
	) error

	// -------- Reservation (state change) --------
	GetReservation(
		ctx context.Context,
		id uint,
	) (*models.Reservation, error)

	// MarkCancelled flips is_cancel only when it is still false and reports
	// an invalid_state business error otherwise.
	MarkCancelled(
		ctx context.Context,
		r *models.Reservation,
	) error

	UpdatePaidStatus(
		ctx context.Context,
		id uint,
		status string,
	) error

	// -------- History --------
	ListReservationsByCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Reservation, error)

	ListReservationsByService(
		ctx context.Context,
		serviceID uint,
	) ([]models.Reservation, error)
}

// SlotLocker serializes bookings of one employee across API instances.
type SlotLocker interface {
	Acquire(ctx context.Context, employeeID uint) (release func(), err error)
}

// Event is emitted after a lifecycle transition.
type Event struct {
	Type        string
	Reservation models.Reservation
}

const (
	EventCreated   = "reservation.created"
	EventCancelled = "reservation.cancelled"
)

// Notifier receives lifecycle events. Failures are logged by implementations,
// never returned to the request.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}
