package reservation

import (
	"context"
	"time"

	"github.com/matchsage/booking-api/internal/audit"
	"github.com/matchsage/booking-api/internal/authz"
	"github.com/matchsage/booking-api/internal/domain"
	resv "github.com/matchsage/booking-api/internal/domain/reservation"
	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/models"
	"github.com/matchsage/booking-api/internal/telemetry"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	Actor      authz.Actor
	ServiceID  uint
	EmployeeID uint
	Start      time.Time

	// Duration defaults to the service slot length.
	Duration time.Duration
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo        resv.Repository
	locker      resv.SlotLocker
	notifier    resv.Notifier
	audit       *audit.Dispatcher
	defaultSlot time.Duration
}

func NewCreateReservation(
	repo resv.Repository,
	locker resv.SlotLocker,
	notifier resv.Notifier,
	audit *audit.Dispatcher,
	defaultSlot time.Duration,
) *CreateReservation {
	if defaultSlot <= 0 {
		defaultSlot = time.Hour
	}
	return &CreateReservation{
		repo:        repo,
		locker:      locker,
		notifier:    notifier,
		audit:       audit,
		defaultSlot: defaultSlot,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Reservation, error) {

	ctx, span := telemetry.Start(ctx, "reservation.create")
	defer span.End()

	if !authz.Authorize(in.Actor, authz.CreateReservation, authz.Resource{}) {
		return nil, httperr.ForbiddenErr("customer_only")
	}

	// --------------------------------------------------
	// 1. References
	// --------------------------------------------------
	if _, err := uc.repo.GetUser(ctx, in.Actor.ID); err != nil {
		return nil, domain.NotFoundAs(err, "customer_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, domain.NotFoundAs(err, "service_not_found")
	}

	employee, err := uc.repo.GetEmployee(ctx, in.EmployeeID)
	if err != nil {
		return nil, domain.NotFoundAs(err, "employee_not_found")
	}
	if employee.WorkFor != service.ID {
		return nil, httperr.NotFoundErr("employee_not_in_service")
	}

	// --------------------------------------------------
	// 2. Window
	// --------------------------------------------------
	w, err := resv.NewWindow(in.Start.UTC(), slotLength(in.Duration, service, uc.defaultSlot))
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Check-and-insert, serialized per employee
	// --------------------------------------------------
	release, err := uc.locker.Acquire(ctx, employee.ID)
	if err != nil {
		return nil, err
	}

	r := &models.Reservation{
		ServiceID:    service.ID,
		EmployeeID:   employee.ID,
		CustomerID:   in.Actor.ID,
		DateReserved: w.Start,
		EndsAt:       w.End,
		IsCancel:     false,
		PaidStatus:   models.PaidStatusUnpaid,
	}

	err = uc.repo.CreateReservation(ctx, r)
	release()
	if err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			uc.audit.Dispatch(audit.Event{
				ServiceID: audit.Ptr(service.ID),
				UserID:    audit.Ptr(in.Actor.ID),
				Action:    "reservation_conflict",
				Entity:    "reservation",
				Metadata: map[string]any{
					"employee_id": employee.ID,
					"start":       w.Start,
					"end":         w.End,
				},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4. Side effects
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ServiceID: audit.Ptr(service.ID),
		UserID:    audit.Ptr(in.Actor.ID),
		Action:    "reservation_created",
		Entity:    "reservation",
		EntityID:  audit.Ptr(r.ID),
	})

	if uc.notifier != nil {
		uc.notifier.Notify(ctx, resv.Event{Type: resv.EventCreated, Reservation: *r})
	}

	return r, nil
}
