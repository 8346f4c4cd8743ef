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
)

type CancelReservation struct {
	repo     resv.Repository
	notifier resv.Notifier
	audit    *audit.Dispatcher
	now      func() time.Time
}

func NewCancelReservation(
	repo resv.Repository,
	notifier resv.Notifier,
	audit *audit.Dispatcher,
) *CancelReservation {
	return &CancelReservation{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		now:      time.Now,
	}
}

func (uc *CancelReservation) Execute(
	ctx context.Context,
	actor authz.Actor,
	reservationID uint,
) (*models.Reservation, error) {

	r, err := uc.repo.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, domain.NotFoundAs(err, "reservation_not_found")
	}

	if !authz.Authorize(actor, authz.CancelReservation, authz.Resource{CustomerID: r.CustomerID}) {
		return nil, httperr.ForbiddenErr("not_reservation_owner")
	}

	if err := resv.Cancel(r, uc.now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.repo.MarkCancelled(ctx, r); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ServiceID: audit.Ptr(r.ServiceID),
		UserID:    audit.Ptr(actor.ID),
		Action:    "reservation_cancelled",
		Entity:    "reservation",
		EntityID:  audit.Ptr(r.ID),
	})

	if uc.notifier != nil {
		uc.notifier.Notify(ctx, resv.Event{Type: resv.EventCancelled, Reservation: *r})
	}

	return r, nil
}
