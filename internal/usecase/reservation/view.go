package reservation

import (
	"context"
	"errors"

	"github.com/matchsage/booking-api/internal/authz"
	"github.com/matchsage/booking-api/internal/domain"
	resv "github.com/matchsage/booking-api/internal/domain/reservation"
	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/models"
)

type ViewReservation struct {
	repo resv.Repository
}

func NewViewReservation(repo resv.Repository) *ViewReservation {
	return &ViewReservation{repo: repo}
}

func (uc *ViewReservation) Execute(
	ctx context.Context,
	actor authz.Actor,
	reservationID uint,
) (*models.Reservation, error) {

	r, err := uc.repo.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, domain.NotFoundAs(err, "reservation_not_found")
	}

	res := authz.Resource{CustomerID: r.CustomerID}

	service, err := uc.repo.GetService(ctx, r.ServiceID)
	switch {
	case err == nil:
		res.OwnerID = service.OwnerID
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	if !authz.Authorize(actor, authz.ViewReservation, res) {
		return nil, httperr.ForbiddenErr("not_allowed_to_view_reservation")
	}

	return r, nil
}
