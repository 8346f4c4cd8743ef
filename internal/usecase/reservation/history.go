package reservation

import (
	"context"

	"github.com/matchsage/booking-api/internal/authz"
	"github.com/matchsage/booking-api/internal/domain"
	resv "github.com/matchsage/booking-api/internal/domain/reservation"
	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/models"
)

type ListReservations struct {
	repo resv.Repository
}

func NewListReservations(repo resv.Repository) *ListReservations {
	return &ListReservations{repo: repo}
}

// ByCustomer lists a customer's reservations, newest first. customerID 0
// means the actor.
func (uc *ListReservations) ByCustomer(
	ctx context.Context,
	actor authz.Actor,
	customerID uint,
) ([]models.Reservation, error) {

	if customerID == 0 {
		customerID = actor.ID
	}
	if !authz.Authorize(actor, authz.ListCustomerReservations, authz.Resource{CustomerID: customerID}) {
		return nil, httperr.ForbiddenErr("not_allowed_to_list_reservations")
	}

	return uc.repo.ListReservationsByCustomer(ctx, customerID)
}

// ByService lists a service's reservations for its owner or an admin.
func (uc *ListReservations) ByService(
	ctx context.Context,
	actor authz.Actor,
	serviceID uint,
) ([]models.Reservation, error) {

	service, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, domain.NotFoundAs(err, "service_not_found")
	}

	if !authz.Authorize(actor, authz.ListServiceReservations, authz.Resource{OwnerID: service.OwnerID}) {
		return nil, httperr.ForbiddenErr("not_service_owner")
	}

	return uc.repo.ListReservationsByService(ctx, serviceID)
}
