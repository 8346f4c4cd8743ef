package reservation

import (
	"context"
	"time"

	"github.com/matchsage/booking-api/internal/domain"
	resv "github.com/matchsage/booking-api/internal/domain/reservation"
	"github.com/matchsage/booking-api/internal/models"
	"github.com/matchsage/booking-api/internal/telemetry"
)

type AvailabilityInput struct {
	ServiceID uint
	Start     time.Time
	Duration  time.Duration
}

type GetAvailableEmployees struct {
	repo        resv.Repository
	defaultSlot time.Duration
}

func NewGetAvailableEmployees(repo resv.Repository, defaultSlot time.Duration) *GetAvailableEmployees {
	if defaultSlot <= 0 {
		defaultSlot = time.Hour
	}
	return &GetAvailableEmployees{repo: repo, defaultSlot: defaultSlot}
}

// Execute returns the ids of the service's employees that are free for the
// whole window, ascending.
func (uc *GetAvailableEmployees) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]uint, error) {

	ctx, span := telemetry.Start(ctx, "reservation.availability")
	defer span.End()

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, domain.NotFoundAs(err, "service_not_found")
	}

	w, err := resv.NewWindow(in.Start.UTC(), slotLength(in.Duration, service, uc.defaultSlot))
	if err != nil {
		return nil, err
	}

	employeeIDs, err := uc.repo.ListEmployeeIDs(ctx, service.ID)
	if err != nil {
		return nil, err
	}
	if len(employeeIDs) == 0 {
		return []uint{}, nil
	}

	active, err := uc.repo.ListActiveReservations(ctx, employeeIDs, w)
	if err != nil {
		return nil, err
	}

	return resv.FreeEmployees(employeeIDs, active, w), nil
}

// slotLength falls back to the service duration, then the default, only when
// no duration was given. Negative values pass through so the window rejects
// them.
func slotLength(d time.Duration, service *models.Service, def time.Duration) time.Duration {
	if d != 0 {
		return d
	}
	if service.DurationMin > 0 {
		return time.Duration(service.DurationMin) * time.Minute
	}
	return def
}
