package catalog

import (
	"context"
	"strings"

	"github.com/matchsage/booking-api/internal/audit"
	"github.com/matchsage/booking-api/internal/authz"
	"github.com/matchsage/booking-api/internal/domain"
	domaincatalog "github.com/matchsage/booking-api/internal/domain/catalog"
	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/models"
)

type CreateServiceInput struct {
	Actor        authz.Actor
	OwnerID      uint
	Name         string
	PricePerHour float64
	DurationMin  int
}

type EmployeeInput struct {
	Actor     authz.Actor
	ServiceID uint
	FirstName string
	LastName  string
	Email     string
	Gender    string
}

type Services struct {
	repo  domaincatalog.Repository
	audit *audit.Dispatcher
}

func NewServices(repo domaincatalog.Repository, audit *audit.Dispatcher) *Services {
	return &Services{repo: repo, audit: audit}
}

// ======================================================
// SERVICE
// ======================================================

// Create registers a service. Owners own what they create; admins may name
// another owner.
func (uc *Services) Create(ctx context.Context, in CreateServiceInput) (*models.Service, error) {
	if !authz.Authorize(in.Actor, authz.CreateService, authz.Resource{}) {
		return nil, httperr.ForbiddenErr("owner_only")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ValidationErr("name_required")
	}
	if in.PricePerHour < 0 {
		return nil, httperr.ValidationErr("invalid_price")
	}
	if in.DurationMin < 0 {
		return nil, httperr.ValidationErr("invalid_duration")
	}

	ownerID := in.Actor.ID
	if in.Actor.IsAdmin() && in.OwnerID != 0 {
		ownerID = in.OwnerID
	}

	s := &models.Service{
		OwnerID:      ownerID,
		Name:         name,
		PricePerHour: in.PricePerHour,
		DurationMin:  in.DurationMin,
	}
	if s.DurationMin == 0 {
		s.DurationMin = 60
	}

	if err := uc.repo.CreateService(ctx, s); err != nil {
		return nil, err
	}
	s.Employees = []models.Employee{}

	uc.audit.Dispatch(audit.Event{
		ServiceID: audit.Ptr(s.ID),
		UserID:    audit.Ptr(in.Actor.ID),
		Action:    "service_created",
		Entity:    "service",
		EntityID:  audit.Ptr(s.ID),
	})

	return s, nil
}

func (uc *Services) Get(ctx context.Context, id uint) (*models.Service, error) {
	s, err := uc.repo.GetService(ctx, id)
	if err != nil {
		return nil, domain.NotFoundAs(err, "service_not_found")
	}
	if s.Employees == nil {
		s.Employees = []models.Employee{}
	}
	return s, nil
}

// ======================================================
// EMPLOYEE
// ======================================================

// AddEmployee creates an employee working for the service.
func (uc *Services) AddEmployee(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	s, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, domain.NotFoundAs(err, "service_not_found")
	}

	if !authz.Authorize(in.Actor, authz.ManageService, authz.Resource{OwnerID: s.OwnerID}) {
		return nil, httperr.ForbiddenErr("not_service_owner")
	}

	first := strings.TrimSpace(in.FirstName)
	if first == "" {
		return nil, httperr.ValidationErr("first_name_required")
	}

	e := &models.Employee{
		WorkFor:   s.ID,
		FirstName: first,
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Gender:    in.Gender,
	}
	if err := uc.repo.CreateEmployee(ctx, e); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ServiceID: audit.Ptr(s.ID),
		UserID:    audit.Ptr(in.Actor.ID),
		Action:    "employee_added",
		Entity:    "employee",
		EntityID:  audit.Ptr(e.ID),
	})

	return e, nil
}

func (uc *Services) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	e, err := uc.repo.GetEmployee(ctx, id)
	if err != nil {
		return nil, domain.NotFoundAs(err, "employee_not_found")
	}
	return e, nil
}
