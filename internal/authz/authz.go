// Package authz holds the single capability check used by every use case.
package authz

import "github.com/matchsage/booking-api/internal/models"

type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

type Action string

const (
	CreateReservation        Action = "reservation:create"
	ViewReservation          Action = "reservation:view"
	CancelReservation        Action = "reservation:cancel"
	ListServiceReservations  Action = "service:reservations"
	ListCustomerReservations Action = "customer:reservations"
	CreateService            Action = "service:create"
	ManageService            Action = "service:manage"
	IssueReceipt             Action = "receipt:issue"
	ViewReceipt              Action = "receipt:view"
	Rate                     Action = "rating:create"
	ViewAuditLogs            Action = "audit:view"
)

// Resource carries the ownership facts of the entity being acted on. Zero
// values mean "not applicable".
type Resource struct {
	CustomerID uint
	OwnerID    uint
}

func Authorize(actor Actor, action Action, res Resource) bool {
	if actor.ID == 0 {
		return false
	}

	switch action {
	case CreateReservation:
		return actor.Role == models.RoleCustomer

	case CancelReservation:
		// Only the customer who booked may cancel, admins included.
		return res.CustomerID != 0 && actor.ID == res.CustomerID

	case ViewReservation:
		return actor.IsAdmin() ||
			(res.CustomerID != 0 && actor.ID == res.CustomerID) ||
			(res.OwnerID != 0 && actor.ID == res.OwnerID)

	case ListCustomerReservations:
		return actor.IsAdmin() || (res.CustomerID != 0 && actor.ID == res.CustomerID)

	case ListServiceReservations, ManageService:
		return actor.IsAdmin() || (res.OwnerID != 0 && actor.ID == res.OwnerID)

	case CreateService:
		return actor.IsAdmin() || actor.Role == models.RoleOwner

	case IssueReceipt, ViewReceipt:
		return actor.IsAdmin() || (res.CustomerID != 0 && actor.ID == res.CustomerID)

	case Rate:
		return true

	case ViewAuditLogs:
		return actor.IsAdmin() || actor.Role == models.RoleOwner
	}

	return false
}
