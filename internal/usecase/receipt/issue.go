package receipt

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matchsage/booking-api/internal/audit"
	"github.com/matchsage/booking-api/internal/authz"
	"github.com/matchsage/booking-api/internal/domain"
	domainreceipt "github.com/matchsage/booking-api/internal/domain/receipt"
	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type IssueReceiptInput struct {
	Actor         authz.Actor
	CustomerID    uint
	ReservationID uint
}

// ======================================================
// USE CASE
// ======================================================

type IssueReceipt struct {
	repo     domainreceipt.Repository
	gateway  domainreceipt.Gateway
	renderer domainreceipt.Renderer
	store    domainreceipt.Store
	notifier domainreceipt.Notifier
	audit    *audit.Dispatcher

	allowCancelled bool
	now            func() time.Time
}

type IssueReceiptDeps struct {
	Repo     domainreceipt.Repository
	Gateway  domainreceipt.Gateway
	Renderer domainreceipt.Renderer
	Store    domainreceipt.Store
	Notifier domainreceipt.Notifier
	Audit    *audit.Dispatcher

	AllowCancelled bool
}

func NewIssueReceipt(d IssueReceiptDeps) *IssueReceipt {
	return &IssueReceipt{
		repo:           d.Repo,
		gateway:        d.Gateway,
		renderer:       d.Renderer,
		store:          d.Store,
		notifier:       d.Notifier,
		audit:          d.Audit,
		allowCancelled: d.AllowCancelled,
		now:            time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *IssueReceipt) Execute(
	ctx context.Context,
	in IssueReceiptInput,
) (*models.Receipt, error) {

	// --------------------------------------------------
	// 1. Reservation and ownership
	// --------------------------------------------------
	res, err := uc.repo.GetReservation(ctx, in.ReservationID)
	if err != nil {
		return nil, domain.NotFoundAs(err, "reservation_not_found")
	}

	if in.CustomerID != 0 && in.CustomerID != res.CustomerID {
		return nil, httperr.ValidationErr("customer_mismatch")
	}

	if !authz.Authorize(in.Actor, authz.IssueReceipt, authz.Resource{CustomerID: res.CustomerID}) {
		return nil, httperr.ForbiddenErr("not_reservation_owner")
	}

	if res.IsCancel && !uc.allowCancelled {
		return nil, httperr.InvalidStateErr("reservation_cancelled")
	}

	service, err := uc.repo.GetService(ctx, res.ServiceID)
	if err != nil {
		return nil, domain.NotFoundAs(err, "service_not_found")
	}

	customer, err := uc.repo.GetUser(ctx, res.CustomerID)
	if err != nil {
		return nil, domain.NotFoundAs(err, "customer_not_found")
	}

	// --------------------------------------------------
	// 2. Receipt row (one per reservation)
	// --------------------------------------------------
	rc := &models.Receipt{
		ReceiptNo:     uuid.NewString(),
		CustomerID:    res.CustomerID,
		ReservationID: res.ID,
		Price:         domainreceipt.Price(service.PricePerHour, res.EndsAt.Sub(res.DateReserved)),
		PaymentDate:   uc.now().UTC(),
		PaymentStatus: domainreceipt.PaymentStatusPending,
	}

	if err := uc.repo.CreateReceipt(ctx, rc); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Payment
	// --------------------------------------------------
	if uc.gateway != nil {
		result, err := uc.gateway.Charge(ctx, domainreceipt.Charge{
			Amount:      rc.Price,
			Description: fmt.Sprintf("%s reservation #%d", service.Name, res.ID),
			PayerEmail:  customer.Email,
			Reference:   rc.ReceiptNo,
		})
		if err != nil {
			log.Printf("receipt %s: payment failed: %v", rc.ReceiptNo, err)
		} else {
			rc.PaymentRef = result.Ref
			rc.PaymentStatus = result.Status
		}
	}

	// --------------------------------------------------
	// 4. Document
	// --------------------------------------------------
	if uc.store != nil && uc.renderer != nil {
		var buf bytes.Buffer
		doc := document(*rc, *res, service.Name, customer)
		if err := uc.renderer.Render(&buf, doc); err != nil {
			log.Printf("receipt %s: render failed: %v", rc.ReceiptNo, err)
		} else {
			key := documentKey(rc.ReceiptNo)
			if _, err := uc.store.Put(ctx, key, "application/pdf", &buf); err != nil {
				log.Printf("receipt %s: upload failed: %v", rc.ReceiptNo, err)
			} else {
				rc.DocumentKey = key
			}
		}
	}

	// The receipt row already exists and the charge may have gone through,
	// so a failed update is logged with the charge ref for reconciliation.
	if err := uc.repo.SavePayment(ctx, rc, domainreceipt.PaidStatus(rc.PaymentStatus)); err != nil {
		log.Printf("receipt %s: saving payment %q (%s) failed: %v", rc.ReceiptNo, rc.PaymentRef, rc.PaymentStatus, err)
	}

	// --------------------------------------------------
	// 5. Side effects
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ServiceID: audit.Ptr(service.ID),
		UserID:    audit.Ptr(in.Actor.ID),
		Action:    "receipt_issued",
		Entity:    "receipt",
		EntityID:  audit.Ptr(rc.ID),
		Metadata: map[string]any{
			"reservation_id": res.ID,
			"price":          rc.Price,
			"payment_status": rc.PaymentStatus,
		},
	})

	if uc.notifier != nil {
		uc.notifier.ReceiptIssued(ctx, *rc)
	}

	return rc, nil
}

func documentKey(receiptNo string) string {
	return "receipts/" + receiptNo + ".pdf"
}

func document(rc models.Receipt, res models.Reservation, serviceName string, customer *models.User) domainreceipt.Document {
	name := strings.TrimSpace(customer.FirstName + " " + customer.LastName)
	if name == "" {
		name = customer.Email
	}
	return domainreceipt.Document{
		Receipt:     rc,
		Reservation: res,
		ServiceName: serviceName,
		Customer:    name,
	}
}
