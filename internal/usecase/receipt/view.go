package receipt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"

	"github.com/matchsage/booking-api/internal/authz"
	"github.com/matchsage/booking-api/internal/domain"
	domainreceipt "github.com/matchsage/booking-api/internal/domain/receipt"
	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/models"
)

type Receipts struct {
	repo     domainreceipt.Repository
	renderer domainreceipt.Renderer
	store    domainreceipt.Store
}

func NewReceipts(
	repo domainreceipt.Repository,
	renderer domainreceipt.Renderer,
	store domainreceipt.Store,
) *Receipts {
	return &Receipts{repo: repo, renderer: renderer, store: store}
}

func (uc *Receipts) Get(ctx context.Context, actor authz.Actor, id uint) (*models.Receipt, error) {
	rc, err := uc.repo.GetReceipt(ctx, id)
	if err != nil {
		return nil, domain.NotFoundAs(err, "receipt_not_found")
	}

	if !authz.Authorize(actor, authz.ViewReceipt, authz.Resource{CustomerID: rc.CustomerID}) {
		return nil, httperr.ForbiddenErr("not_receipt_owner")
	}
	return rc, nil
}

// List returns a customer's receipts. customerID 0 means the actor.
func (uc *Receipts) List(ctx context.Context, actor authz.Actor, customerID uint) ([]models.Receipt, error) {
	if customerID == 0 {
		customerID = actor.ID
	}
	if !authz.Authorize(actor, authz.ViewReceipt, authz.Resource{CustomerID: customerID}) {
		return nil, httperr.ForbiddenErr("not_receipt_owner")
	}
	return uc.repo.ListReceiptsByCustomer(ctx, customerID)
}

// Download returns the receipt's PDF, from the store when one was uploaded
// and rendered on demand otherwise.
func (uc *Receipts) Download(ctx context.Context, actor authz.Actor, id uint) (*models.Receipt, io.ReadCloser, error) {
	rc, err := uc.Get(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}

	if rc.DocumentKey != "" && uc.store != nil {
		body, err := uc.store.Get(ctx, rc.DocumentKey)
		if err == nil {
			return rc, body, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("receipt %s: stored document unavailable: %v", rc.ReceiptNo, err)
		}
	}

	if uc.renderer == nil {
		return nil, nil, httperr.NotFoundErr("receipt_document_not_found")
	}

	res, err := uc.repo.GetReservation(ctx, rc.ReservationID)
	if err != nil {
		return nil, nil, domain.NotFoundAs(err, "reservation_not_found")
	}

	serviceName := ""
	if s, err := uc.repo.GetService(ctx, res.ServiceID); err == nil {
		serviceName = s.Name
	}

	customer, err := uc.repo.GetUser(ctx, rc.CustomerID)
	if err != nil {
		return nil, nil, domain.NotFoundAs(err, "customer_not_found")
	}

	var buf bytes.Buffer
	if err := uc.renderer.Render(&buf, document(*rc, *res, serviceName, customer)); err != nil {
		return nil, nil, err
	}
	return rc, io.NopCloser(&buf), nil
}
