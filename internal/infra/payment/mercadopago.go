// Package payment charges receipts through a payment provider.
package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"

	"github.com/matchsage/booking-api/internal/domain/receipt"
)

type MercadoPagoGateway struct {
	client payment.Client
	method string
}

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &MercadoPagoGateway{
		client: payment.NewClient(cfg),
		method: "pix",
	}, nil
}

func (g *MercadoPagoGateway) Charge(ctx context.Context, ch receipt.Charge) (receipt.ChargeResult, error) {
	req := payment.Request{
		TransactionAmount: ch.Amount,
		Description:       ch.Description,
		PaymentMethodID:   g.method,
		ExternalReference: ch.Reference,
		Payer: &payment.PayerRequest{
			Email: ch.PayerEmail,
		},
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		return receipt.ChargeResult{}, fmt.Errorf("mercadopago create payment: %w", err)
	}

	return receipt.ChargeResult{
		Ref:    strconv.Itoa(resp.ID),
		Status: NormalizeStatus(resp.Status),
	}, nil
}

// NormalizeStatus folds provider statuses into the receipt statuses.
func NormalizeStatus(s string) string {
	switch s {
	case "approved", "authorized":
		return receipt.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return receipt.PaymentStatusRejected
	default:
		return receipt.PaymentStatusPending
	}
}
