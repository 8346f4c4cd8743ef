package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/matchsage/booking-api/internal/domain/receipt"
)

// OfflineGateway records payments settled outside the system, e.g. cash at
// the counter. Every charge is approved.
type OfflineGateway struct{}

func (OfflineGateway) Charge(_ context.Context, _ receipt.Charge) (receipt.ChargeResult, error) {
	return receipt.ChargeResult{
		Ref:    "offline-" + uuid.NewString(),
		Status: receipt.PaymentStatusApproved,
	}, nil
}
