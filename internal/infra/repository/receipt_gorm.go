package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/matchsage/booking-api/internal/domain/receipt"
	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/models"
)

type ReceiptGormRepository struct {
	db *gorm.DB
}

func NewReceiptGormRepository(db *gorm.DB) *ReceiptGormRepository {
	return &ReceiptGormRepository{db: db}
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *ReceiptGormRepository) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	return first[models.Reservation](ctx, r.db, id)
}

func (r *ReceiptGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	return first[models.Service](ctx, r.db, id)
}

func (r *ReceiptGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return first[models.User](ctx, r.db, id)
}

// --------------------------------------------------
// Receipt
// --------------------------------------------------

func (r *ReceiptGormRepository) CreateReceipt(ctx context.Context, rc *models.Receipt) error {
	err := r.db.WithContext(ctx).Create(rc).Error
	if isConflict(err) {
		return httperr.ConflictErr("receipt_already_issued")
	}
	return err
}

func (r *ReceiptGormRepository) GetReceipt(ctx context.Context, id uint) (*models.Receipt, error) {
	return first[models.Receipt](ctx, r.db, id)
}

func (r *ReceiptGormRepository) ListReceiptsByCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Receipt, error) {

	rs := []models.Receipt{}
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("payment_date DESC").
		Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

func (r *ReceiptGormRepository) SavePayment(
	ctx context.Context,
	rc *models.Receipt,
	paidStatus string,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Receipt{}).
			Where("id = ?", rc.ID).
			Updates(map[string]any{
				"payment_status": rc.PaymentStatus,
				"payment_ref":    rc.PaymentRef,
				"document_key":   rc.DocumentKey,
			}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Reservation{}).
			Where("id = ?", rc.ReservationID).
			Update("paid_status", paidStatus).Error
	})
}

var _ receipt.Repository = (*ReceiptGormRepository)(nil)
