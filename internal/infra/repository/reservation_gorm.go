package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matchsage/booking-api/internal/domain"
	resv "github.com/matchsage/booking-api/internal/domain/reservation"
	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// first loads one row by id and maps a missing row to domain.ErrNotFound.
func first[T any](ctx context.Context, db *gorm.DB, id uint) (*T, error) {
	var v T
	if err := db.WithContext(ctx).First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// isConflict reports a lost write race: a unique violation as translated by
// the dialect (gorm TranslateError), or a Postgres exclusion violation.
func isConflict(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || httperr.IsExclusionConflict(err)
}

// forUpdate adds a row lock where the dialect supports one.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *ReservationGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return first[models.User](ctx, r.db, id)
}

func (r *ReservationGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	return first[models.Service](ctx, r.db, id)
}

func (r *ReservationGormRepository) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	return first[models.Employee](ctx, r.db, id)
}

func (r *ReservationGormRepository) ListEmployeeIDs(
	ctx context.Context,
	serviceID uint,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("work_for = ?", serviceID).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *ReservationGormRepository) ListActiveReservations(
	ctx context.Context,
	employeeIDs []uint,
	w resv.Window,
) ([]models.Reservation, error) {

	var rs []models.Reservation
	if len(employeeIDs) == 0 {
		return rs, nil
	}

	if err := r.db.WithContext(ctx).
		Where(
			"employee_id IN ? AND is_cancel = ? AND date_reserved < ? AND ends_at > ?",
			employeeIDs, false, w.End.UTC(), w.Start.UTC(),
		).
		Order("date_reserved ASC").
		Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

// --------------------------------------------------
// Reservation (create / conflict)
// --------------------------------------------------

func (r *ReservationGormRepository) CreateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {

	res.DateReserved = res.DateReserved.UTC()
	res.EndsAt = res.EndsAt.UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the employee row so concurrent bookings of the same
		// employee queue behind this transaction.
		var emp models.Employee
		if err := forUpdate(tx).First(&emp, res.EmployeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.NotFoundErr("employee_not_found")
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Reservation{}).
			Where(
				"employee_id = ? AND is_cancel = ? AND date_reserved < ? AND ends_at > ?",
				res.EmployeeID, false, res.EndsAt, res.DateReserved,
			).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ConflictErr("time_conflict")
		}

		return tx.Create(res).Error
	})

	if isConflict(err) {
		return httperr.ConflictErr("time_conflict")
	}
	return err
}

// --------------------------------------------------
// Reservation (state change)
// --------------------------------------------------

func (r *ReservationGormRepository) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	return first[models.Reservation](ctx, r.db, id)
}

func (r *ReservationGormRepository) MarkCancelled(
	ctx context.Context,
	res *models.Reservation,
) error {

	cancelledAt := time.Now().UTC()
	if res.CancelledAt != nil {
		cancelledAt = res.CancelledAt.UTC()
	}

	tx := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND is_cancel = ?", res.ID, false).
		Updates(map[string]any{
			"is_cancel":    true,
			"cancelled_at": cancelledAt,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return httperr.InvalidStateErr("reservation_already_cancelled")
	}

	res.IsCancel = true
	res.CancelledAt = &cancelledAt
	return nil
}

func (r *ReservationGormRepository) UpdatePaidStatus(
	ctx context.Context,
	id uint,
	status string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("paid_status", status).Error
}

// --------------------------------------------------
// History
// --------------------------------------------------

func (r *ReservationGormRepository) ListReservationsByCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Reservation, error) {

	var rs []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("date_reserved DESC").
		Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

func (r *ReservationGormRepository) ListReservationsByService(
	ctx context.Context,
	serviceID uint,
) ([]models.Reservation, error) {

	var rs []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("date_reserved DESC").
		Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}

var _ resv.Repository = (*ReservationGormRepository)(nil)
