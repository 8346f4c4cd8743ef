package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/matchsage/booking-api/internal/domain"
	"github.com/matchsage/booking-api/internal/domain/rating"
	"github.com/matchsage/booking-api/internal/models"
)

type RatingGormRepository struct {
	db *gorm.DB
}

func NewRatingGormRepository(db *gorm.DB) *RatingGormRepository {
	return &RatingGormRepository{db: db}
}

// Record inserts the rating row and folds its score into the target's
// aggregate columns in one transaction.
func (r *RatingGormRepository) Record(
	ctx context.Context,
	target rating.Target,
	row *models.Rating,
	apply func(rating.Aggregate) rating.Aggregate,
) (rating.Aggregate, error) {

	var out rating.Aggregate

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model any
		switch target.Kind {
		case rating.KindService:
			model = &models.Service{}
			row.ServiceID = &target.ID
			row.EmployeeID = nil
		case rating.KindEmployee:
			model = &models.Employee{}
			row.EmployeeID = &target.ID
			row.ServiceID = nil
		default:
			return domain.ErrNotFound
		}

		cur, err := lockAggregate(tx, model, target.ID)
		if err != nil {
			return err
		}

		out = apply(cur)

		row.RatingType = string(target.Kind)
		if err := tx.Create(row).Error; err != nil {
			return err
		}

		return tx.Model(model).
			Where("id = ?", target.ID).
			Updates(map[string]any{
				"rating":       out.Latest,
				"rating_count": out.Count,
				"rating_mean":  out.Mean,
			}).Error
	})
	if err != nil {
		return rating.Aggregate{}, err
	}

	return out, nil
}

func lockAggregate(tx *gorm.DB, model any, id uint) (rating.Aggregate, error) {
	err := forUpdate(tx).First(model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rating.Aggregate{}, domain.ErrNotFound
	}
	if err != nil {
		return rating.Aggregate{}, err
	}

	switch m := model.(type) {
	case *models.Service:
		return rating.Aggregate{Latest: m.Rating, Count: m.RatingCount, Mean: m.RatingMean}, nil
	case *models.Employee:
		return rating.Aggregate{Latest: m.Rating, Count: m.RatingCount, Mean: m.RatingMean}, nil
	}
	return rating.Aggregate{}, domain.ErrNotFound
}

var _ rating.Repository = (*RatingGormRepository)(nil)
