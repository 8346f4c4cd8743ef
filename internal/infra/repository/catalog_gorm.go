package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/matchsage/booking-api/internal/domain"
	"github.com/matchsage/booking-api/internal/domain/catalog"
	"github.com/matchsage/booking-api/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *CatalogGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Omit("Employees").Create(s).Error
}

func (r *CatalogGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var s models.Service
	err := r.db.WithContext(ctx).
		Preload("Employees", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) UpdateServicePhoto(ctx context.Context, id uint, photoURL string) error {
	tx := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", id).
		Update("photo_url", photoURL)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Employee
// --------------------------------------------------

func (r *CatalogGormRepository) CreateEmployee(ctx context.Context, e *models.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *CatalogGormRepository) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	return first[models.Employee](ctx, r.db, id)
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)
