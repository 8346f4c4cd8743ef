package catalog

import (
	"context"

	"github.com/matchsage/booking-api/internal/models"
)

// Repository persists services and their employees. Lookups return
// domain.ErrNotFound when nothing matches.
type Repository interface {
	CreateService(ctx context.Context, s *models.Service) error

	// GetService loads the service with its employees.
	GetService(ctx context.Context, id uint) (*models.Service, error)

	UpdateServicePhoto(ctx context.Context, id uint, photoURL string) error

	CreateEmployee(ctx context.Context, e *models.Employee) error
	GetEmployee(ctx context.Context, id uint) (*models.Employee, error)
}
