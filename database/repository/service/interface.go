package serviceRepo

import (
	"context"
	"errors"

	"slotwise/models"
)

// ErrNotFound is returned when a service id does not resolve.
var ErrNotFound = errors.New("service not found")

// ServiceRepository is the narrow service-catalog lookup contract the
// engine consumes. The catalog itself is maintained elsewhere.
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*models.Service, error)
	GetActive(ctx context.Context) ([]models.Service, error)
	Upsert(ctx context.Context, service *models.Service) error
}
