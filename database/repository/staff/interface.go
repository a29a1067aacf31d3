package staffRepo

import (
	"context"
	"errors"

	"slotwise/models"
)

// ErrNotFound is returned when a staff id does not resolve.
var ErrNotFound = errors.New("staff not found")

// StaffRepository is the narrow staff-directory lookup contract the engine
// consumes. Rosters are maintained elsewhere.
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (*models.Staff, error)
	GetActive(ctx context.Context) ([]models.Staff, error)
	// GetWithSkills returns active staff holding every one of the given skills.
	GetWithSkills(ctx context.Context, skills []string) ([]models.Staff, error)
	Upsert(ctx context.Context, staff *models.Staff) error
}
