package bookingRepo

import (
	"context"
	"errors"
	"time"

	"slotwise/models"
)

// ErrNotFound is returned when a booking id does not resolve.
var ErrNotFound = errors.New("booking not found")

// Filter narrows listing queries. Zero-value fields are ignored.
type Filter struct {
	StaffID    string
	CustomerID string
	Status     string
	From       time.Time // bookings starting at or after From
	To         time.Time // bookings starting before To
}

// BookingRepository abstracts booking persistence so the engine can be
// backed by any store. Bookings are only ever inserted and updated; there
// is deliberately no delete.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	List(ctx context.Context, filter Filter) ([]models.Booking, error)
	// ListCommitted returns all non-terminated bookings, used to prime the
	// availability calculator's interval index at startup.
	ListCommitted(ctx context.Context) ([]models.Booking, error)
}
