package bookingRepo

import (
	"context"
	"sort"
	"sync"

	"slotwise/models"
)

// MemoryBookingRepo is the in-memory reference implementation of
// BookingRepository, used by tests and small single-process deployments.
type MemoryBookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
}

func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{bookings: make(map[string]models.Booking)}
}

func (repo *MemoryBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.bookings[booking.ID] = cloneBooking(*booking)
	return nil
}

func (repo *MemoryBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	b, ok := repo.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneBooking(b)
	return &out, nil
}

func (repo *MemoryBookingRepo) Update(_ context.Context, booking *models.Booking) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.bookings[booking.ID]; !ok {
		return ErrNotFound
	}
	repo.bookings[booking.ID] = cloneBooking(*booking)
	return nil
}

func (repo *MemoryBookingRepo) List(_ context.Context, filter Filter) ([]models.Booking, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var out []models.Booking
	for _, b := range repo.bookings {
		if filter.StaffID != "" && b.StaffID != filter.StaffID {
			continue
		}
		if filter.CustomerID != "" && b.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if !filter.From.IsZero() && b.StartTime.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !b.StartTime.Before(filter.To) {
			continue
		}
		out = append(out, cloneBooking(b))
	}
	sortByStart(out)
	return out, nil
}

func (repo *MemoryBookingRepo) ListCommitted(_ context.Context) ([]models.Booking, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var out []models.Booking
	for _, b := range repo.bookings {
		if !b.IsTerminal() {
			out = append(out, cloneBooking(b))
		}
	}
	sortByStart(out)
	return out, nil
}

func sortByStart(bookings []models.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].StartTime.Equal(bookings[j].StartTime) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].StartTime.Before(bookings[j].StartTime)
	})
}

// cloneBooking copies the booking including its reminder map, so callers
// never share mutable state with the store.
func cloneBooking(b models.Booking) models.Booking {
	if b.RemindersSent != nil {
		sent := make(map[models.ReminderKind]bool, len(b.RemindersSent))
		for k, v := range b.RemindersSent {
			sent[k] = v
		}
		b.RemindersSent = sent
	}
	return b
}
