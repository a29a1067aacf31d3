package scheduling

import (
	"context"
	"time"

	bookingRepo "slotwise/database/repository/booking"
	serviceRepo "slotwise/database/repository/service"
	staffRepo "slotwise/database/repository/staff"
	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/services/matching"
	"slotwise/services/notification"

	"github.com/go-playground/validator/v10"
)

// BookingResult is the discriminated outcome of a lifecycle operation.
// Exactly one of Booking or Err is set; Alternatives accompany unavailable
// and conflict outcomes so the caller always has an actionable next step.
type BookingResult struct {
	Booking      *models.Booking      `json:"booking,omitempty"`
	Confirmation *models.Confirmation `json:"confirmation,omitempty"`
	Err          *Error               `json:"error,omitempty"`
	Alternatives []models.TimeSlot    `json:"alternatives,omitempty"`
}

// Success reports whether the operation committed.
func (r *BookingResult) Success() bool {
	return r.Err == nil
}

// Service owns the booking state machine.
type Service interface {
	CreateBooking(ctx context.Context, req models.BookingRequest) (*BookingResult, error)
	ConfirmBooking(ctx context.Context, id string) (*BookingResult, error)
	StartBooking(ctx context.Context, id string) (*BookingResult, error)
	CompleteBooking(ctx context.Context, id string) (*BookingResult, error)
	MarkNoShow(ctx context.Context, id string) (*BookingResult, error)
	CancelBooking(ctx context.Context, id, reason, cancelledBy string) (*BookingResult, error)
	RescheduleBooking(ctx context.Context, id string, newTime time.Time) (*BookingResult, error)
	SendReminders(ctx context.Context) error
}

// Settings are the lifecycle tunables, normally sourced from config.
type Settings struct {
	MaxAlternatives     int
	FullFeeWithin       time.Duration // 100% cancellation fee inside this window
	HalfFeeWithin       time.Duration // 50% fee inside this window
	ReminderWindowLong  time.Duration
	ReminderWindowShort time.Duration
}

// DefaultSettings mirrors the documented policy defaults.
func DefaultSettings() Settings {
	return Settings{
		MaxAlternatives:     5,
		FullFeeWithin:       2 * time.Hour,
		HalfFeeWithin:       24 * time.Hour,
		ReminderWindowLong:  24 * time.Hour,
		ReminderWindowShort: 2 * time.Hour,
	}
}

// DefaultService is the production lifecycle manager. All collaborators are
// injected once at construction; there is no package-level instance.
type DefaultService struct {
	BookingRepo  bookingRepo.BookingRepository
	ServiceRepo  serviceRepo.ServiceRepository
	StaffRepo    staffRepo.StaffRepository
	Matching     matching.Engine
	Availability availability.Calculator
	Reminders    notification.Dispatcher

	settings Settings
	validate *validator.Validate
	now      func() time.Time
}

func NewService(
	bookings bookingRepo.BookingRepository,
	services serviceRepo.ServiceRepository,
	staff staffRepo.StaffRepository,
	match matching.Engine,
	avail availability.Calculator,
	reminders notification.Dispatcher,
	settings Settings,
) *DefaultService {
	if settings.MaxAlternatives <= 0 {
		settings.MaxAlternatives = 5
	}
	return &DefaultService{
		BookingRepo:  bookings,
		ServiceRepo:  services,
		StaffRepo:    staff,
		Matching:     match,
		Availability: avail,
		Reminders:    reminders,
		settings:     settings,
		validate:     validator.New(),
		now:          time.Now,
	}
}

// WithClock replaces the wall clock, for tests.
func (s *DefaultService) WithClock(now func() time.Time) *DefaultService {
	s.now = now
	return s
}

func failure(err *Error, alternatives []models.TimeSlot) *BookingResult {
	return &BookingResult{Err: err, Alternatives: alternatives}
}
