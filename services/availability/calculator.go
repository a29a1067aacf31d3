package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	bookingRepo "slotwise/database/repository/booking"
	"slotwise/models"
	"slotwise/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Calculator computes open time slots and guards the committed-interval
// index that conflict checks run against.
type Calculator interface {
	// AddAppointment registers a reserved interval; idempotent.
	AddAppointment(staffID string, start, end time.Time)
	// RemoveAppointment retracts a reserved interval; idempotent, and a
	// no-op for intervals that were never registered.
	RemoveAppointment(staffID string, start, end time.Time)
	// CheckConflicts returns every existing booking interval, break or
	// time-off period overlapping [start, end); empty means free.
	CheckConflicts(staff models.Staff, start, end time.Time) []models.Conflict
	// CalculateAvailability generates the staff member's day slots for the
	// service at the configured granularity.
	CalculateAvailability(ctx context.Context, service models.Service, staff models.Staff, date time.Time) ([]models.TimeSlot, error)
	// GetOptimalStaffAssignment picks the best qualified staff member free
	// at preferredTime, or nil when none is.
	GetOptimalStaffAssignment(ctx context.Context, service models.Service, roster []models.Staff, preferredTime time.Time) *models.Staff
	// FindNextAvailableSlot scans forward from fromTime across all
	// qualified staff for the earliest open slot of sufficient duration.
	FindNextAvailableSlot(ctx context.Context, service models.Service, roster []models.Staff, fromTime time.Time) *models.TimeSlot
	// StaffLock returns the per-staff mutex serializing check-and-commit
	// critical sections for that staff id.
	StaffLock(staffID string) *sync.Mutex
	// Utilization returns the number of committed intervals a staff member
	// holds on the given date.
	Utilization(staffID string, date time.Time) int
	// LoadCommitted primes the index from the booking store so the index
	// and the persisted committed bookings agree after a restart.
	LoadCommitted(ctx context.Context, repo bookingRepo.BookingRepository) error
}

// DefaultCalculator is the production Calculator.
type DefaultCalculator struct {
	index       *intervalIndex
	granularity time.Duration
	horizonDays int

	// Optional short-TTL cache of computed day availability.
	cache    *redis.Client
	cacheTTL time.Duration
}

// Option configures a DefaultCalculator.
type Option func(*DefaultCalculator)

// WithCache enables Redis caching of computed day availability.
func WithCache(client *redis.Client, ttl time.Duration) Option {
	return func(c *DefaultCalculator) {
		c.cache = client
		c.cacheTTL = ttl
	}
}

// WithHorizon bounds the forward scan of FindNextAvailableSlot.
func WithHorizon(days int) Option {
	return func(c *DefaultCalculator) { c.horizonDays = days }
}

func NewCalculator(granularity time.Duration, opts ...Option) *DefaultCalculator {
	if granularity <= 0 {
		granularity = 15 * time.Minute
	}
	c := &DefaultCalculator{
		index:       newIntervalIndex(),
		granularity: granularity,
		horizonDays: 30,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *DefaultCalculator) AddAppointment(staffID string, start, end time.Time) {
	c.index.add(staffID, start, end)
}

func (c *DefaultCalculator) RemoveAppointment(staffID string, start, end time.Time) {
	c.index.remove(staffID, start, end)
}

func (c *DefaultCalculator) StaffLock(staffID string) *sync.Mutex {
	return c.index.staffLock(staffID)
}

func (c *DefaultCalculator) Utilization(staffID string, date time.Time) int {
	return c.index.countOn(staffID, date)
}

// CheckConflicts inspects bookings, breaks and time off for the interval.
// All interval comparisons are half-open.
func (c *DefaultCalculator) CheckConflicts(staff models.Staff, start, end time.Time) []models.Conflict {
	var conflicts []models.Conflict

	for _, iv := range c.index.overlapping(staff.ID, start, end) {
		conflicts = append(conflicts, models.Conflict{
			Kind:  models.ConflictBooking,
			Start: iv.Start,
			End:   iv.End,
		})
	}

	if offType := staff.TimeOffTypeOn(start); offType != "" {
		dayStart := midnight(start)
		conflicts = append(conflicts, models.Conflict{
			Kind:   models.ConflictTimeOff,
			Start:  dayStart,
			End:    dayStart.AddDate(0, 0, 1),
			Detail: offType,
		})
	}

	if day, ok := staff.ScheduleFor(start.Weekday()); ok && day.IsWorking {
		dayStart := midnight(start)
		for _, br := range day.Breaks {
			brStart := dayStart.Add(time.Duration(br.StartMin) * time.Minute)
			brEnd := dayStart.Add(time.Duration(br.EndMin) * time.Minute)
			if brStart.Before(end) && start.Before(brEnd) {
				conflicts = append(conflicts, models.Conflict{
					Kind:   models.ConflictBreak,
					Start:  brStart,
					End:    brEnd,
					Detail: br.Label,
				})
			}
		}
	}

	return conflicts
}

// CalculateAvailability walks the staff member's working hours for the day
// in granularity steps. Each candidate start produces a slot whose reserved
// interval (buffers included) must clear bookings, breaks and time off;
// unavailable slots carry the blocking reason.
func (c *DefaultCalculator) CalculateAvailability(ctx context.Context, service models.Service, staff models.Staff, date time.Time) ([]models.TimeSlot, error) {
	if cached, ok := c.cachedDay(ctx, service, staff, date); ok {
		return cached, nil
	}

	day, working := staff.ScheduleFor(date.Weekday())
	if !working || !day.IsWorking {
		return nil, nil
	}

	dayStart := midnight(date)
	workStart := dayStart.Add(time.Duration(day.StartMin) * time.Minute)
	workEnd := dayStart.Add(time.Duration(day.EndMin) * time.Minute)
	total := service.TotalDuration()
	bufferBefore := time.Duration(service.BufferBeforeMin) * time.Minute
	offType := staff.TimeOffTypeOn(date)

	var slots []models.TimeSlot
	for t := workStart; !t.Add(total).After(workEnd); t = t.Add(c.granularity) {
		// t is the reserved-interval start; the customer-facing start
		// follows the before-buffer.
		slot := models.TimeSlot{
			StartTime:   t.Add(bufferBefore),
			EndTime:     t.Add(bufferBefore).Add(service.Duration()),
			StaffID:     staff.ID,
			IsAvailable: true,
		}

		switch {
		case offType != "":
			slot.IsAvailable = false
			slot.Reason = offType
		case c.breakOverlap(day, dayStart, t, t.Add(total)):
			slot.IsAvailable = false
			slot.Reason = models.ReasonBreak
		case len(c.index.overlapping(staff.ID, t, t.Add(total))) > 0:
			slot.IsAvailable = false
			slot.Reason = models.ReasonBooked
		}

		slots = append(slots, slot)
	}

	c.storeDay(ctx, service, staff, date, slots)
	return slots, nil
}

func (c *DefaultCalculator) breakOverlap(day models.DaySchedule, dayStart time.Time, start, end time.Time) bool {
	for _, br := range day.Breaks {
		brStart := dayStart.Add(time.Duration(br.StartMin) * time.Minute)
		brEnd := dayStart.Add(time.Duration(br.EndMin) * time.Minute)
		if brStart.Before(end) && start.Before(brEnd) {
			return true
		}
	}
	return false
}

// LoadCommitted registers the reserved interval of every non-terminated
// booking, so a restarted process resumes with a truthful index.
func (c *DefaultCalculator) LoadCommitted(ctx context.Context, repo bookingRepo.BookingRepository) error {
	bookings, err := repo.ListCommitted(ctx)
	if err != nil {
		return fmt.Errorf("failed to load committed bookings: %w", err)
	}
	for _, b := range bookings {
		c.index.add(b.StaffID, b.ReservedStart(), b.ReservedEnd())
	}
	utils.GetLogger().Info("interval index primed from booking store",
		zap.Int("bookings", len(bookings)))
	return nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
