package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "slotwise/database/repository/booking"
	serviceRepo "slotwise/database/repository/service"
	staffRepo "slotwise/database/repository/staff"
	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// RescheduleBooking moves a live booking to a new start time with the same
// staff member. The move is atomic: the old reserved interval comes out,
// the new time is checked, and on any failure the old interval goes back
// untouched before the result is returned.
func (s *DefaultService) RescheduleBooking(ctx context.Context, id string, newTime time.Time) (*BookingResult, error) {
	booking, err := s.BookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return failure(notFoundError("booking", id), nil), nil
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking.IsTerminal() {
		return failure(stateError(fmt.Sprintf("booking %s is %s and cannot be rescheduled", id, booking.Status)), nil), nil
	}

	service, err := s.ServiceRepo.GetByID(ctx, booking.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return failure(notFoundError("service", booking.ServiceID), nil), nil
		}
		return nil, fmt.Errorf("failed to resolve service: %w", err)
	}
	if violations := service.ValidateBookingTime(newTime, s.now()); len(violations) > 0 {
		return failure(validationError(violations...), nil), nil
	}

	staff, err := s.StaffRepo.GetByID(ctx, booking.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrNotFound) {
			return failure(notFoundError("staff", booking.StaffID), nil), nil
		}
		return nil, fmt.Errorf("failed to resolve staff: %w", err)
	}

	oldStart := booking.ReservedStart()
	oldEnd := booking.ReservedEnd()
	newStart := newTime.Add(-time.Duration(service.BufferBeforeMin) * time.Minute)
	newEnd := newStart.Add(service.TotalDuration())

	lock := s.Availability.StaffLock(booking.StaffID)
	lock.Lock()
	defer lock.Unlock()

	// Release the current hold so it does not conflict with the new time
	// (back-to-back moves on the same day are legitimate).
	s.Availability.RemoveAppointment(booking.StaffID, oldStart, oldEnd)

	restore := func() {
		s.Availability.AddAppointment(booking.StaffID, oldStart, oldEnd)
	}

	if !staff.IsAvailable(newStart, int(newEnd.Sub(newStart).Minutes())) {
		restore()
		alternatives := s.alternativesFor(ctx, *service, newTime)
		return failure(unavailableError(fmt.Sprintf("staff %s is not available at the new time", staff.ID)), alternatives), nil
	}
	if conflicts := s.Availability.CheckConflicts(*staff, newStart, newEnd); len(conflicts) > 0 {
		restore()
		alternatives := s.alternativesFor(ctx, *service, newTime)
		return failure(conflictError("the new time conflicts with an existing booking"), alternatives), nil
	}

	oldTime := booking.StartTime
	booking.StartTime = newTime
	booking.EndTime = newTime.Add(service.Duration())
	booking.UpdatedAt = s.now()

	if err := s.BookingRepo.Update(ctx, booking); err != nil {
		booking.StartTime = oldTime
		booking.EndTime = oldTime.Add(service.Duration())
		restore()
		return nil, fmt.Errorf("failed to persist reschedule: %w", err)
	}
	s.Availability.AddAppointment(booking.StaffID, newStart, newEnd)

	utils.GetLogger().Info("booking rescheduled",
		zap.String("bookingID", booking.ID),
		zap.Time("from", oldTime),
		zap.Time("to", newTime),
	)
	return &BookingResult{Booking: booking}, nil
}

// alternativesFor proposes slots for a reschedule failure, where there is no
// full BookingRequest to draw customer preferences from.
func (s *DefaultService) alternativesFor(ctx context.Context, service models.Service, preferred time.Time) []models.TimeSlot {
	roster, err := s.StaffRepo.GetActive(ctx)
	if err != nil {
		utils.GetLogger().Warn("failed to fetch roster for alternatives", zap.Error(err))
		return nil
	}
	return s.findAlternativeSlots(ctx, service, roster, models.BookingRequest{
		ServiceID:     service.ID,
		PreferredTime: preferred,
	})
}
