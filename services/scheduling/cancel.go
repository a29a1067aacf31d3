package scheduling

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "slotwise/database/repository/booking"
	serviceRepo "slotwise/database/repository/service"
	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// CancelBooking transitions a booking to CANCELLED, computing the fee from
// the cancellation policy snapshot and the hours remaining until start.
// The reserved interval is retracted before the call returns, so the slot
// is immediately free for subsequent bookings.
func (s *DefaultService) CancelBooking(ctx context.Context, id, reason, cancelledBy string) (*BookingResult, error) {
	booking, err := s.BookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return failure(notFoundError("booking", id), nil), nil
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	if !booking.CanTransitionTo(models.StatusCancelled) {
		return failure(stateError(fmt.Sprintf("booking %s cannot be cancelled from status %s", id, booking.Status)), nil), nil
	}

	service, err := s.ServiceRepo.GetByID(ctx, booking.ServiceID)
	if err != nil && !errors.Is(err, serviceRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to fetch service for cancellation policy: %w", err)
	}

	var policy models.CancellationPolicy
	if service != nil {
		policy = service.Cancellation
		if !policy.AllowCancellation {
			return failure(stateError(fmt.Sprintf("service %s does not allow cancellation", service.ID)), nil), nil
		}
	}

	now := s.now()
	booking.Status = models.StatusCancelled
	booking.CancellationReason = reason
	booking.CancelledBy = cancelledBy
	booking.CancellationFee = s.cancellationFee(*booking, policy, now)
	booking.UpdatedAt = now

	if err := s.BookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist cancellation: %w", err)
	}
	s.Availability.RemoveAppointment(booking.StaffID, booking.ReservedStart(), booking.ReservedEnd())

	utils.GetLogger().Info("booking cancelled",
		zap.String("bookingID", booking.ID),
		zap.String("cancelledBy", cancelledBy),
		zap.Float64("fee", booking.CancellationFee),
	)
	return &BookingResult{Booking: booking}, nil
}
