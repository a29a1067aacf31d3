package scheduling

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "slotwise/database/repository/booking"
	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// ConfirmBooking moves a PENDING booking to CONFIRMED.
func (s *DefaultService) ConfirmBooking(ctx context.Context, id string) (*BookingResult, error) {
	return s.transition(ctx, id, models.StatusConfirmed)
}

// StartBooking marks a CONFIRMED booking as in progress.
func (s *DefaultService) StartBooking(ctx context.Context, id string) (*BookingResult, error) {
	return s.transition(ctx, id, models.StatusInProgress)
}

// CompleteBooking closes out an IN_PROGRESS booking.
func (s *DefaultService) CompleteBooking(ctx context.Context, id string) (*BookingResult, error) {
	return s.transition(ctx, id, models.StatusCompleted)
}

// MarkNoShow flags a CONFIRMED booking whose customer never arrived.
func (s *DefaultService) MarkNoShow(ctx context.Context, id string) (*BookingResult, error) {
	return s.transition(ctx, id, models.StatusNoShow)
}

func (s *DefaultService) transition(ctx context.Context, id, to string) (*BookingResult, error) {
	booking, err := s.BookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return failure(notFoundError("booking", id), nil), nil
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	if !booking.CanTransitionTo(to) {
		return failure(stateError(fmt.Sprintf("booking %s cannot move from %s to %s", id, booking.Status, to)), nil), nil
	}

	booking.Status = to
	booking.UpdatedAt = s.now()
	if err := s.BookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist status change: %w", err)
	}

	utils.GetLogger().Info("booking status changed",
		zap.String("bookingID", booking.ID),
		zap.String("status", to),
	)
	return &BookingResult{Booking: booking}, nil
}
