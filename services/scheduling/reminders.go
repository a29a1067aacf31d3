package scheduling

import (
	"context"
	"fmt"
	"time"

	bookingRepo "slotwise/database/repository/booking"
	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// SendReminders sweeps CONFIRMED bookings and dispatches any reminder whose
// window has opened. Each kind fires at most once per booking; the sent flag
// is persisted only after a successful hand-off, so a failed dispatch is
// retried on the next sweep. Delivery failures are logged and do not abort
// the sweep.
func (s *DefaultService) SendReminders(ctx context.Context) error {
	now := s.now()
	horizon := now.Add(s.settings.ReminderWindowLong)

	bookings, err := s.BookingRepo.List(ctx, bookingRepo.Filter{
		Status: models.StatusConfirmed,
		From:   now,
		To:     horizon,
	})
	if err != nil {
		return fmt.Errorf("failed to list bookings for reminder sweep: %w", err)
	}

	logger := utils.GetLogger()
	for i := range bookings {
		booking := &bookings[i]
		for _, window := range []struct {
			kind models.ReminderKind
			span time.Duration
		}{
			{models.Reminder24h, s.settings.ReminderWindowLong},
			{models.Reminder2h, s.settings.ReminderWindowShort},
		} {
			if booking.ReminderSent(window.kind) {
				continue
			}
			// The window is half-open: [start-span, start). A booking already
			// underway gets no reminder.
			opens := booking.StartTime.Add(-window.span)
			if now.Before(opens) || !now.Before(booking.StartTime) {
				continue
			}

			if err := s.Reminders.SendReminder(ctx, *booking, window.kind); err != nil {
				logger.Warn("reminder dispatch failed",
					zap.String("bookingID", booking.ID),
					zap.String("kind", string(window.kind)),
					zap.Error(err),
				)
				continue
			}
			if booking.RemindersSent == nil {
				booking.RemindersSent = make(map[models.ReminderKind]bool)
			}
			booking.RemindersSent[window.kind] = true
			booking.UpdatedAt = now
			if err := s.BookingRepo.Update(ctx, booking); err != nil {
				logger.Error("failed to persist reminder flag",
					zap.String("bookingID", booking.ID),
					zap.String("kind", string(window.kind)),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}
