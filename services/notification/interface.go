package notification

import (
	"context"

	"slotwise/models"

	"go.uber.org/zap"
)

// Dispatcher delivers a reminder for a booking. Delivery is an external
// concern; the engine only tracks that a reminder kind was handed off.
type Dispatcher interface {
	SendReminder(ctx context.Context, booking models.Booking, kind models.ReminderKind) error
}

// LogDispatcher is the reference Dispatcher: it records the hand-off in the
// structured log and nothing else. Useful in tests and as a fallback when
// no delivery channel is configured.
type LogDispatcher struct {
	Logger *zap.Logger
}

func (d *LogDispatcher) SendReminder(_ context.Context, booking models.Booking, kind models.ReminderKind) error {
	d.Logger.Info("reminder dispatched",
		zap.String("bookingID", booking.ID),
		zap.String("kind", string(kind)),
		zap.Time("startTime", booking.StartTime),
		zap.String("customerID", booking.CustomerID),
	)
	return nil
}
