package tasks

import (
	"context"
	"encoding/json"
	"time"

	"slotwise/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// ReminderPayload is the task body enqueued for every reminder hand-off.
type ReminderPayload struct {
	BookingID     string              `json:"bookingId"`
	Kind          models.ReminderKind `json:"kind"`
	CustomerID    string              `json:"customerId"`
	CustomerEmail string              `json:"customerEmail,omitempty"`
	StartTime     time.Time           `json:"startTime"`
	ServiceID     string              `json:"serviceId"`
	StaffID       string              `json:"staffId"`
}

func NewReminderTask(payload ReminderPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendReminder, b), nil
}

// AsynqDispatcher hands reminders to the background queue instead of
// delivering inline, so a slow channel never stalls the sweep.
type AsynqDispatcher struct {
	Client *asynq.Client
}

func NewAsynqDispatcher(client *asynq.Client) *AsynqDispatcher {
	return &AsynqDispatcher{Client: client}
}

func (d *AsynqDispatcher) SendReminder(ctx context.Context, booking models.Booking, kind models.ReminderKind) error {
	task, err := NewReminderTask(ReminderPayload{
		BookingID:     booking.ID,
		Kind:          kind,
		CustomerID:    booking.CustomerID,
		CustomerEmail: booking.CustomerEmail,
		StartTime:     booking.StartTime,
		ServiceID:     booking.ServiceID,
		StaffID:       booking.StaffID,
	})
	if err != nil {
		return err
	}
	_, err = d.Client.EnqueueContext(ctx, task)
	return err
}
