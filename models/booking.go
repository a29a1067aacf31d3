package models

import "time"

// Booking status values. Transitions only move forward; COMPLETED,
// CANCELLED and NO_SHOW are terminal.
const (
	StatusPending    = "PENDING"
	StatusConfirmed  = "CONFIRMED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
	StatusNoShow     = "NO_SHOW"
)

// Payment status values tracked on the booking; processing itself is external.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// ReminderKind identifies a reminder window for a booking.
type ReminderKind string

const (
	Reminder24h ReminderKind = "24h"
	Reminder2h  ReminderKind = "2h"
)

var transitions = map[string][]string{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
}

// Booking represents a committed appointment. Bookings are created only by
// the lifecycle manager and never deleted; cancellation is a terminal
// status, not a row removal.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	ServiceID       string    `bson:"serviceId" json:"serviceId"`
	StaffID         string    `bson:"staffId" json:"staffId"`
	CustomerID      string    `bson:"customerId" json:"customerId"`
	CustomerName    string    `bson:"customerName,omitempty" json:"customerName,omitempty"`
	CustomerEmail   string    `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	CustomerPhone   string    `bson:"customerPhone,omitempty" json:"customerPhone,omitempty"`
	StartTime       time.Time `bson:"startTime" json:"startTime"`
	EndTime         time.Time `bson:"endTime" json:"endTime"` // startTime + service duration; buffers tracked separately
	BufferBeforeMin int       `bson:"bufferBeforeMin" json:"bufferBeforeMin"`
	BufferAfterMin  int       `bson:"bufferAfterMin" json:"bufferAfterMin"`
	Status          string    `bson:"status" json:"status"`
	Price           float64   `bson:"price" json:"price"` // snapshot at creation time
	Currency        string    `bson:"currency" json:"currency"`
	PaymentStatus   string    `bson:"paymentStatus" json:"paymentStatus"`

	CancellationReason string  `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancellationFee    float64 `bson:"cancellationFee,omitempty" json:"cancellationFee,omitempty"`
	CancelledBy        string  `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`

	RemindersSent map[ReminderKind]bool `bson:"remindersSent,omitempty" json:"remindersSent,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CanTransitionTo reports whether moving to the given status is a legal
// forward step in the state machine.
func (b Booking) CanTransitionTo(next string) bool {
	for _, allowed := range transitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted.
func (b Booking) IsTerminal() bool {
	switch b.Status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ReservedStart returns the start of the interval reserved on the staff
// calendar, which precedes StartTime by the before-buffer.
func (b Booking) ReservedStart() time.Time {
	return b.StartTime.Add(-time.Duration(b.BufferBeforeMin) * time.Minute)
}

// ReservedEnd returns the end of the reserved interval, which follows
// EndTime by the after-buffer.
func (b Booking) ReservedEnd() time.Time {
	return b.EndTime.Add(time.Duration(b.BufferAfterMin) * time.Minute)
}

// ReminderSent reports whether the given reminder kind was already dispatched.
func (b Booking) ReminderSent(kind ReminderKind) bool {
	return b.RemindersSent[kind]
}
