package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingTransitions(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusInProgress, false},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusNoShow, StatusConfirmed, false},
	}

	for _, tc := range cases {
		b := Booking{Status: tc.from}
		assert.Equal(t, tc.allowed, b.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingTerminalStates(t *testing.T) {
	for _, status := range []string{StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.True(t, Booking{Status: status}.IsTerminal(), status)
	}
	for _, status := range []string{StatusPending, StatusConfirmed, StatusInProgress} {
		assert.False(t, Booking{Status: status}.IsTerminal(), status)
	}
}

func TestReservedInterval(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	b := Booking{
		StartTime:       start,
		EndTime:         start.Add(30 * time.Minute),
		BufferBeforeMin: 5,
		BufferAfterMin:  5,
	}

	assert.Equal(t, time.Date(2026, 9, 1, 9, 55, 0, 0, time.UTC), b.ReservedStart())
	assert.Equal(t, time.Date(2026, 9, 1, 10, 35, 0, 0, time.UTC), b.ReservedEnd())
}

func TestReminderSent(t *testing.T) {
	b := Booking{}
	assert.False(t, b.ReminderSent(Reminder24h))

	b.RemindersSent = map[ReminderKind]bool{Reminder24h: true}
	assert.True(t, b.ReminderSent(Reminder24h))
	assert.False(t, b.ReminderSent(Reminder2h))
}
