package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestServiceDurations(t *testing.T) {
	svc := Service{DurationMin: 30, BufferBeforeMin: 5, BufferAfterMin: 5}

	assert.Equal(t, 30*time.Minute, svc.Duration())
	assert.Equal(t, 40*time.Minute, svc.TotalDuration())
	assert.Equal(t, 40, svc.TotalDurationMin())
}

func TestValidateBookingTime(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := Service{MinAdvanceBookingHours: 2, MaxAdvanceBookingDays: 30}

	t.Run("valid", func(t *testing.T) {
		assert.Empty(t, svc.ValidateBookingTime(now.Add(3*time.Hour), now))
	})

	t.Run("in the past", func(t *testing.T) {
		violations := svc.ValidateBookingTime(now.Add(-time.Hour), now)
		assert.Len(t, violations, 2) // past and inside the notice window
	})

	t.Run("too little notice", func(t *testing.T) {
		violations := svc.ValidateBookingTime(now.Add(time.Hour), now)
		assert.Len(t, violations, 1)
		assert.Contains(t, violations[0], "notice")
	})

	t.Run("too far ahead", func(t *testing.T) {
		violations := svc.ValidateBookingTime(now.AddDate(0, 0, 31), now)
		assert.Len(t, violations, 1)
		assert.Contains(t, violations[0], "days in advance")
	})

	t.Run("no limits configured", func(t *testing.T) {
		open := Service{}
		assert.Empty(t, open.ValidateBookingTime(now.Add(time.Minute), now))
	})
}
