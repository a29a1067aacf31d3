package models

import (
	"fmt"
	"time"
)

// CancellationPolicy defines whether and on what terms a service booking may be cancelled.
type CancellationPolicy struct {
	AllowCancellation bool `bson:"allowCancellation" json:"allowCancellation"`
	DeadlineHours     int  `bson:"deadlineHours" json:"deadlineHours"` // free-cancellation deadline before start
}

// Service represents a bookable offering.
type Service struct {
	ID                     string             `bson:"id" json:"id"`
	Name                   string             `bson:"name" json:"name"`
	DurationMin            int                `bson:"durationMin" json:"durationMin"`                       // billable service time in minutes
	Price                  float64            `bson:"price" json:"price"`                                   // price snapshot source for new bookings
	Currency               string             `bson:"currency" json:"currency"`                             // ISO currency code, e.g. "GBP"
	BufferBeforeMin        int                `bson:"bufferBeforeMin" json:"bufferBeforeMin"`               // prep time reserved before the service
	BufferAfterMin         int                `bson:"bufferAfterMin" json:"bufferAfterMin"`                 // cleanup time reserved after the service
	RequiredSkills         []string           `bson:"requiredSkills" json:"requiredSkills"`                 // skill tags a staff member must hold
	IsActive               bool               `bson:"isActive" json:"isActive"`
	MaxAdvanceBookingDays  int                `bson:"maxAdvanceBookingDays" json:"maxAdvanceBookingDays"`   // how far ahead a booking may be placed
	MinAdvanceBookingHours int                `bson:"minAdvanceBookingHours" json:"minAdvanceBookingHours"` // minimum notice required
	Cancellation           CancellationPolicy `bson:"cancellation" json:"cancellation"`
}

// Duration returns the billable service time.
func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMin) * time.Minute
}

// TotalDuration returns the interval actually reserved on a staff calendar:
// service duration plus both buffers.
func (s Service) TotalDuration() time.Duration {
	return time.Duration(s.DurationMin+s.BufferBeforeMin+s.BufferAfterMin) * time.Minute
}

// TotalDurationMin returns TotalDuration in whole minutes.
func (s Service) TotalDurationMin() int {
	return s.DurationMin + s.BufferBeforeMin + s.BufferAfterMin
}

// ValidateBookingTime enforces the advance-booking window against the given
// wall-clock time. It returns itemized violation messages rather than a
// boolean so callers can surface actionable errors.
func (s Service) ValidateBookingTime(start, now time.Time) []string {
	var violations []string

	if !start.After(now) {
		violations = append(violations, "booking time must be in the future")
	}

	if s.MinAdvanceBookingHours > 0 {
		earliest := now.Add(time.Duration(s.MinAdvanceBookingHours) * time.Hour)
		if start.Before(earliest) {
			violations = append(violations, fmt.Sprintf("booking requires at least %d hours notice", s.MinAdvanceBookingHours))
		}
	}

	if s.MaxAdvanceBookingDays > 0 {
		latest := now.AddDate(0, 0, s.MaxAdvanceBookingDays)
		if start.After(latest) {
			violations = append(violations, fmt.Sprintf("booking cannot be placed more than %d days in advance", s.MaxAdvanceBookingDays))
		}
	}

	return violations
}
