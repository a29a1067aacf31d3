package models

import "time"

// Slot unavailability reasons produced by the availability calculator.
const (
	ReasonBooked  = "booked"
	ReasonBreak   = "break"
	ReasonOutside = "outside working hours"
)

// TimeSlot is a candidate interval for a booking. Slots are derived on
// demand and consumed immediately by the caller; they are never persisted.
type TimeSlot struct {
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	IsAvailable bool      `json:"isAvailable"`
	StaffID     string    `json:"staffId"`
	Reason      string    `json:"reason,omitempty"` // set when unavailable: "booked", "break", or a time-off type
}

// Conflict kinds reported by CheckConflicts.
const (
	ConflictBooking = "booking"
	ConflictBreak   = "break"
	ConflictTimeOff = "timeoff"
)

// Conflict describes an existing reservation, break or time-off period
// overlapping a requested interval.
type Conflict struct {
	Kind   string    `json:"kind"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Detail string    `json:"detail,omitempty"` // break label or time-off type
}
