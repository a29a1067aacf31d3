package models

import "time"

// BookingRequest is the payload for creating a booking. StaffID is optional;
// when empty the engine auto-assigns the best qualified free staff member.
type BookingRequest struct {
	ServiceID        string      `json:"serviceId" validate:"required"`
	StaffID          string      `json:"staffId,omitempty"`
	CustomerID       string      `json:"customerId" validate:"required"`
	CustomerName     string      `json:"customerName,omitempty" validate:"omitempty,min=1,max=200"`
	CustomerEmail    string      `json:"customerEmail,omitempty" validate:"omitempty,email"`
	CustomerPhone    string      `json:"customerPhone,omitempty" validate:"omitempty,min=5,max=32"`
	PreferredTime    time.Time   `json:"preferredTime" validate:"required"`
	AlternativeTimes []time.Time `json:"alternativeTimes,omitempty"` // checked first when the preferred time fails
}
