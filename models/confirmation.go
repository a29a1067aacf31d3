package models

// CalendarLinks carries deep-link strings for adding a booking to external
// calendars. Pure string formatting; no external call is made.
type CalendarLinks struct {
	Google  string `json:"google"`
	Outlook string `json:"outlook"`
	ICS     string `json:"ics"` // inline text/calendar payload as a data string
}

// Confirmation is the artifact generated when a booking is committed.
type Confirmation struct {
	BookingID        string        `json:"bookingId"`
	ConfirmationCode string        `json:"confirmationCode"`
	Calendar         CalendarLinks `json:"calendar"`
}
