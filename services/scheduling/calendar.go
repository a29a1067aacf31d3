package scheduling

import (
	"fmt"
	"net/url"
	"strings"

	"slotwise/models"
)

const calendarTimeLayout = "20060102T150405Z"

// buildCalendarLinks renders add-to-calendar deep links for the confirmed
// appointment. Times are emitted in UTC per the calendar URL conventions.
func buildCalendarLinks(booking models.Booking, serviceName, staffName string) models.CalendarLinks {
	start := booking.StartTime.UTC().Format(calendarTimeLayout)
	end := booking.EndTime.UTC().Format(calendarTimeLayout)
	title := fmt.Sprintf("%s with %s", serviceName, staffName)
	details := fmt.Sprintf("Booking reference %s", booking.ID)

	google := url.Values{}
	google.Set("action", "TEMPLATE")
	google.Set("text", title)
	google.Set("dates", start+"/"+end)
	google.Set("details", details)

	outlook := url.Values{}
	outlook.Set("path", "/calendar/action/compose")
	outlook.Set("rru", "addevent")
	outlook.Set("subject", title)
	outlook.Set("startdt", booking.StartTime.UTC().Format("2006-01-02T15:04:05Z"))
	outlook.Set("enddt", booking.EndTime.UTC().Format("2006-01-02T15:04:05Z"))
	outlook.Set("body", details)

	return models.CalendarLinks{
		Google:  "https://calendar.google.com/calendar/render?" + google.Encode(),
		Outlook: "https://outlook.live.com/calendar/0/deeplink/compose?" + outlook.Encode(),
		ICS:     buildICS(booking, title, details),
	}
}

func buildICS(booking models.Booking, title, details string) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//slotwise//booking//EN\r\n")
	b.WriteString("BEGIN:VEVENT\r\n")
	b.WriteString("UID:" + booking.ID + "\r\n")
	b.WriteString("DTSTAMP:" + booking.CreatedAt.UTC().Format(calendarTimeLayout) + "\r\n")
	b.WriteString("DTSTART:" + booking.StartTime.UTC().Format(calendarTimeLayout) + "\r\n")
	b.WriteString("DTEND:" + booking.EndTime.UTC().Format(calendarTimeLayout) + "\r\n")
	b.WriteString("SUMMARY:" + escapeICS(title) + "\r\n")
	b.WriteString("DESCRIPTION:" + escapeICS(details) + "\r\n")
	b.WriteString("END:VEVENT\r\n")
	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

func escapeICS(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}
