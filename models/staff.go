package models

import (
	"strings"
	"time"
)

// Break is a recurring pause within a working day, in minutes from midnight.
type Break struct {
	StartMin int    `bson:"startMin" json:"startMin"`
	EndMin   int    `bson:"endMin" json:"endMin"`
	Label    string `bson:"label,omitempty" json:"label,omitempty"` // e.g. "lunch"
}

// DaySchedule describes a staff member's recurring hours for one day of the week.
type DaySchedule struct {
	StartMin  int     `bson:"startMin" json:"startMin"` // minutes from midnight (e.g. 540 for 9:00 AM)
	EndMin    int     `bson:"endMin" json:"endMin"`     // minutes from midnight (e.g. 1020 for 5:00 PM)
	IsWorking bool    `bson:"isWorking" json:"isWorking"`
	Breaks    []Break `bson:"breaks,omitempty" json:"breaks,omitempty"`
}

// TimeOffPeriod is an approved absence covering whole dates (inclusive).
type TimeOffPeriod struct {
	StartDate string `bson:"startDate" json:"startDate"` // "YYYY-MM-DD"
	EndDate   string `bson:"endDate" json:"endDate"`     // "YYYY-MM-DD"
	Type      string `bson:"type" json:"type"`           // e.g. "vacation", "sick"
}

// Staff represents a bookable staff member. WorkingHours is keyed by
// lowercase weekday name ("monday"), which BSON map encoding requires;
// use DayKey or ScheduleFor rather than indexing directly.
type Staff struct {
	ID           string                 `bson:"id" json:"id"`
	Name         string                 `bson:"name" json:"name"`
	Skills       []string               `bson:"skills" json:"skills"`
	IsActive     bool                   `bson:"isActive" json:"isActive"`
	WorkingHours map[string]DaySchedule `bson:"workingHours" json:"workingHours"`
	TimeOff      []TimeOffPeriod        `bson:"timeOff,omitempty" json:"timeOff,omitempty"`
}

// DayKey returns the WorkingHours map key for a weekday.
func DayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// ScheduleFor looks up the recurring schedule for a weekday.
func (st Staff) ScheduleFor(d time.Weekday) (DaySchedule, bool) {
	day, ok := st.WorkingHours[DayKey(d)]
	return day, ok
}

// HasSkill reports whether the staff member holds the given skill tag.
func (st Staff) HasSkill(skill string) bool {
	for _, s := range st.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// IsAvailable is the single source of truth for structural availability:
// the member must be working that day of the week, the whole interval must
// fall within the day's hours and outside every break, and no date the
// interval touches may be covered by approved time off. Conflicts against
// other bookings are the availability calculator's concern, not the staff
// entity's.
func (st Staff) IsAvailable(start time.Time, durationMin int) bool {
	if !st.IsActive || durationMin <= 0 {
		return false
	}

	day, ok := st.ScheduleFor(start.Weekday())
	if !ok || !day.IsWorking {
		return false
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := startMin + durationMin
	if startMin < day.StartMin || endMin > day.EndMin {
		return false
	}

	// Half-open interval check against every break.
	for _, br := range day.Breaks {
		if startMin < br.EndMin && br.StartMin < endMin {
			return false
		}
	}

	return !st.isOnTimeOff(start)
}

// TimeOffTypeOn returns the type of the approved absence covering the date,
// or "" when the staff member is not off that day.
func (st Staff) TimeOffTypeOn(t time.Time) string {
	dateStr := t.Format("2006-01-02")
	for _, p := range st.TimeOff {
		if dateStr >= p.StartDate && dateStr <= p.EndDate {
			return p.Type
		}
	}
	return ""
}

func (st Staff) isOnTimeOff(t time.Time) bool {
	return st.TimeOffTypeOn(t) != ""
}
