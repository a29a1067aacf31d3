package scheduling

import (
	"context"
	"time"

	"slotwise/models"
)

// findAlternativeSlots proposes up to MaxAlternatives open slots when the
// requested time cannot be served. Customer-supplied alternative times are
// honored first, in the order given; the nearest forward slot after the
// preferred time fills the remainder.
func (s *DefaultService) findAlternativeSlots(ctx context.Context, service models.Service, roster []models.Staff, req models.BookingRequest) []models.TimeSlot {
	now := s.now()
	var alternatives []models.TimeSlot

	seen := make(map[string]bool)
	appendSlot := func(slot models.TimeSlot) {
		key := slot.StaffID + "|" + slot.StartTime.Format("2006-01-02T15:04")
		if seen[key] {
			return
		}
		seen[key] = true
		alternatives = append(alternatives, slot)
	}

	for _, t := range req.AlternativeTimes {
		if len(alternatives) >= s.settings.MaxAlternatives {
			return alternatives
		}
		if len(service.ValidateBookingTime(t, now)) > 0 {
			continue
		}
		if staff := s.Availability.GetOptimalStaffAssignment(ctx, service, roster, t); staff != nil {
			appendSlot(models.TimeSlot{
				StartTime:   t,
				EndTime:     t.Add(service.Duration()),
				IsAvailable: true,
				StaffID:     staff.ID,
			})
		}
	}

	from := req.PreferredTime
	if from.Before(now) {
		from = now
	}
	for len(alternatives) < s.settings.MaxAlternatives {
		slot := s.Availability.FindNextAvailableSlot(ctx, service, roster, from)
		if slot == nil {
			break
		}
		appendSlot(*slot)
		// Continue the scan just past the slot found so each iteration
		// yields a strictly later candidate.
		from = slot.StartTime.Add(time.Minute)
	}

	return alternatives
}
