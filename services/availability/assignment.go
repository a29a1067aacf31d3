package availability

import (
	"context"
	"time"

	"slotwise/models"
	"slotwise/services/matching"
)

// FreeAt reports whether the staff member can take the service at the
// customer-facing start time: structurally available for the whole
// reserved interval (buffers included) and clear of committed bookings.
func (c *DefaultCalculator) FreeAt(service models.Service, staff models.Staff, start time.Time) bool {
	reservedStart := start.Add(-time.Duration(service.BufferBeforeMin) * time.Minute)
	reservedEnd := reservedStart.Add(service.TotalDuration())

	if !staff.IsAvailable(reservedStart, service.TotalDurationMin()) {
		return false
	}
	return len(c.index.overlapping(staff.ID, reservedStart, reservedEnd)) == 0
}

// GetOptimalStaffAssignment picks, among staff holding every required skill
// and free at preferredTime for the service's total duration, the best
// candidate. The tie-break is deterministic and documented: highest skill
// match score, then lowest same-day utilization, then smallest staff id.
func (c *DefaultCalculator) GetOptimalStaffAssignment(_ context.Context, service models.Service, roster []models.Staff, preferredTime time.Time) *models.Staff {
	var (
		best      *models.Staff
		bestScore float64
		bestUtil  int
	)

	for i := range roster {
		staff := roster[i]
		match := matching.Score(staff, service, matching.Options{})
		if !match.HasAllRequiredSkills {
			continue
		}
		if !c.FreeAt(service, staff, preferredTime) {
			continue
		}

		util := c.index.countOn(staff.ID, preferredTime)
		switch {
		case best == nil,
			match.MatchScore > bestScore,
			match.MatchScore == bestScore && util < bestUtil,
			match.MatchScore == bestScore && util == bestUtil && staff.ID < best.ID:
			best = &roster[i]
			bestScore = match.MatchScore
			bestUtil = util
		}
	}
	return best
}

// FindNextAvailableSlot scans forward from fromTime, day by day up to the
// horizon, across every qualified staff member, and returns the earliest
// open slot of sufficient total duration. Earlier start wins; at equal
// start the higher match score, then the smaller staff id.
func (c *DefaultCalculator) FindNextAvailableSlot(_ context.Context, service models.Service, roster []models.Staff, fromTime time.Time) *models.TimeSlot {
	type candidate struct {
		staff models.Staff
		score float64
	}
	var qualified []candidate
	for _, staff := range roster {
		match := matching.Score(staff, service, matching.Options{})
		if match.HasAllRequiredSkills {
			qualified = append(qualified, candidate{staff: staff, score: match.MatchScore})
		}
	}
	if len(qualified) == 0 {
		return nil
	}

	bufferBefore := time.Duration(service.BufferBeforeMin) * time.Minute
	total := service.TotalDuration()

	var (
		best      *models.TimeSlot
		bestScore float64
	)
	for dayOffset := 0; dayOffset <= c.horizonDays; dayOffset++ {
		day := midnight(fromTime).AddDate(0, 0, dayOffset)

		for _, cand := range qualified {
			schedule, ok := cand.staff.ScheduleFor(day.Weekday())
			if !ok || !schedule.IsWorking {
				continue
			}
			workStart := day.Add(time.Duration(schedule.StartMin) * time.Minute)
			workEnd := day.Add(time.Duration(schedule.EndMin) * time.Minute)

			for t := workStart; !t.Add(total).After(workEnd); t = t.Add(c.granularity) {
				start := t.Add(bufferBefore)
				if start.Before(fromTime) {
					continue
				}
				if best != nil && start.After(best.StartTime) {
					break
				}
				if !c.FreeAt(service, cand.staff, start) {
					continue
				}

				better := best == nil ||
					start.Before(best.StartTime) ||
					(start.Equal(best.StartTime) && cand.score > bestScore) ||
					(start.Equal(best.StartTime) && cand.score == bestScore && cand.staff.ID < best.StaffID)
				if better {
					best = &models.TimeSlot{
						StartTime:   start,
						EndTime:     start.Add(service.Duration()),
						IsAvailable: true,
						StaffID:     cand.staff.ID,
					}
					bestScore = cand.score
				}
				break // earliest open slot for this staff member today
			}
		}

		// Slots later in the scan can only start later; once a day yields a
		// hit, no following day can beat it.
		if best != nil {
			return best
		}
	}
	return best
}
