package availability

import (
	"context"
	"testing"
	"time"

	bookingRepo "slotwise/database/repository/booking"
	"slotwise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func fullWeekStaff(id string, skills ...string) models.Staff {
	hours := make(map[string]models.DaySchedule)
	for d := time.Sunday; d <= time.Saturday; d++ {
		hours[models.DayKey(d)] = models.DaySchedule{StartMin: 540, EndMin: 1020, IsWorking: true}
	}
	return models.Staff{ID: id, IsActive: true, Skills: skills, WorkingHours: hours}
}

func TestIntervalOverlaps(t *testing.T) {
	iv := Interval{
		Start: monday.Add(10 * time.Hour),
		End:   monday.Add(11 * time.Hour),
	}

	assert.True(t, iv.Overlaps(monday.Add(10*time.Hour+30*time.Minute), monday.Add(12*time.Hour)))
	assert.True(t, iv.Overlaps(monday.Add(9*time.Hour), monday.Add(10*time.Hour+1*time.Minute)))
	// Half-open: touching boundaries do not overlap.
	assert.False(t, iv.Overlaps(monday.Add(11*time.Hour), monday.Add(12*time.Hour)))
	assert.False(t, iv.Overlaps(monday.Add(9*time.Hour), monday.Add(10*time.Hour)))
}

func TestIndexIdempotence(t *testing.T) {
	c := NewCalculator(15 * time.Minute)
	start := monday.Add(10 * time.Hour)
	end := start.Add(time.Hour)

	c.AddAppointment("s1", start, end)
	c.AddAppointment("s1", start, end) // replay is a no-op
	assert.Len(t, c.index.snapshot("s1"), 1)

	c.RemoveAppointment("s1", start, end)
	assert.Empty(t, c.index.snapshot("s1"))

	// Removing again, or removing something never added, is a no-op.
	c.RemoveAppointment("s1", start, end)
	c.RemoveAppointment("s1", start.Add(time.Hour), end.Add(time.Hour))
	assert.Empty(t, c.index.snapshot("s1"))
}

func TestIndexGenerationBumpsOnMutation(t *testing.T) {
	c := NewCalculator(15 * time.Minute)
	start := monday.Add(10 * time.Hour)

	before := c.index.generation("s1")
	c.AddAppointment("s1", start, start.Add(time.Hour))
	assert.Greater(t, c.index.generation("s1"), before)

	afterAdd := c.index.generation("s1")
	c.AddAppointment("s1", start, start.Add(time.Hour)) // no-op does not bump
	assert.Equal(t, afterAdd, c.index.generation("s1"))

	c.RemoveAppointment("s1", start, start.Add(time.Hour))
	assert.Greater(t, c.index.generation("s1"), afterAdd)
}

func TestCheckConflicts(t *testing.T) {
	c := NewCalculator(15 * time.Minute)
	staff := fullWeekStaff("s1", "cut")
	staff.WorkingHours[models.DayKey(time.Monday)] = models.DaySchedule{
		StartMin: 540, EndMin: 1020, IsWorking: true,
		Breaks: []models.Break{{StartMin: 720, EndMin: 780, Label: "lunch"}},
	}

	c.AddAppointment("s1", monday.Add(10*time.Hour), monday.Add(11*time.Hour))

	t.Run("booking conflict", func(t *testing.T) {
		conflicts := c.CheckConflicts(staff, monday.Add(10*time.Hour+30*time.Minute), monday.Add(11*time.Hour+30*time.Minute))
		require.Len(t, conflicts, 1)
		assert.Equal(t, models.ConflictBooking, conflicts[0].Kind)
	})

	t.Run("adjacent interval is clear", func(t *testing.T) {
		assert.Empty(t, c.CheckConflicts(staff, monday.Add(11*time.Hour), monday.Add(11*time.Hour+30*time.Minute)))
	})

	t.Run("break conflict", func(t *testing.T) {
		conflicts := c.CheckConflicts(staff, monday.Add(12*time.Hour+15*time.Minute), monday.Add(12*time.Hour+45*time.Minute))
		require.Len(t, conflicts, 1)
		assert.Equal(t, models.ConflictBreak, conflicts[0].Kind)
		assert.Equal(t, "lunch", conflicts[0].Detail)
	})

	t.Run("time off conflict", func(t *testing.T) {
		off := staff
		off.TimeOff = []models.TimeOffPeriod{{StartDate: "2026-09-07", EndDate: "2026-09-07", Type: "vacation"}}
		conflicts := c.CheckConflicts(off, monday.Add(15*time.Hour), monday.Add(15*time.Hour+30*time.Minute))
		require.Len(t, conflicts, 1)
		assert.Equal(t, models.ConflictTimeOff, conflicts[0].Kind)
		assert.Equal(t, "vacation", conflicts[0].Detail)
	})
}

func TestCalculateAvailability(t *testing.T) {
	c := NewCalculator(30 * time.Minute)
	staff := fullWeekStaff("s1", "cut")
	service := models.Service{
		ID: "haircut", DurationMin: 30, BufferBeforeMin: 5, BufferAfterMin: 5,
		RequiredSkills: []string{"cut"}, IsActive: true,
	}

	// An existing booking reserving 10:00-11:00.
	c.AddAppointment("s1", monday.Add(10*time.Hour), monday.Add(11*time.Hour))

	slots, err := c.CalculateAvailability(context.Background(), service, staff, monday)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	// First candidate reserved interval starts at 9:00; the customer-facing
	// start follows the 5 minute prep buffer.
	assert.Equal(t, monday.Add(9*time.Hour+5*time.Minute), slots[0].StartTime)
	assert.Equal(t, monday.Add(9*time.Hour+35*time.Minute), slots[0].EndTime)
	assert.True(t, slots[0].IsAvailable)

	byStart := make(map[time.Time]models.TimeSlot, len(slots))
	for _, slot := range slots {
		byStart[slot.StartTime] = slot
	}

	// Reserved 10:00-10:40 collides with the 10:00-11:00 booking.
	blocked, ok := byStart[monday.Add(10*time.Hour+5*time.Minute)]
	require.True(t, ok)
	assert.False(t, blocked.IsAvailable)
	assert.Equal(t, models.ReasonBooked, blocked.Reason)

	// Reserved 11:00-11:40 touches the booking end only; half-open, so free.
	clear, ok := byStart[monday.Add(11*time.Hour+5*time.Minute)]
	require.True(t, ok)
	assert.True(t, clear.IsAvailable)
}

func TestCalculateAvailabilityNonWorkingDay(t *testing.T) {
	c := NewCalculator(15 * time.Minute)
	staff := models.Staff{
		ID: "s1", IsActive: true,
		WorkingHours: map[string]models.DaySchedule{
			models.DayKey(time.Monday): {StartMin: 540, EndMin: 1020, IsWorking: true},
		},
	}
	service := models.Service{ID: "haircut", DurationMin: 30, IsActive: true}

	sunday := monday.AddDate(0, 0, -1)
	slots, err := c.CalculateAvailability(context.Background(), service, staff, sunday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestCalculateAvailabilityTimeOffDay(t *testing.T) {
	c := NewCalculator(30 * time.Minute)
	staff := fullWeekStaff("s1")
	staff.TimeOff = []models.TimeOffPeriod{{StartDate: "2026-09-07", EndDate: "2026-09-07", Type: "sick"}}
	service := models.Service{ID: "haircut", DurationMin: 30, IsActive: true}

	slots, err := c.CalculateAvailability(context.Background(), service, staff, monday)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	for _, slot := range slots {
		assert.False(t, slot.IsAvailable)
		assert.Equal(t, "sick", slot.Reason)
	}
}

func TestGetOptimalStaffAssignment(t *testing.T) {
	service := models.Service{
		ID: "haircut", DurationMin: 30, RequiredSkills: []string{"cut"}, IsActive: true,
	}
	at := monday.Add(10 * time.Hour)

	t.Run("skips unqualified and busy staff", func(t *testing.T) {
		c := NewCalculator(15 * time.Minute)
		busy := fullWeekStaff("a-busy", "cut")
		free := fullWeekStaff("b-free", "cut")
		unqualified := fullWeekStaff("c-unqualified", "color")

		c.AddAppointment(busy.ID, at, at.Add(time.Hour))

		picked := c.GetOptimalStaffAssignment(context.Background(), service, []models.Staff{busy, free, unqualified}, at)
		require.NotNil(t, picked)
		assert.Equal(t, "b-free", picked.ID)
	})

	t.Run("equal score prefers lower utilization", func(t *testing.T) {
		c := NewCalculator(15 * time.Minute)
		a := fullWeekStaff("a", "cut")
		b := fullWeekStaff("b", "cut")

		// a already has one booking today, elsewhere in the day.
		c.AddAppointment("a", monday.Add(14*time.Hour), monday.Add(15*time.Hour))

		picked := c.GetOptimalStaffAssignment(context.Background(), service, []models.Staff{a, b}, at)
		require.NotNil(t, picked)
		assert.Equal(t, "b", picked.ID)
	})

	t.Run("full tie falls to smaller id", func(t *testing.T) {
		c := NewCalculator(15 * time.Minute)
		a := fullWeekStaff("a", "cut")
		b := fullWeekStaff("b", "cut")

		picked := c.GetOptimalStaffAssignment(context.Background(), service, []models.Staff{b, a}, at)
		require.NotNil(t, picked)
		assert.Equal(t, "a", picked.ID)
	})

	t.Run("nobody qualified", func(t *testing.T) {
		c := NewCalculator(15 * time.Minute)
		picked := c.GetOptimalStaffAssignment(context.Background(), service, []models.Staff{fullWeekStaff("a", "color")}, at)
		assert.Nil(t, picked)
	})
}

func TestFindNextAvailableSlot(t *testing.T) {
	service := models.Service{
		ID: "haircut", DurationMin: 30, BufferBeforeMin: 5, BufferAfterMin: 5,
		RequiredSkills: []string{"cut"}, IsActive: true,
	}

	t.Run("skips committed intervals", func(t *testing.T) {
		c := NewCalculator(15 * time.Minute)
		staff := fullWeekStaff("s1", "cut")

		// The whole morning is booked solid: 9:00 through 12:00.
		c.AddAppointment("s1", monday.Add(9*time.Hour), monday.Add(12*time.Hour))

		slot := c.FindNextAvailableSlot(context.Background(), service, []models.Staff{staff}, monday.Add(9*time.Hour))
		require.NotNil(t, slot)
		// First reserved interval clear of the block starts at 12:00.
		assert.Equal(t, monday.Add(12*time.Hour+5*time.Minute), slot.StartTime)
		assert.Equal(t, "s1", slot.StaffID)
	})

	t.Run("rolls to the next working day", func(t *testing.T) {
		c := NewCalculator(15 * time.Minute)
		staff := models.Staff{
			ID: "s1", IsActive: true, Skills: []string{"cut"},
			WorkingHours: map[string]models.DaySchedule{
				models.DayKey(time.Monday):  {StartMin: 540, EndMin: 1020, IsWorking: true},
				models.DayKey(time.Tuesday): {StartMin: 540, EndMin: 1020, IsWorking: true},
			},
		}

		// Search from after Monday close.
		from := monday.Add(17 * time.Hour)
		slot := c.FindNextAvailableSlot(context.Background(), service, []models.Staff{staff}, from)
		require.NotNil(t, slot)
		tuesday := monday.AddDate(0, 0, 1)
		assert.Equal(t, tuesday.Add(9*time.Hour+5*time.Minute), slot.StartTime)
	})

	t.Run("earliest start wins across staff", func(t *testing.T) {
		c := NewCalculator(15 * time.Minute)
		early := models.Staff{
			ID: "early", IsActive: true, Skills: []string{"cut"},
			WorkingHours: map[string]models.DaySchedule{
				models.DayKey(time.Monday): {StartMin: 480, EndMin: 1020, IsWorking: true}, // opens 8:00
			},
		}
		late := fullWeekStaff("a-late", "cut") // opens 9:00, smaller id

		slot := c.FindNextAvailableSlot(context.Background(), service, []models.Staff{late, early}, monday)
		require.NotNil(t, slot)
		assert.Equal(t, "early", slot.StaffID)
		assert.Equal(t, monday.Add(8*time.Hour+5*time.Minute), slot.StartTime)
	})

	t.Run("no qualified staff", func(t *testing.T) {
		c := NewCalculator(15 * time.Minute)
		slot := c.FindNextAvailableSlot(context.Background(), service, []models.Staff{fullWeekStaff("s1", "color")}, monday)
		assert.Nil(t, slot)
	})
}

func TestLoadCommitted(t *testing.T) {
	ctx := context.Background()
	repo := bookingRepo.NewMemoryBookingRepo()

	start := monday.Add(10 * time.Hour)
	require.NoError(t, repo.Create(ctx, &models.Booking{
		ID: "b1", StaffID: "s1", Status: models.StatusConfirmed,
		StartTime: start, EndTime: start.Add(30 * time.Minute),
		BufferBeforeMin: 5, BufferAfterMin: 5,
	}))
	require.NoError(t, repo.Create(ctx, &models.Booking{
		ID: "b2", StaffID: "s1", Status: models.StatusCancelled,
		StartTime: start.Add(2 * time.Hour), EndTime: start.Add(2*time.Hour + 30*time.Minute),
	}))

	c := NewCalculator(15 * time.Minute)
	require.NoError(t, c.LoadCommitted(ctx, repo))

	// Only the live booking is indexed, with buffers included.
	ivs := c.index.snapshot("s1")
	require.Len(t, ivs, 1)
	assert.Equal(t, start.Add(-5*time.Minute), ivs[0].Start)
	assert.Equal(t, start.Add(35*time.Minute), ivs[0].End)
}
