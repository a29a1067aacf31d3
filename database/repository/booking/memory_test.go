package bookingRepo

import (
	"context"
	"testing"
	"time"

	"slotwise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRepo(t *testing.T) (*MemoryBookingRepo, context.Context) {
	t.Helper()
	ctx := context.Background()
	repo := NewMemoryBookingRepo()

	base := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		{ID: "b1", StaffID: "alice", CustomerID: "c1", Status: models.StatusConfirmed, StartTime: base},
		{ID: "b2", StaffID: "alice", CustomerID: "c2", Status: models.StatusPending, StartTime: base.Add(2 * time.Hour)},
		{ID: "b3", StaffID: "bob", CustomerID: "c1", Status: models.StatusCancelled, StartTime: base.Add(4 * time.Hour)},
	}
	for i := range bookings {
		require.NoError(t, repo.Create(ctx, &bookings[i]))
	}
	return repo, ctx
}

func TestMemoryRepoGetByID(t *testing.T) {
	repo, ctx := seedRepo(t)

	b, err := repo.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "alice", b.StaffID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepoListFilters(t *testing.T) {
	repo, ctx := seedRepo(t)
	base := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)

	t.Run("by staff", func(t *testing.T) {
		out, err := repo.List(ctx, Filter{StaffID: "alice"})
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("by status", func(t *testing.T) {
		out, err := repo.List(ctx, Filter{Status: models.StatusConfirmed})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "b1", out[0].ID)
	})

	t.Run("by window", func(t *testing.T) {
		// From is inclusive, To exclusive.
		out, err := repo.List(ctx, Filter{From: base, To: base.Add(2 * time.Hour)})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "b1", out[0].ID)
	})

	t.Run("sorted by start time", func(t *testing.T) {
		out, err := repo.List(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, []string{"b1", "b2", "b3"}, []string{out[0].ID, out[1].ID, out[2].ID})
	})
}

func TestMemoryRepoListCommitted(t *testing.T) {
	repo, ctx := seedRepo(t)

	out, err := repo.ListCommitted(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2) // the cancelled booking is excluded
	for _, b := range out {
		assert.False(t, b.IsTerminal())
	}
}

func TestMemoryRepoUpdate(t *testing.T) {
	repo, ctx := seedRepo(t)

	b, err := repo.GetByID(ctx, "b2")
	require.NoError(t, err)
	b.Status = models.StatusConfirmed
	require.NoError(t, repo.Update(ctx, b))

	got, err := repo.GetByID(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, got.Status)

	assert.ErrorIs(t, repo.Update(ctx, &models.Booking{ID: "missing"}), ErrNotFound)
}

func TestMemoryRepoClonesReminderState(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepo()

	b := models.Booking{ID: "b1", Status: models.StatusConfirmed,
		RemindersSent: map[models.ReminderKind]bool{models.Reminder24h: true}}
	require.NoError(t, repo.Create(ctx, &b))

	got, err := repo.GetByID(ctx, "b1")
	require.NoError(t, err)
	got.RemindersSent[models.Reminder2h] = true

	// Mutating the returned copy must not leak into the store.
	fresh, err := repo.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.False(t, fresh.ReminderSent(models.Reminder2h))
	assert.True(t, fresh.ReminderSent(models.Reminder24h))
}
