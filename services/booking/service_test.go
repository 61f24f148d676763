package booking

import (
	"context"
	"testing"
	"time"

	appointmentRepo "voicebook/database/repository/appointment"
	slotRepo "voicebook/database/repository/slot"
	"voicebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCoordinator(t *testing.T) (*DefaultCoordinator, *slotRepo.MemorySlotRepo, *appointmentRepo.MemoryAppointmentRepo) {
	t.Helper()
	slots := slotRepo.NewMemorySlotRepo()
	appts := appointmentRepo.NewMemoryAppointmentRepo()
	c := &DefaultCoordinator{
		Slots:           slots,
		Appointments:    appts,
		DurationMinutes: 30,
		Logger:          zap.NewNop(),
	}
	return c, slots, appts
}

func seedSlots(t *testing.T, slots *slotRepo.MemorySlotRepo, entries ...[3]string) {
	t.Helper()
	var batch []models.Slot
	for _, e := range entries {
		batch = append(batch, models.Slot{
			ID: e[0], Date: e[1], Time: e[2], DurationMinutes: 30, Available: true,
		})
	}
	_, err := slots.Seed(context.Background(), batch)
	require.NoError(t, err)
}

func TestBookReservesSlotAndCreatesAppointment(t *testing.T) {
	c, slots, _ := newTestCoordinator(t)
	seedSlots(t, slots, [3]string{"s1", "2026-01-27", "14:00"})
	ctx := context.Background()

	appt, err := c.Book(ctx, "+15551234567", "2026-01-27", "14:00", "first visit")
	require.NoError(t, err)
	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, "s1", appt.SlotID)
	assert.Equal(t, models.AppointmentScheduled, appt.Status)
	assert.Equal(t, 30, appt.DurationMinutes)
	assert.Equal(t, "first visit", appt.Notes)

	s, err := slots.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, s.Available)
}

func TestBookRequiresIdentity(t *testing.T) {
	c, slots, _ := newTestCoordinator(t)
	seedSlots(t, slots, [3]string{"s1", "2026-01-27", "14:00"})

	_, err := c.Book(context.Background(), "", "2026-01-27", "14:00", "")
	assert.Equal(t, CodeIdentityRequired, CodeOf(err))
}

func TestBookUnknownSlotIsNotFound(t *testing.T) {
	c, _, _ := newTestCoordinator(t)

	_, err := c.Book(context.Background(), "+15551234567", "2026-01-27", "18:00", "")
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestBookTakenSlotIsConflict(t *testing.T) {
	c, slots, _ := newTestCoordinator(t)
	seedSlots(t, slots, [3]string{"s1", "2026-01-27", "14:00"})
	ctx := context.Background()

	_, err := c.Book(ctx, "+15551111111", "2026-01-27", "14:00", "")
	require.NoError(t, err)

	_, err = c.Book(ctx, "+15552222222", "2026-01-27", "14:00", "")
	assert.Equal(t, CodeConflict, CodeOf(err))
}

func TestCancelReleasesSlotForRebooking(t *testing.T) {
	c, slots, _ := newTestCoordinator(t)
	seedSlots(t, slots, [3]string{"s1", "2026-01-27", "14:00"})
	ctx := context.Background()

	appt, err := c.Book(ctx, "+15551111111", "2026-01-27", "14:00", "")
	require.NoError(t, err)

	cancelled, err := c.Cancel(ctx, "+15551111111", appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, cancelled.Status)

	s, err := slots.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, s.Available)

	// Another caller books the freed slot.
	appt2, err := c.Book(ctx, "+15552222222", "2026-01-27", "14:00", "")
	require.NoError(t, err)
	assert.Equal(t, "s1", appt2.SlotID)
}

func TestCancelIsOwnerOnly(t *testing.T) {
	c, slots, _ := newTestCoordinator(t)
	seedSlots(t, slots, [3]string{"s1", "2026-01-27", "14:00"})
	ctx := context.Background()

	appt, err := c.Book(ctx, "+15551111111", "2026-01-27", "14:00", "")
	require.NoError(t, err)

	_, err = c.Cancel(ctx, "+15559999999", appt.ID)
	assert.Equal(t, CodeForbidden, CodeOf(err))

	// The appointment is untouched.
	got, err := c.Appointments.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentScheduled, got.Status)
}

func TestCancelTwiceIsNotFound(t *testing.T) {
	c, slots, _ := newTestCoordinator(t)
	seedSlots(t, slots, [3]string{"s1", "2026-01-27", "14:00"})
	ctx := context.Background()

	appt, err := c.Book(ctx, "+15551111111", "2026-01-27", "14:00", "")
	require.NoError(t, err)

	_, err = c.Cancel(ctx, "+15551111111", appt.ID)
	require.NoError(t, err)

	_, err = c.Cancel(ctx, "+15551111111", appt.ID)
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestModifySwapsSlots(t *testing.T) {
	c, slots, _ := newTestCoordinator(t)
	seedSlots(t, slots,
		[3]string{"s1", "2026-01-27", "14:00"},
		[3]string{"s2", "2026-01-28", "10:00"},
	)
	ctx := context.Background()

	appt, err := c.Book(ctx, "+15551111111", "2026-01-27", "14:00", "")
	require.NoError(t, err)

	moved, err := c.Modify(ctx, "+15551111111", appt.ID, "2026-01-28", "10:00")
	require.NoError(t, err)
	assert.Equal(t, "s2", moved.SlotID)
	assert.Equal(t, "2026-01-28", moved.Date)
	assert.Equal(t, "10:00", moved.Time)

	oldSlot, err := slots.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, oldSlot.Available)
	newSlot, err := slots.GetByID(ctx, "s2")
	require.NoError(t, err)
	assert.False(t, newSlot.Available)
}

func TestModifyToTakenSlotLeavesOriginalUntouched(t *testing.T) {
	c, slots, _ := newTestCoordinator(t)
	seedSlots(t, slots,
		[3]string{"s1", "2026-01-27", "14:00"},
		[3]string{"s2", "2026-01-28", "10:00"},
	)
	ctx := context.Background()

	appt, err := c.Book(ctx, "+15551111111", "2026-01-27", "14:00", "")
	require.NoError(t, err)
	_, err = c.Book(ctx, "+15552222222", "2026-01-28", "10:00", "")
	require.NoError(t, err)

	_, err = c.Modify(ctx, "+15551111111", appt.ID, "2026-01-28", "10:00")
	assert.Equal(t, CodeConflict, CodeOf(err))

	got, err := c.Appointments.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-27", got.Date)
	assert.Equal(t, "14:00", got.Time)
	assert.Equal(t, "s1", got.SlotID)

	oldSlot, err := slots.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, oldSlot.Available)
}

func TestModifyToSameSlotIsNoOp(t *testing.T) {
	c, slots, _ := newTestCoordinator(t)
	seedSlots(t, slots, [3]string{"s1", "2026-01-27", "14:00"})
	ctx := context.Background()

	appt, err := c.Book(ctx, "+15551111111", "2026-01-27", "14:00", "")
	require.NoError(t, err)

	same, err := c.Modify(ctx, "+15551111111", appt.ID, "2026-01-27", "14:00")
	require.NoError(t, err)
	assert.Equal(t, "s1", same.SlotID)
}

func TestListActiveExcludesCancelled(t *testing.T) {
	c, slots, _ := newTestCoordinator(t)
	seedSlots(t, slots,
		[3]string{"s1", "2026-01-27", "14:00"},
		[3]string{"s2", "2026-01-28", "10:00"},
	)
	ctx := context.Background()

	a1, err := c.Book(ctx, "+15551111111", "2026-01-27", "14:00", "")
	require.NoError(t, err)
	_, err = c.Book(ctx, "+15551111111", "2026-01-28", "10:00", "")
	require.NoError(t, err)

	_, err = c.Cancel(ctx, "+15551111111", a1.ID)
	require.NoError(t, err)

	active, err := c.ListActive(ctx, "+15551111111")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "2026-01-28", active[0].Date)
}

func TestAvailableSlotsReflectsLiveState(t *testing.T) {
	c, slots, _ := newTestCoordinator(t)
	seedSlots(t, slots,
		[3]string{"s1", "2026-01-27", "14:00"},
		[3]string{"s2", "2026-01-27", "15:00"},
	)
	ctx := context.Background()
	now := time.Date(2026, 1, 26, 9, 0, 0, 0, time.UTC)

	_, err := c.Book(ctx, "+15551111111", "2026-01-27", "14:00", "")
	require.NoError(t, err)

	open, err := c.AvailableSlots(ctx, "2026-01-26", now)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "s2", open[0].ID)
}
