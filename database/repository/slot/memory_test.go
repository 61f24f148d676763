package slotRepo

import (
	"context"
	"sync"
	"testing"
	"time"

	"voicebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOne(t *testing.T, repo *MemorySlotRepo, id, date, timeStr string) {
	t.Helper()
	_, err := repo.Seed(context.Background(), []models.Slot{{
		ID: id, Date: date, Time: timeStr, DurationMinutes: 30, Available: true,
	}})
	require.NoError(t, err)
}

func TestSeedSkipsExistingPairs(t *testing.T) {
	repo := NewMemorySlotRepo()
	ctx := context.Background()

	created, err := repo.Seed(ctx, []models.Slot{
		{ID: "a", Date: "2026-01-27", Time: "09:00", Available: true},
		{ID: "b", Date: "2026-01-27", Time: "10:00", Available: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	// Reserving then re-seeding must not reset availability.
	require.NoError(t, repo.Reserve(ctx, "a"))
	created, err = repo.Seed(ctx, []models.Slot{
		{ID: "c", Date: "2026-01-27", Time: "09:00", Available: true},
		{ID: "d", Date: "2026-01-27", Time: "11:00", Available: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	s, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.False(t, s.Available)
}

func TestReserveSingleWinnerUnderContention(t *testing.T) {
	repo := NewMemorySlotRepo()
	seedOne(t, repo, "s1", "2026-01-27", "14:00")

	const callers = 50
	var wg sync.WaitGroup
	wins := make(chan struct{}, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Reserve(context.Background(), "s1"); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	assert.Len(t, wins, 1)
}

func TestReserveErrors(t *testing.T) {
	repo := NewMemorySlotRepo()
	seedOne(t, repo, "s1", "2026-01-27", "14:00")
	ctx := context.Background()

	assert.ErrorIs(t, repo.Reserve(ctx, "missing"), ErrNotFound)

	require.NoError(t, repo.Reserve(ctx, "s1"))
	assert.ErrorIs(t, repo.Reserve(ctx, "s1"), ErrUnavailable)
}

func TestReleaseIsIdempotent(t *testing.T) {
	repo := NewMemorySlotRepo()
	seedOne(t, repo, "s1", "2026-01-27", "14:00")
	ctx := context.Background()

	require.NoError(t, repo.Reserve(ctx, "s1"))
	require.NoError(t, repo.Release(ctx, "s1"))
	require.NoError(t, repo.Release(ctx, "s1"))
	require.NoError(t, repo.Release(ctx, "missing"))

	s, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, s.Available)

	// Released slots can be reserved again.
	assert.NoError(t, repo.Reserve(ctx, "s1"))
}

func TestListAvailableOrderingAndFiltering(t *testing.T) {
	repo := NewMemorySlotRepo()
	ctx := context.Background()

	seedOne(t, repo, "a", "2026-01-28", "09:00")
	seedOne(t, repo, "b", "2026-01-27", "15:00")
	seedOne(t, repo, "c", "2026-01-27", "10:00")
	seedOne(t, repo, "d", "2026-01-26", "16:00") // before window
	seedOne(t, repo, "e", "2026-01-27", "14:00")
	require.NoError(t, repo.Reserve(ctx, "e")) // held, must not appear

	// 11:30 on the 27th: the 10:00 slot that day has passed.
	now := time.Date(2026, 1, 27, 11, 30, 0, 0, time.UTC)
	slots, err := repo.ListAvailable(ctx, "2026-01-27", now)
	require.NoError(t, err)

	ids := make([]string, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"b", "a"}, ids)
}

func TestFindByDateTime(t *testing.T) {
	repo := NewMemorySlotRepo()
	seedOne(t, repo, "s1", "2026-01-27", "14:00")
	ctx := context.Background()

	s, err := repo.Find(ctx, "2026-01-27", "14:00")
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)

	_, err = repo.Find(ctx, "2026-01-27", "18:00")
	assert.ErrorIs(t, err, ErrNotFound)
}
