package slotRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"voicebook/models"
	"voicebook/utils"
)

// MemorySlotRepo is a volatile Repository implementation storing slots in a
// process-local map. It is safe for concurrent access and preserves the
// compare-and-set semantics of Reserve, which makes it suitable for tests.
type MemorySlotRepo struct {
	mu    sync.Mutex
	slots map[string]*models.Slot // keyed by slot ID
}

// NewMemorySlotRepo constructs an empty in-memory slot repository.
func NewMemorySlotRepo() *MemorySlotRepo {
	return &MemorySlotRepo{slots: make(map[string]*models.Slot)}
}

func (r *MemorySlotRepo) Seed(ctx context.Context, slots []models.Slot) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := 0
	for _, slot := range slots {
		if r.findLocked(slot.Date, slot.Time) != nil {
			continue
		}
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		if slot.CreatedAt.IsZero() {
			slot.CreatedAt = time.Now().UTC()
		}
		s := slot
		r.slots[s.ID] = &s
		created++
	}
	return created, nil
}

func (r *MemorySlotRepo) Find(ctx context.Context, date, timeStr string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s := r.findLocked(date, timeStr); s != nil {
		clone := *s
		return &clone, nil
	}
	return nil, ErrNotFound
}

func (r *MemorySlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.slots[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, ErrNotFound
}

func (r *MemorySlotRepo) ListAvailable(ctx context.Context, fromDate string, now time.Time) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	nowTime := now.Format(utils.TimeLayout)
	today := now.Format(utils.DateLayout)

	var out []models.Slot
	for _, s := range r.slots {
		if !s.Available || s.Date < fromDate {
			continue
		}
		if s.Date == fromDate && fromDate == today && s.Time <= nowTime {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *MemorySlotRepo) Reserve(ctx context.Context, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[slotID]
	if !ok {
		return ErrNotFound
	}
	if !s.Available {
		return ErrUnavailable
	}
	s.Available = false
	return nil
}

func (r *MemorySlotRepo) Release(ctx context.Context, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.slots[slotID]; ok {
		s.Available = true
	}
	return nil
}

func (r *MemorySlotRepo) findLocked(date, timeStr string) *models.Slot {
	for _, s := range r.slots {
		if s.Date == date && s.Time == timeStr {
			return s
		}
	}
	return nil
}
