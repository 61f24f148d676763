package appointmentRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"voicebook/models"
)

// MemoryAppointmentRepo is a volatile Repository implementation for tests.
type MemoryAppointmentRepo struct {
	mu    sync.Mutex
	appts map[string]*models.Appointment
}

// NewMemoryAppointmentRepo constructs an empty in-memory appointment repository.
func NewMemoryAppointmentRepo() *MemoryAppointmentRepo {
	return &MemoryAppointmentRepo{appts: make(map[string]*models.Appointment)}
}

func (r *MemoryAppointmentRepo) Insert(ctx context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	clone := *appt
	r.appts[clone.ID] = &clone
	return nil
}

func (r *MemoryAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.appts[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, ErrNotFound
}

func (r *MemoryAppointmentRepo) ListActiveByContact(ctx context.Context, contactNumber string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, a := range r.appts {
		if a.ContactNumber == contactNumber && a.Status == models.AppointmentScheduled {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *MemoryAppointmentRepo) CountScheduledAt(ctx context.Context, date, timeStr, excludeID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, a := range r.appts {
		if a.Status != models.AppointmentScheduled || a.Date != date || a.Time != timeStr {
			continue
		}
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		n++
	}
	return n, nil
}

func (r *MemoryAppointmentRepo) SetStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appts[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryAppointmentRepo) Reslot(ctx context.Context, id, slotID, date, timeStr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appts[id]
	if !ok {
		return ErrNotFound
	}
	a.SlotID = slotID
	a.Date = date
	a.Time = timeStr
	a.UpdatedAt = time.Now().UTC()
	return nil
}
