package slotRepo

import (
	"context"
	"errors"
	"time"

	"voicebook/models"
)

// Sentinel errors returned by slot repositories.
var (
	// ErrNotFound indicates no slot exists for the given key.
	ErrNotFound = errors.New("slot not found")
	// ErrUnavailable indicates the conditional reserve lost: the slot was
	// already held when the compare-and-set ran.
	ErrUnavailable = errors.New("slot unavailable")
)

// Repository owns the slot catalogue and its availability flags. Reserve is
// the single defense against double-booking and must be a conditional write,
// never read-then-write.
type Repository interface {
	// Seed inserts the given slots, skipping any (date, time) pair that
	// already exists. Returns the number of slots actually created.
	Seed(ctx context.Context, slots []models.Slot) (int, error)

	// Find returns the slot at (date, time) or ErrNotFound.
	Find(ctx context.Context, date, timeStr string) (*models.Slot, error)

	// GetByID returns the slot with the given ID or ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Slot, error)

	// ListAvailable returns all available slots with date >= fromDate,
	// excluding slots on fromDate whose time has already passed relative to
	// now. Ordered ascending by (date, time); reflects live state.
	ListAvailable(ctx context.Context, fromDate string, now time.Time) ([]models.Slot, error)

	// Reserve atomically flips is_available true -> false. Returns
	// ErrUnavailable when the flag was already false.
	Reserve(ctx context.Context, slotID string) error

	// Release sets is_available back to true. Idempotent.
	Release(ctx context.Context, slotID string) error
}
