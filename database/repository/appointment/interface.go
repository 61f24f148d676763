package appointmentRepo

import (
	"context"
	"errors"

	"voicebook/models"
)

// ErrNotFound indicates no appointment exists with the given ID.
var ErrNotFound = errors.New("appointment not found")

// Repository stores appointment records. Appointments are never physically
// removed; cancellation is a status write.
type Repository interface {
	// Insert stores a new appointment.
	Insert(ctx context.Context, appt *models.Appointment) error

	// GetByID returns the appointment with the given ID or ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)

	// ListActiveByContact returns the scheduled appointments for a contact,
	// ordered ascending by (date, time).
	ListActiveByContact(ctx context.Context, contactNumber string) ([]models.Appointment, error)

	// CountScheduledAt counts scheduled appointments at (date, time),
	// excluding the given appointment ID when non-empty. Backs the
	// uniqueness re-check that runs after a reservation commits.
	CountScheduledAt(ctx context.Context, date, timeStr, excludeID string) (int64, error)

	// SetStatus writes the status of an appointment.
	SetStatus(ctx context.Context, id, status string) error

	// Reslot moves an appointment to a new slot in place.
	Reslot(ctx context.Context, id, slotID, date, timeStr string) error
}
