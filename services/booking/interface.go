package booking

import (
	"context"
	"time"

	appointmentRepo "voicebook/database/repository/appointment"
	slotRepo "voicebook/database/repository/slot"
	"voicebook/models"
	"voicebook/services/tasks"

	"go.uber.org/zap"
)

// Coordinator orchestrates atomic create/cancel/reschedule operations that
// couple one appointment to one slot. It is the only writer of appointment
// records and the only caller allowed to flip slot availability.
type Coordinator interface {
	Book(ctx context.Context, contactNumber, date, timeStr, notes string) (*models.Appointment, error)
	Cancel(ctx context.Context, contactNumber, appointmentID string) (*models.Appointment, error)
	Modify(ctx context.Context, contactNumber, appointmentID, newDate, newTime string) (*models.Appointment, error)
	ListActive(ctx context.Context, contactNumber string) ([]models.Appointment, error)
	AvailableSlots(ctx context.Context, fromDate string, now time.Time) ([]models.Slot, error)
}

// DefaultCoordinator implements Coordinator.
type DefaultCoordinator struct {
	Slots           slotRepo.Repository
	Appointments    appointmentRepo.Repository
	Reminders       *tasks.ReminderScheduler // optional, nil disables reminders
	DurationMinutes int
	Logger          *zap.Logger
}
