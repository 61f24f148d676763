package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "voicebook/database/repository/appointment"
	slotRepo "voicebook/database/repository/slot"
	"voicebook/models"
	"voicebook/utils"

	"go.uber.org/zap"
)

func (c *DefaultCoordinator) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return utils.GetLogger()
}

// Book reserves the slot at (date, time) and creates a scheduled appointment
// for it. Either both writes happen or neither does: a failure after the
// reservation rolls the reservation back before returning.
func (c *DefaultCoordinator) Book(ctx context.Context, contactNumber, date, timeStr, notes string) (*models.Appointment, error) {
	if contactNumber == "" {
		return nil, NewIdentityRequiredError()
	}

	slot, err := c.Slots.Find(ctx, date, timeStr)
	if errors.Is(err, slotRepo.ErrNotFound) {
		return nil, NewNotFoundError(fmt.Sprintf("no slot exists at %s %s", date, timeStr))
	}
	if err != nil {
		return nil, NewStorageError(err)
	}

	// The reservation is the race arbiter: losers get a conflict and the
	// caller re-offers alternative slots. Not retried here.
	if err := c.Slots.Reserve(ctx, slot.ID); err != nil {
		if errors.Is(err, slotRepo.ErrUnavailable) {
			return nil, NewConflictError(fmt.Sprintf("slot %s %s was just taken", date, timeStr))
		}
		if errors.Is(err, slotRepo.ErrNotFound) {
			return nil, NewNotFoundError(fmt.Sprintf("no slot exists at %s %s", date, timeStr))
		}
		return nil, NewStorageError(err)
	}

	// Re-check (date, time) uniqueness: a parallel insert can race past the
	// reservation on a different slot row carrying the same pair.
	count, err := c.Appointments.CountScheduledAt(ctx, date, timeStr, "")
	if err != nil {
		c.rollbackReservation(ctx, slot.ID)
		return nil, NewStorageError(err)
	}
	if count > 0 {
		c.rollbackReservation(ctx, slot.ID)
		return nil, NewConflictError(fmt.Sprintf("an appointment already exists at %s %s", date, timeStr))
	}

	appt := &models.Appointment{
		ContactNumber:   contactNumber,
		SlotID:          slot.ID,
		Date:            date,
		Time:            timeStr,
		DurationMinutes: c.duration(slot),
		Status:          models.AppointmentScheduled,
		Notes:           notes,
	}
	if err := c.Appointments.Insert(ctx, appt); err != nil {
		c.rollbackReservation(ctx, slot.ID)
		return nil, NewStorageError(err)
	}

	c.scheduleReminder(*appt)

	c.logger().Info("appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("slotId", slot.ID),
		zap.String("date", date),
		zap.String("time", timeStr),
	)
	return appt, nil
}

// Cancel writes status=cancelled and then releases the slot. The status write
// comes first so a concurrent reader never sees an available slot still
// claimed by a scheduled appointment.
func (c *DefaultCoordinator) Cancel(ctx context.Context, contactNumber, appointmentID string) (*models.Appointment, error) {
	if contactNumber == "" {
		return nil, NewIdentityRequiredError()
	}

	appt, err := c.resolveOwned(ctx, contactNumber, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := c.Appointments.SetStatus(ctx, appt.ID, models.AppointmentCancelled); err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, NewNotFoundError("appointment not found")
		}
		return nil, NewStorageError(err)
	}
	if err := c.Slots.Release(ctx, appt.SlotID); err != nil {
		return nil, NewStorageError(err)
	}

	appt.Status = models.AppointmentCancelled
	c.logger().Info("appointment cancelled",
		zap.String("appointmentId", appt.ID),
		zap.String("slotId", appt.SlotID),
	)
	return appt, nil
}

// Modify atomically swaps an appointment to a new slot. The new slot is
// reserved before anything else changes, so a failed reservation leaves the
// original appointment and its slot untouched.
func (c *DefaultCoordinator) Modify(ctx context.Context, contactNumber, appointmentID, newDate, newTime string) (*models.Appointment, error) {
	if contactNumber == "" {
		return nil, NewIdentityRequiredError()
	}

	appt, err := c.resolveOwned(ctx, contactNumber, appointmentID)
	if err != nil {
		return nil, err
	}

	newSlot, err := c.Slots.Find(ctx, newDate, newTime)
	if errors.Is(err, slotRepo.ErrNotFound) {
		return nil, NewNotFoundError(fmt.Sprintf("no slot exists at %s %s", newDate, newTime))
	}
	if err != nil {
		return nil, NewStorageError(err)
	}
	if newSlot.ID == appt.SlotID {
		return appt, nil
	}

	if err := c.Slots.Reserve(ctx, newSlot.ID); err != nil {
		if errors.Is(err, slotRepo.ErrUnavailable) {
			return nil, NewConflictError(fmt.Sprintf("slot %s %s is already booked", newDate, newTime))
		}
		return nil, NewStorageError(err)
	}

	oldSlotID := appt.SlotID
	if err := c.Appointments.Reslot(ctx, appt.ID, newSlot.ID, newDate, newTime); err != nil {
		c.rollbackReservation(ctx, newSlot.ID)
		return nil, NewStorageError(err)
	}
	if err := c.Slots.Release(ctx, oldSlotID); err != nil {
		return nil, NewStorageError(err)
	}

	appt.SlotID = newSlot.ID
	appt.Date = newDate
	appt.Time = newTime

	c.scheduleReminder(*appt)

	c.logger().Info("appointment rescheduled",
		zap.String("appointmentId", appt.ID),
		zap.String("oldSlotId", oldSlotID),
		zap.String("newSlotId", newSlot.ID),
	)
	return appt, nil
}

// ListActive returns the contact's scheduled appointments ordered by
// (date, time) ascending.
func (c *DefaultCoordinator) ListActive(ctx context.Context, contactNumber string) ([]models.Appointment, error) {
	if contactNumber == "" {
		return nil, NewIdentityRequiredError()
	}
	appts, err := c.Appointments.ListActiveByContact(ctx, contactNumber)
	if err != nil {
		return nil, NewStorageError(err)
	}
	return appts, nil
}

// AvailableSlots lists bookable slots from fromDate onwards, live state.
func (c *DefaultCoordinator) AvailableSlots(ctx context.Context, fromDate string, now time.Time) ([]models.Slot, error) {
	slots, err := c.Slots.ListAvailable(ctx, fromDate, now)
	if err != nil {
		return nil, NewStorageError(err)
	}
	return slots, nil
}

func (c *DefaultCoordinator) resolveOwned(ctx context.Context, contactNumber, appointmentID string) (*models.Appointment, error) {
	appt, err := c.Appointments.GetByID(ctx, appointmentID)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, NewNotFoundError("appointment not found")
	}
	if err != nil {
		return nil, NewStorageError(err)
	}
	if appt.ContactNumber != contactNumber {
		return nil, NewForbiddenError("appointment belongs to a different user")
	}
	if appt.Status != models.AppointmentScheduled {
		return nil, NewNotFoundError("appointment is no longer active")
	}
	return appt, nil
}

func (c *DefaultCoordinator) rollbackReservation(ctx context.Context, slotID string) {
	if err := c.Slots.Release(ctx, slotID); err != nil {
		c.logger().Error("failed to roll back slot reservation",
			zap.String("slotId", slotID), zap.Error(err))
	}
}

func (c *DefaultCoordinator) scheduleReminder(appt models.Appointment) {
	if c.Reminders == nil {
		return
	}
	// Best effort: a missed reminder never fails the booking.
	if err := c.Reminders.Schedule(appt); err != nil {
		c.logger().Warn("failed to queue appointment reminder",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}

func (c *DefaultCoordinator) duration(slot *models.Slot) int {
	if slot.DurationMinutes > 0 {
		return slot.DurationMinutes
	}
	if c.DurationMinutes > 0 {
		return c.DurationMinutes
	}
	return 30
}
