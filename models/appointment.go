package models

import "time"

// Appointment status values. Cancellation is a status write, never a delete,
// so the booking history stays auditable.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCancelled = "cancelled"
)

// Appointment binds one identity to one slot. At most one scheduled
// appointment may reference a given slot, and at most one scheduled
// appointment may exist for a given (date, time) across all users.
type Appointment struct {
	ID              string    `bson:"id" json:"id"`
	ContactNumber   string    `bson:"contact_number" json:"contact_number"`
	SlotID          string    `bson:"slot_id" json:"slot_id"`
	Date            string    `bson:"appointment_date" json:"appointment_date"`
	Time            string    `bson:"appointment_time" json:"appointment_time"`
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	Status          string    `bson:"status" json:"status"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}
