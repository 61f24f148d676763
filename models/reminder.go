package models

// ReminderPayload is the task payload queued for appointment reminders.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	ContactNumber string `json:"contactNumber"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}
