package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"voicebook/models"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds the asynq task for an appointment reminder firing at
// the given time.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderScheduler enqueues reminder tasks onto the Redis-backed queue.
type ReminderScheduler struct {
	Client      *asynq.Client
	LeadMinutes int
}

// NewReminderScheduler wires a scheduler around an asynq client.
func NewReminderScheduler(client *asynq.Client, leadMinutes int) *ReminderScheduler {
	return &ReminderScheduler{Client: client, LeadMinutes: leadMinutes}
}

// Schedule queues a reminder for the given appointment, firing LeadMinutes
// before its start. Appointments too close to fire in the past are skipped.
func (s *ReminderScheduler) Schedule(appt models.Appointment) error {
	startAt, err := time.Parse("2006-01-02 15:04", fmt.Sprintf("%s %s", appt.Date, appt.Time))
	if err != nil {
		return err
	}

	fireAt := startAt.Add(-time.Duration(s.LeadMinutes) * time.Minute)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		ContactNumber: appt.ContactNumber,
		Date:          appt.Date,
		Time:          appt.Time,
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.Client.Enqueue(task, opts...)
	return err
}
