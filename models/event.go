package models

// Event type discriminators for the frontend event channel.
const (
	EventTypeOperation = "operation"
	EventTypeSummary   = "summary"
	EventTypeReminder  = "reminder"
)

// Operation event statuses. Every operation emits exactly one "started"
// followed by exactly one terminal status.
const (
	EventStarted = "started"
	EventSuccess = "success"
	EventError   = "error"
)

// OperationEvent reports the lifecycle of a single operation.
type OperationEvent struct {
	Type      string                 `json:"type"`
	Name      string                 `json:"name"`
	Status    string                 `json:"status"`
	Data      map[string]interface{} `json:"data"`
	Timestamp string                 `json:"timestamp"` // ISO-8601 UTC
}

// SummaryEvent is emitted exactly once at end of session, after all booking
// data and cost figures are finalized.
type SummaryEvent struct {
	Type            string        `json:"type"`
	Summary         string        `json:"summary"`
	Appointments    []Appointment `json:"appointments"`
	Preferences     Preferences   `json:"preferences"`
	CostBreakdown   CostBreakdown `json:"cost_breakdown"`
	DurationSeconds int           `json:"duration_seconds"`
	Timestamp       string        `json:"timestamp"`
}

// ReminderEvent is published by the reminder worker ahead of an appointment.
type ReminderEvent struct {
	Type        string      `json:"type"`
	Appointment Appointment `json:"appointment"`
	Timestamp   string      `json:"timestamp"`
}
