package models

import "time"

// ToolInvocation is one entry of a session's operation log.
type ToolInvocation struct {
	Operation string                 `bson:"operation" json:"operation"`
	Arguments map[string]interface{} `bson:"arguments,omitempty" json:"arguments,omitempty"`
	Result    string                 `bson:"result" json:"result"`
	Timestamp time.Time              `bson:"timestamp" json:"timestamp"`
}

// CallRecord is the append-only record persisted for each completed session.
type CallRecord struct {
	ID              string           `bson:"id" json:"id"`
	SessionID       string           `bson:"session_id" json:"session_id"`
	ContactNumber   string           `bson:"contact_number,omitempty" json:"contact_number,omitempty"`
	TranscriptRef   string           `bson:"transcript_ref,omitempty" json:"transcript_ref,omitempty"`
	Summary         string           `bson:"summary" json:"summary"`
	OperationLog    []ToolInvocation `bson:"operation_log" json:"operation_log"`
	DurationSeconds int              `bson:"duration_seconds" json:"duration_seconds"`
	CostBreakdown   CostBreakdown    `bson:"cost_breakdown" json:"cost_breakdown"`
	Preferences     Preferences      `bson:"preferences" json:"preferences"`
	CreatedAt       time.Time        `bson:"created_at" json:"created_at"`
}
