package models

import "time"

// Slot is a fixed-duration bookable window, unique on (date, time).
// Slots are seeded in bulk ahead of time; only the availability flag ever
// changes after creation.
type Slot struct {
	ID              string    `bson:"id" json:"id"`
	Date            string    `bson:"slot_date" json:"slot_date"` // "2026-01-27"
	Time            string    `bson:"slot_time" json:"slot_time"` // "14:00", 24-hour
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	Available       bool      `bson:"is_available" json:"is_available"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}

// SlotView is the presentation shape for a single available slot, as sent to
// the frontend alongside operation events.
type SlotView struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	TimeDisplay string `json:"time_display"`
	DateLabel   string `json:"date_label"`
	TimeOfDay   string `json:"time_of_day,omitempty"`
}
