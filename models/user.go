package models

import "time"

// User is an identity record keyed by contact number. Created on first
// reference, never deleted; only the display name is mutable.
type User struct {
	ContactNumber string    `bson:"contact_number" json:"contact_number"`
	Name          string    `bson:"name,omitempty" json:"name,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
