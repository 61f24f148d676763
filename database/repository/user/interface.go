package userRepo

import (
	"context"

	"voicebook/models"
)

// Repository stores identity records keyed by contact number.
type Repository interface {
	// FindOrCreate resolves a contact number to a user, creating the record
	// on first reference. The boolean reports whether the user already
	// existed.
	FindOrCreate(ctx context.Context, contactNumber string) (*models.User, bool, error)

	// UpdateName sets the display name, the only mutable identity field.
	UpdateName(ctx context.Context, contactNumber, name string) error
}
