package recordsRepo

import (
	"context"

	"voicebook/models"
)

// Repository is the append-only store for completed call records.
type Repository interface {
	Create(ctx context.Context, record models.CallRecord) (string, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.CallRecord, error)
	GetByContact(ctx context.Context, contactNumber string) ([]models.CallRecord, error)
}
