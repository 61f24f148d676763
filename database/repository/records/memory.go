package recordsRepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"voicebook/models"
)

// MemoryRecordRepo is a volatile Repository implementation for tests.
type MemoryRecordRepo struct {
	mu      sync.Mutex
	records []models.CallRecord
}

// NewMemoryRecordRepo constructs an empty in-memory record repository.
func NewMemoryRecordRepo() *MemoryRecordRepo {
	return &MemoryRecordRepo{}
}

func (r *MemoryRecordRepo) Create(ctx context.Context, record models.CallRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now().UTC()
	r.records = append(r.records, record)
	return record.ID, nil
}

func (r *MemoryRecordRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.CallRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].SessionID == sessionID {
			clone := r.records[i]
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRecordRepo) GetByContact(ctx context.Context, contactNumber string) ([]models.CallRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.CallRecord
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].ContactNumber == contactNumber {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}
