package userRepo

import (
	"context"
	"sync"
	"time"

	"voicebook/models"
)

// MemoryUserRepo is a volatile Repository implementation for tests.
type MemoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

// NewMemoryUserRepo constructs an empty in-memory user repository.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]*models.User)}
}

func (r *MemoryUserRepo) FindOrCreate(ctx context.Context, contactNumber string) (*models.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[contactNumber]; ok {
		clone := *u
		return &clone, true, nil
	}

	now := time.Now().UTC()
	u := &models.User{ContactNumber: contactNumber, CreatedAt: now, UpdatedAt: now}
	r.users[contactNumber] = u
	clone := *u
	return &clone, false, nil
}

func (r *MemoryUserRepo) UpdateName(ctx context.Context, contactNumber, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[contactNumber]; ok {
		u.Name = name
		u.UpdatedAt = time.Now().UTC()
	}
	return nil
}
