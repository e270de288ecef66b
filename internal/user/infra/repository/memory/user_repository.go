package memory

import (
	"context"
	"sync"

	"github.com/cristianortiz/leilaoEngine/internal/user/domain"
	"github.com/google/uuid"
)

type userKey struct {
	name  string
	email string
}

// UserRepository is a concurrency-safe in-memory implementation of domain.UserRepository
type UserRepository struct {
	mu    sync.RWMutex
	users map[userKey]*domain.User
}

// NewUserRepository creates an empty repository
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[userKey]*domain.User)}
}

// Save stores the user, a user with the same name and email takes the stored id
func (r *UserRepository) Save(_ context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrNilUser
	}
	if user.Name == "" || user.Email == "" {
		return domain.ErrInvalidUser
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := userKey{name: user.Name, email: user.Email}
	if stored, ok := r.users[key]; ok {
		user.ID = stored.ID
		return nil
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[key] = user
	return nil
}

// FindByNameAndEmail returns (nil, nil) when nobody matches
func (r *UserRepository) FindByNameAndEmail(_ context.Context, name, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.users[userKey{name: name, email: email}]; ok {
		return u, nil
	}
	return nil, nil
}
