package memory

import (
	"context"
	"sync"

	"bitcoin-wallet/internal/core/domain"
)

// UserRepo implements ports.UserRepository with a mutex-guarded map.
// Ids are assigned sequentially starting at 1.
type UserRepo struct {
	mu     sync.RWMutex
	users  map[int64]domain.User
	nextID int64
}

// NewUserRepo creates an empty in-memory user repository.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[int64]domain.User), nextID: 1}
}

// Create stores the user and assigns its sequential id.
func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

// GetByID returns the user with the given id, or nil.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByUsername returns the user with the given username, or nil.
// Usernames are case-sensitive.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// GetByAPIKey returns the user holding the given API key, or nil.
func (r *UserRepo) GetByAPIKey(ctx context.Context, apiKey string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.APIKey == apiKey {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// List returns all users ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, 0, len(r.users))
	for id := int64(1); id < r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}
