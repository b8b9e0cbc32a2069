package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/google/uuid"
)

// InMemoryUserRepository implements UserRepository with in-memory storage
type InMemoryUserRepository struct {
	mu      sync.RWMutex
	users   map[string]models.User
	byEmail map[string]string
}

// NewInMemoryUserRepository creates an empty in-memory user repository
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byEmail[email]
	if !exists {
		return nil, ErrNotFound
	}
	user := r.users[id]
	return &user, nil
}

func (r *InMemoryUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make(map[string]models.User, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			found[id] = user
		}
	}
	return found, nil
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return ErrDuplicateKey
	}

	now := time.Now().UTC()
	user.ID = uuid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *InMemoryUserRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[string]models.User)
	r.byEmail = make(map[string]string)
	return nil
}
