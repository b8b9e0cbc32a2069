package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/google/uuid"
)

// InMemoryBasketRepository implements BasketRepository with in-memory storage.
// Stored baskets are deep-copied on the way in and out so callers never
// share item slices with the store.
type InMemoryBasketRepository struct {
	mu      sync.Mutex
	baskets map[string]*models.Basket // userID -> basket
}

// NewInMemoryBasketRepository creates an empty in-memory basket repository
func NewInMemoryBasketRepository() *InMemoryBasketRepository {
	return &InMemoryBasketRepository{
		baskets: make(map[string]*models.Basket),
	}
}

func (r *InMemoryBasketRepository) GetByUserID(ctx context.Context, userID string) (*models.Basket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	basket, exists := r.baskets[userID]
	if !exists {
		return nil, ErrNotFound
	}
	return basket.Clone(), nil
}

func (r *InMemoryBasketRepository) Create(ctx context.Context, basket *models.Basket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.baskets[basket.UserID]; exists {
		return ErrDuplicateKey
	}

	now := time.Now().UTC()
	basket.ID = uuid.New().String()
	basket.Items = models.CloneItems(basket.Items)
	basket.Version = 1
	basket.CreatedAt = now
	basket.UpdatedAt = now

	r.baskets[basket.UserID] = basket.Clone()
	return nil
}

func (r *InMemoryBasketRepository) Update(ctx context.Context, basket *models.Basket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.baskets[basket.UserID]
	if !exists {
		return ErrNotFound
	}
	if stored.Version != basket.Version {
		return ErrVersionConflict
	}

	basket.Version++
	basket.UpdatedAt = time.Now().UTC()
	r.baskets[basket.UserID] = basket.Clone()
	return nil
}

func (r *InMemoryBasketRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.baskets = make(map[string]*models.Basket)
	return nil
}
