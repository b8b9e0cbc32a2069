package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/google/uuid"
)

// InMemoryFoodRepository implements FoodRepository with in-memory storage
type InMemoryFoodRepository struct {
	mu     sync.RWMutex
	foods  map[string]models.Food
	titles map[string]string // title -> id
	order  []string
}

// NewInMemoryFoodRepository creates an empty in-memory food repository
func NewInMemoryFoodRepository() *InMemoryFoodRepository {
	return &InMemoryFoodRepository{
		foods:  make(map[string]models.Food),
		titles: make(map[string]string),
	}
}

// GetAll returns all foods in creation order
func (r *InMemoryFoodRepository) GetAll(ctx context.Context) ([]models.Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	foods := make([]models.Food, 0, len(r.order))
	for _, id := range r.order {
		foods = append(foods, r.foods[id])
	}
	return foods, nil
}

// GetByID returns a food by its ID
func (r *InMemoryFoodRepository) GetByID(ctx context.Context, id string) (*models.Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	food, exists := r.foods[id]
	if !exists {
		return nil, ErrNotFound
	}
	return &food, nil
}

func (r *InMemoryFoodRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make(map[string]models.Food, len(ids))
	for _, id := range ids {
		if food, ok := r.foods[id]; ok {
			found[id] = food
		}
	}
	return found, nil
}

func (r *InMemoryFoodRepository) Create(ctx context.Context, food *models.Food) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.titles[food.Title]; taken {
		return ErrDuplicateKey
	}

	now := time.Now().UTC()
	food.ID = uuid.New().String()
	food.CreatedAt = now
	food.UpdatedAt = now

	r.foods[food.ID] = *food
	r.titles[food.Title] = food.ID
	r.order = append(r.order, food.ID)
	return nil
}

func (r *InMemoryFoodRepository) Update(ctx context.Context, food *models.Food) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.foods[food.ID]
	if !exists {
		return ErrNotFound
	}
	if owner, taken := r.titles[food.Title]; taken && owner != food.ID {
		return ErrDuplicateKey
	}

	food.CreatedAt = existing.CreatedAt
	food.UpdatedAt = time.Now().UTC()

	delete(r.titles, existing.Title)
	r.titles[food.Title] = food.ID
	r.foods[food.ID] = *food
	return nil
}

func (r *InMemoryFoodRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.foods[id]
	if !exists {
		return ErrNotFound
	}

	delete(r.foods, id)
	delete(r.titles, existing.Title)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *InMemoryFoodRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.foods = make(map[string]models.Food)
	r.titles = make(map[string]string)
	r.order = nil
	return nil
}
