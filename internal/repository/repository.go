package repository

import (
	"context"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
)

// FoodRepository defines the interface for food catalog access
type FoodRepository interface {
	GetAll(ctx context.Context) ([]models.Food, error)
	GetByID(ctx context.Context, id string) (*models.Food, error)
	// GetByIDs returns the foods that exist among ids, keyed by id
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Food, error)
	// Create assigns ID and timestamps. ErrDuplicateKey on a taken title.
	Create(ctx context.Context, food *models.Food) error
	Update(ctx context.Context, food *models.Food) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// UserRepository defines the interface for credential storage
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]models.User, error)
	// Create assigns ID and timestamps. ErrDuplicateKey on a taken email.
	Create(ctx context.Context, user *models.User) error
	DeleteAll(ctx context.Context) error
}

// BasketRepository defines the interface for basket storage.
// There is at most one basket per user.
type BasketRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Basket, error)
	// Create persists a new basket. ErrDuplicateKey if the user already has one.
	Create(ctx context.Context, basket *models.Basket) error
	// Update writes basket only if the stored version equals basket.Version,
	// then increments basket.Version. ErrVersionConflict otherwise.
	Update(ctx context.Context, basket *models.Basket) error
	DeleteAll(ctx context.Context) error
}

// OrderRepository defines the interface for order storage
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	ListByUserID(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	DeleteAll(ctx context.Context) error
}

// Store bundles the repositories of one backend
type Store struct {
	Foods   FoodRepository
	Users   UserRepository
	Baskets BasketRepository
	Orders  OrderRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping reports whether the backend is reachable
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases backend resources
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// NewInMemoryStore creates a store backed by process memory
func NewInMemoryStore() *Store {
	return &Store{
		Foods:   NewInMemoryFoodRepository(),
		Users:   NewInMemoryUserRepository(),
		Baskets: NewInMemoryBasketRepository(),
		Orders:  NewInMemoryOrderRepository(),
	}
}
