package service

import (
	"context"
	"log/slog"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/repository"
)

// AdminService holds maintenance operations over the whole store
type AdminService struct {
	store  *repository.Store
	logger *slog.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(store *repository.Store, logger *slog.Logger) *AdminService {
	return &AdminService{
		store:  store,
		logger: logger,
	}
}

// DropDB deletes every basket, food, user and order. Orders are cleared
// as well, so nothing survives a reset; earlier deployments kept them.
func (s *AdminService) DropDB(ctx context.Context) error {
	steps := []struct {
		name  string
		clear func(context.Context) error
	}{
		{"baskets", s.store.Baskets.DeleteAll},
		{"foods", s.store.Foods.DeleteAll},
		{"users", s.store.Users.DeleteAll},
		{"orders", s.store.Orders.DeleteAll},
	}

	for _, step := range steps {
		if err := step.clear(ctx); err != nil {
			return storeError("failed to clear "+step.name, err)
		}
	}

	s.logger.Warn("database dropped")
	return nil
}
