package service

import (
	"context"
	"log/slog"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/repository"
)

const (
	msgFoodNotFound    = "Food not found"
	msgFoodTitleExists = "A food with this title already exists"
)

// FoodService handles business logic for the food catalog
type FoodService struct {
	repo   repository.FoodRepository
	logger *slog.Logger
}

// NewFoodService creates a new food service
func NewFoodService(repo repository.FoodRepository, logger *slog.Logger) *FoodService {
	return &FoodService{
		repo:   repo,
		logger: logger,
	}
}

// ListFoods returns all foods
func (s *FoodService) ListFoods(ctx context.Context) ([]models.Food, error) {
	foods, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, storeError("failed to list foods", err)
	}
	return foods, nil
}

// GetFood returns a food by ID
func (s *FoodService) GetFood(ctx context.Context, id string) (*models.Food, error) {
	food, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound(msgFoodNotFound)
		}
		return nil, storeError("failed to get food", err)
	}
	return food, nil
}

// CreateFood adds a food to the catalog
func (s *FoodService) CreateFood(ctx context.Context, req models.FoodRequest) (*models.Food, error) {
	food := &models.Food{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
	}
	if err := s.repo.Create(ctx, food); err != nil {
		if isDuplicate(err) {
			return nil, conflict(msgFoodTitleExists)
		}
		return nil, storeError("failed to create food", err)
	}

	s.logger.Info("food created", "food_id", food.ID, "title", food.Title)
	return food, nil
}

// UpdateFood replaces the fields of an existing food.
// Basket items already holding this food keep their snapshot.
func (s *FoodService) UpdateFood(ctx context.Context, id string, req models.FoodRequest) (*models.Food, error) {
	food := &models.Food{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
	}
	if err := s.repo.Update(ctx, food); err != nil {
		switch {
		case isNotFound(err):
			return nil, notFound(msgFoodNotFound)
		case isDuplicate(err):
			return nil, conflict(msgFoodTitleExists)
		}
		return nil, storeError("failed to update food", err)
	}

	s.logger.Info("food updated", "food_id", food.ID)
	return food, nil
}

// DeleteFood removes a food from the catalog
func (s *FoodService) DeleteFood(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return notFound(msgFoodNotFound)
		}
		return storeError("failed to delete food", err)
	}

	s.logger.Info("food deleted", "food_id", id)
	return nil
}
