package service

import (
	"context"
	"log/slog"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/repository"
	"github.com/google/uuid"
)

const (
	msgBasketNotFound  = "Basket not found"
	msgBasketContended = "Basket was modified concurrently, please retry"
	msgAmountTooLarge  = "amount must not be greater than 10000"
)

// maxBasketWriteAttempts bounds the read-modify-write loop when another
// request keeps winning the version check on the same basket.
const maxBasketWriteAttempts = 5

// BasketService implements the per-user basket: lazy creation, merge on
// add, absolute amount updates and removal by item id. Every write is a
// compare-and-swap on the basket version.
type BasketService struct {
	baskets repository.BasketRepository
	foods   repository.FoodRepository
	logger  *slog.Logger
	newID   func() string
}

// NewBasketService creates a new basket service
func NewBasketService(baskets repository.BasketRepository, foods repository.FoodRepository, logger *slog.Logger) *BasketService {
	return &BasketService{
		baskets: baskets,
		foods:   foods,
		logger:  logger,
		newID:   func() string { return uuid.New().String() },
	}
}

// GetBasket returns the user's basket with each item's food expanded,
// creating an empty basket on first access.
func (s *BasketService) GetBasket(ctx context.Context, userID string) (*models.BasketView, error) {
	basket, err := s.baskets.GetByUserID(ctx, userID)
	if err != nil {
		if !isNotFound(err) {
			return nil, storeError("failed to load basket", err)
		}
		basket, err = s.create(ctx, userID)
		if err != nil {
			return nil, err
		}
	}
	return s.populate(ctx, basket)
}

// AddToBasket adds amount of a food to the user's basket. An item for the
// same food is incremented rather than duplicated.
func (s *BasketService) AddToBasket(ctx context.Context, userID, foodID string, amount int) (*models.Basket, error) {
	if err := checkAmount(amount); err != nil {
		return nil, err
	}

	food, err := s.foods.GetByID(ctx, foodID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound(msgFoodNotFound)
		}
		return nil, storeError("failed to get food", err)
	}

	for attempt := 1; attempt <= maxBasketWriteAttempts; attempt++ {
		basket, err := s.baskets.GetByUserID(ctx, userID)
		if isNotFound(err) {
			items := []models.BasketItem{s.snapshot(food, amount)}
			basket = &models.Basket{UserID: userID, Items: items}
			err = s.baskets.Create(ctx, basket)
			if err == nil {
				return basket, nil
			}
			if isDuplicate(err) {
				continue
			}
			return nil, storeError("failed to create basket", err)
		}
		if err != nil {
			return nil, storeError("failed to load basket", err)
		}

		basket.Items, err = mergeItem(basket.Items, s.snapshot(food, amount))
		if err != nil {
			return nil, err
		}
		if err := s.baskets.Update(ctx, basket); err != nil {
			if isVersionConflict(err) {
				s.logger.Debug("basket version conflict", "user_id", userID, "attempt", attempt)
				continue
			}
			return nil, storeError("failed to save basket", err)
		}
		return basket, nil
	}

	s.logger.Warn("basket write abandoned", "user_id", userID, "attempts", maxBasketWriteAttempts)
	return nil, conflict(msgBasketContended)
}

// UpdateBasketItem sets the amount of the item with itemID. Unknown item
// ids leave the basket unchanged; a missing basket is NotFound.
func (s *BasketService) UpdateBasketItem(ctx context.Context, userID, itemID string, amount int) (*models.Basket, error) {
	if err := checkAmount(amount); err != nil {
		return nil, err
	}
	return s.mutate(ctx, userID, func(items []models.BasketItem) []models.BasketItem {
		return setItemAmount(items, itemID, amount)
	})
}

// DeleteBasketItem removes the item with itemID. Unknown item ids leave
// the basket unchanged; a missing basket is NotFound.
func (s *BasketService) DeleteBasketItem(ctx context.Context, userID, itemID string) (*models.Basket, error) {
	return s.mutate(ctx, userID, func(items []models.BasketItem) []models.BasketItem {
		return removeItem(items, itemID)
	})
}

func (s *BasketService) mutate(ctx context.Context, userID string, apply func([]models.BasketItem) []models.BasketItem) (*models.Basket, error) {
	for attempt := 1; attempt <= maxBasketWriteAttempts; attempt++ {
		basket, err := s.baskets.GetByUserID(ctx, userID)
		if err != nil {
			if isNotFound(err) {
				return nil, notFound(msgBasketNotFound)
			}
			return nil, storeError("failed to load basket", err)
		}

		basket.Items = apply(basket.Items)
		err = s.baskets.Update(ctx, basket)
		switch {
		case err == nil:
			return basket, nil
		case isVersionConflict(err):
			s.logger.Debug("basket version conflict", "user_id", userID, "attempt", attempt)
		case isNotFound(err):
			return nil, notFound(msgBasketNotFound)
		default:
			return nil, storeError("failed to save basket", err)
		}
	}

	s.logger.Warn("basket write abandoned", "user_id", userID, "attempts", maxBasketWriteAttempts)
	return nil, conflict(msgBasketContended)
}

// create persists a new basket. Losing a creation race to another request
// returns the basket that won.
func (s *BasketService) create(ctx context.Context, userID string) (*models.Basket, error) {
	basket := &models.Basket{UserID: userID, Items: []models.BasketItem{}}
	err := s.baskets.Create(ctx, basket)
	if err == nil {
		s.logger.Debug("basket created", "user_id", userID)
		return basket, nil
	}
	if !isDuplicate(err) {
		return nil, storeError("failed to create basket", err)
	}

	basket, err = s.baskets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, storeError("failed to load basket", err)
	}
	return basket, nil
}

func (s *BasketService) populate(ctx context.Context, basket *models.Basket) (*models.BasketView, error) {
	items, err := populateItems(ctx, s.foods, basket.Items)
	if err != nil {
		return nil, err
	}
	return &models.BasketView{
		ID:        basket.ID,
		UserID:    basket.UserID,
		Items:     items,
		Version:   basket.Version,
		CreatedAt: basket.CreatedAt,
		UpdatedAt: basket.UpdatedAt,
	}, nil
}

func (s *BasketService) snapshot(food *models.Food, amount int) models.BasketItem {
	return models.BasketItem{
		ID:     s.newID(),
		Title:  food.Title,
		Amount: amount,
		Price:  food.Price,
		FoodID: food.ID,
	}
}

// mergeItem adds item's amount to the entry for the same food, or appends
// item when there is none. Items never hold two entries for one food, and
// a merged amount never exceeds models.MaxItemAmount.
func mergeItem(items []models.BasketItem, item models.BasketItem) ([]models.BasketItem, error) {
	for i := range items {
		if items[i].FoodID == item.FoodID {
			if items[i].Amount > models.MaxItemAmount-item.Amount {
				return nil, invalid(msgAmountTooLarge)
			}
			items[i].Amount += item.Amount
			return items, nil
		}
	}
	return append(items, item), nil
}

func checkAmount(amount int) error {
	if amount < 0 {
		return invalid("amount must not be less than 0")
	}
	if amount > models.MaxItemAmount {
		return invalid(msgAmountTooLarge)
	}
	return nil
}

func setItemAmount(items []models.BasketItem, itemID string, amount int) []models.BasketItem {
	for i := range items {
		if items[i].ID == itemID {
			items[i].Amount = amount
		}
	}
	return items
}

func removeItem(items []models.BasketItem, itemID string) []models.BasketItem {
	kept := make([]models.BasketItem, 0, len(items))
	for _, item := range items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	return kept
}

// populateItems joins items with the current foods they reference.
// Items whose food was deleted keep a nil Food.
func populateItems(ctx context.Context, foods repository.FoodRepository, items []models.BasketItem) ([]models.PopulatedItem, error) {
	byID, err := foods.GetByIDs(ctx, foodIDs(items))
	if err != nil {
		return nil, storeError("failed to load foods", err)
	}
	return joinFoods(items, byID), nil
}

func foodIDs(items []models.BasketItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.FoodID)
	}
	return ids
}

func joinFoods(items []models.BasketItem, byID map[string]models.Food) []models.PopulatedItem {
	populated := make([]models.PopulatedItem, 0, len(items))
	for _, item := range items {
		p := models.PopulatedItem{BasketItem: item}
		if food, ok := byID[item.FoodID]; ok {
			p.Food = &food
		}
		populated = append(populated, p)
	}
	return populated
}
