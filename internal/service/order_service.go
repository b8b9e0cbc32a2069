package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/repository"
)

// totalTolerance absorbs float rounding when comparing client and server totals
const totalTolerance = 0.005

// OrderService handles order business logic
type OrderService struct {
	orders  repository.OrderRepository
	baskets repository.BasketRepository
	foods   repository.FoodRepository
	users   repository.UserRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	orders repository.OrderRepository,
	baskets repository.BasketRepository,
	foods repository.FoodRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orders:  orders,
		baskets: baskets,
		foods:   foods,
		users:   users,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateOrder records the user's current basket as an order.
//
// The order keeps its own copy of the items, so later basket changes do
// not reach it. totalPrice is stored as given by the client; a mismatch
// with the basket's own total is logged but not rejected. The basket is
// left as is.
func (s *OrderService) CreateOrder(ctx context.Context, user *models.User, totalPrice float64) (*models.Order, error) {
	basket, err := s.baskets.GetByUserID(ctx, user.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound(msgBasketNotFound)
		}
		return nil, storeError("failed to load basket", err)
	}

	if computed := basket.Total(); math.Abs(computed-totalPrice) > totalTolerance {
		s.logger.Warn("order total differs from basket total",
			"user_id", user.ID,
			"client_total", totalPrice,
			"basket_total", computed,
		)
	}

	order := &models.Order{
		UserID:     user.ID,
		TotalPrice: totalPrice,
		Items:      models.CloneItems(basket.Items),
		CreatedAt:  s.now(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, storeError("failed to create order", err)
	}

	s.logger.Info("order created", "order_id", order.ID, "user_id", user.ID, "items_count", len(order.Items))
	return order, nil
}

// ListOrders returns the orders of one user with item foods expanded
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.OrderView, error) {
	orders, err := s.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, storeError("failed to list orders", err)
	}
	return s.populate(ctx, orders, false)
}

// ListAllOrders returns every order with item foods and owner names expanded
func (s *OrderService) ListAllOrders(ctx context.Context) ([]models.OrderView, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, storeError("failed to list orders", err)
	}
	return s.populate(ctx, orders, true)
}

func (s *OrderService) populate(ctx context.Context, orders []models.Order, withUser bool) ([]models.OrderView, error) {
	var ids []string
	for _, order := range orders {
		ids = append(ids, foodIDs(order.Items)...)
	}
	foods, err := s.foods.GetByIDs(ctx, ids)
	if err != nil {
		return nil, storeError("failed to load foods", err)
	}

	var owners map[string]models.User
	if withUser {
		userIDs := make([]string, 0, len(orders))
		for _, order := range orders {
			userIDs = append(userIDs, order.UserID)
		}
		owners, err = s.users.GetByIDs(ctx, userIDs)
		if err != nil {
			return nil, storeError("failed to load order owners", err)
		}
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, order := range orders {
		view := models.OrderView{
			ID:         order.ID,
			UserID:     order.UserID,
			TotalPrice: order.TotalPrice,
			Items:      joinFoods(order.Items, foods),
			CreatedAt:  order.CreatedAt,
		}
		if owner, ok := owners[order.UserID]; ok {
			view.User = &models.OrderUser{ID: owner.ID, Name: owner.Name}
		}
		views = append(views, view)
	}
	return views, nil
}
