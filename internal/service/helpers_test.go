package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/auth"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	store   *repository.Store
	tokens  *auth.TokenService
	auth    *AuthService
	foods   *FoodService
	baskets *BasketService
	orders  *OrderService
	admin   *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logger.New("error")
	store := repository.NewInMemoryStore()
	tokens := auth.NewTokenService("test-secret", 30*time.Minute)

	return &testEnv{
		store:   store,
		tokens:  tokens,
		auth:    NewAuthService(store.Users, tokens, auth.NewPasswordHasher(bcrypt.MinCost), log),
		foods:   NewFoodService(store.Foods, log),
		baskets: NewBasketService(store.Baskets, store.Foods, log),
		orders:  NewOrderService(store.Orders, store.Baskets, store.Foods, store.Users, log),
		admin:   NewAdminService(store, log),
	}
}

func (e *testEnv) register(t *testing.T, email string, role models.Role) *models.AuthResult {
	t.Helper()

	result, err := e.auth.Register(context.Background(), models.RegisterRequest{
		Email:    email,
		Name:     "Test " + string(role),
		Password: "pw",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("Register(%s) unexpected error = %v", email, err)
	}
	return result
}

func (e *testEnv) createFood(t *testing.T, title string, price float64) *models.Food {
	t.Helper()

	food, err := e.foods.CreateFood(context.Background(), models.FoodRequest{
		Title:       title,
		Description: title + " description",
		Price:       &price,
	})
	if err != nil {
		t.Fatalf("CreateFood(%s) unexpected error = %v", title, err)
	}
	return food
}

func assertKind(t *testing.T, err, kind error, wantMsg string) {
	t.Helper()

	if !errors.Is(err, kind) {
		t.Fatalf("error = %v, want kind %v", err, kind)
	}
	if wantMsg == "" {
		return
	}
	if msg, _ := Message(err); msg != wantMsg {
		t.Errorf("message = %q, want %q", msg, wantMsg)
	}
}
