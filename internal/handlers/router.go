package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig carries everything the HTTP surface is built from
type RouterConfig struct {
	Store          *repository.Store
	Auth           *service.AuthService
	Foods          *service.FoodService
	Baskets        *service.BasketService
	Orders         *service.OrderService
	Admin          *service.AdminService
	Logger         *slog.Logger
	AllowedOrigins []string
	// AllowDropDB routes DELETE /drop_db. The route has no authorization.
	AllowDropDB bool
}

// NewRouter builds the chi router with middleware and all API routes
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger

	healthHandler := NewHealthHandler(cfg.Store, log)
	authHandler := NewAuthHandler(cfg.Auth, log)
	foodHandler := NewFoodHandler(cfg.Foods, log)
	basketHandler := NewBasketHandler(cfg.Baskets, log)
	orderHandler := NewOrderHandler(cfg.Orders, log)

	userOnly := middleware.RequireRoles(cfg.Auth, log, models.RoleUser)
	adminOnly := middleware.RequireRoles(cfg.Auth, log, models.RoleAdmin)

	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.LogIn)
	})

	r.Route("/foods", func(r chi.Router) {
		r.Get("/", foodHandler.ListFoods)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", foodHandler.CreateFood)
			r.Get("/{id}", foodHandler.GetFood)
			r.Put("/{id}", foodHandler.UpdateFood)
			r.Delete("/{id}", foodHandler.DeleteFood)
		})

		r.With(userOnly).Post("/{id}/addToBasket", basketHandler.AddToBasket)
	})

	r.With(userOnly).Get("/basket", basketHandler.GetBasket)
	r.With(userOnly).Put("/basketItem/{id}/update", basketHandler.UpdateBasketItem)
	r.With(userOnly).Delete("/basketItem/{id}/delete", basketHandler.DeleteBasketItem)

	r.Route("/orders", func(r chi.Router) {
		r.With(userOnly).Get("/", orderHandler.ListOrders)
		r.With(userOnly).Post("/", orderHandler.CreateOrder)
		r.With(adminOnly).Get("/all", orderHandler.ListAllOrders)
	})

	if cfg.AllowDropDB {
		adminHandler := NewAdminHandler(cfg.Admin, log)
		r.Delete("/drop_db", adminHandler.DropDB)
		log.Warn("unauthenticated DELETE /drop_db route is enabled")
	}

	return r
}
