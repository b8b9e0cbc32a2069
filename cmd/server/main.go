package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/auth"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/pkg/logger"
)

func main() {
	// Load configuration from .env, environment and flags
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.NewWithOptions(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(log)

	log.Info("starting food ordering api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"store", cfg.Store.Driver,
		"log_level", cfg.Log.Level,
	)

	if cfg.UsesDevJWTSecret() {
		log.Warn("JWT_SECRET is not set; signing tokens with the public development secret")
	}

	// Initialize store
	ctx := context.Background()
	store, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		log.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}

	// Initialize services
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	router := handlers.NewRouter(handlers.RouterConfig{
		Store:          store,
		Auth:           service.NewAuthService(store.Users, tokens, hasher, log),
		Foods:          service.NewFoodService(store.Foods, log),
		Baskets:        service.NewBasketService(store.Baskets, store.Foods, log),
		Orders:         service.NewOrderService(store.Orders, store.Baskets, store.Foods, store.Users, log),
		Admin:          service.NewAdminService(store, log),
		Logger:         log,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowDropDB:    cfg.AllowDropDB,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if err := store.Close(shutdownCtx); err != nil {
		log.Error("failed to close store", "error", err)
	}

	log.Info("server stopped gracefully")
}

func openStore(ctx context.Context, cfg config.StoreConfig, log *slog.Logger) (*repository.Store, error) {
	switch cfg.Driver {
	case config.StoreMongo:
		return repository.NewMongoStore(ctx, repository.MongoConfig{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
			Timeout:  cfg.MongoTimeout,
		}, log)
	default:
		log.Warn("using in-memory store; data is lost on restart")
		return repository.NewInMemoryStore(), nil
	}
}
