package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/service"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	result, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, models.Response{Data: result}, h.logger)
}

// LogIn handles POST /auth/login
func (h *AuthHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	var req models.LogInRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	result, err := h.service.LogIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, models.Response{Data: result}, h.logger)
}
