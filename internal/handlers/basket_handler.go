package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/service"
	"github.com/go-chi/chi/v5"
)

// BasketHandler handles basket HTTP requests for the authorized user
type BasketHandler struct {
	service *service.BasketService
	logger  *slog.Logger
}

// NewBasketHandler creates a new basket handler
func NewBasketHandler(service *service.BasketService, logger *slog.Logger) *BasketHandler {
	return &BasketHandler{
		service: service,
		logger:  logger,
	}
}

// GetBasket handles GET /basket
func (h *BasketHandler) GetBasket(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}

	basket, err := h.service.GetBasket(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, models.Response{Data: basket}, h.logger)
}

// AddToBasket handles POST /foods/{id}/addToBasket
func (h *BasketHandler) AddToBasket(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}

	var req models.AmountRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	basket, err := h.service.AddToBasket(r.Context(), user.ID, chi.URLParam(r, "id"), *req.Amount)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, models.Response{Data: basket}, h.logger)
}

// UpdateBasketItem handles PUT /basketItem/{id}/update
func (h *BasketHandler) UpdateBasketItem(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}

	var req models.AmountRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	basket, err := h.service.UpdateBasketItem(r.Context(), user.ID, chi.URLParam(r, "id"), *req.Amount)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, models.Response{Data: basket}, h.logger)
}

// DeleteBasketItem handles DELETE /basketItem/{id}/delete
func (h *BasketHandler) DeleteBasketItem(w http.ResponseWriter, r *http.Request) {
	user, ok := h.user(w, r)
	if !ok {
		return
	}

	basket, err := h.service.DeleteBasketItem(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, models.Response{Data: basket}, h.logger)
}

func (h *BasketHandler) user(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	return requireUser(w, r, h.logger)
}

// requireUser returns the user placed in the context by RequireRoles
func requireUser(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*models.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		logger.Error("handler reached without an authorized user", "path", r.URL.Path)
		WriteError(w, http.StatusUnauthorized, "Token is not provided", logger)
		return nil, false
	}
	return user, true
}
