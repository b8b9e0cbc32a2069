package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/service"
	"github.com/go-chi/chi/v5"
)

// FoodHandler handles food catalog HTTP requests
type FoodHandler struct {
	service *service.FoodService
	logger  *slog.Logger
}

// NewFoodHandler creates a new food handler
func NewFoodHandler(service *service.FoodService, logger *slog.Logger) *FoodHandler {
	return &FoodHandler{
		service: service,
		logger:  logger,
	}
}

// ListFoods handles GET /foods
func (h *FoodHandler) ListFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.service.ListFoods(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	total := len(foods)
	WriteJSON(w, http.StatusOK, models.Response{Data: foods, Total: &total}, h.logger)
}

// GetFood handles GET /foods/{id}
func (h *FoodHandler) GetFood(w http.ResponseWriter, r *http.Request) {
	food, err := h.service.GetFood(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, models.Response{Data: food}, h.logger)
}

// CreateFood handles POST /foods
func (h *FoodHandler) CreateFood(w http.ResponseWriter, r *http.Request) {
	var req models.FoodRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	food, err := h.service.CreateFood(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, models.Response{Data: food, Message: "Food successfully created."}, h.logger)
}

// UpdateFood handles PUT /foods/{id}
func (h *FoodHandler) UpdateFood(w http.ResponseWriter, r *http.Request) {
	var req models.FoodRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	food, err := h.service.UpdateFood(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, models.Response{Data: food, Message: "Food successfully updated."}, h.logger)
}

// DeleteFood handles DELETE /foods/{id}
func (h *FoodHandler) DeleteFood(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteFood(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, models.Response{Message: "Food successfully deleted."}, h.logger)
}
