package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/service"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// CreateOrder handles POST /orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.log)
	if !ok {
		return
	}

	var req models.OrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.log.Debug("rejected order request", "error", err)
		writeServiceError(w, err, h.log)
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), user, *req.TotalPrice)
	if err != nil {
		writeServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusCreated, models.Response{Data: order, Message: "Order successfully created!"}, h.log)
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.log)
	if !ok {
		return
	}

	orders, err := h.orderService.ListOrders(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err, h.log)
		return
	}

	total := len(orders)
	WriteJSON(w, http.StatusOK, models.Response{Data: orders, Total: &total}, h.log)
}

// ListAllOrders handles GET /orders/all
func (h *OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListAllOrders(r.Context())
	if err != nil {
		writeServiceError(w, err, h.log)
		return
	}

	total := len(orders)
	WriteJSON(w, http.StatusOK, models.Response{Data: orders, Total: &total}, h.log)
}
