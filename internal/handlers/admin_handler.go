package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/service"
)

// AdminHandler exposes store maintenance endpoints
type AdminHandler struct {
	service *service.AdminService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger,
	}
}

// DropDB handles DELETE /drop_db. It is only routed when enabled in config.
func (h *AdminHandler) DropDB(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("drop_db requested", "remote_addr", r.RemoteAddr)

	if err := h.service.DropDB(r.Context()); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, models.Response{Message: "SUCCESS"}, h.logger)
}
