package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/service"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in the standard envelope
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, models.Response{Message: message, Status: status}, logger)
}

// writeServiceError maps a service or store error to its HTTP status
func writeServiceError(w http.ResponseWriter, err error, logger *slog.Logger) {
	msg, _ := service.Message(err)

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, msg, logger)
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, msg, logger)
	case errors.Is(err, service.ErrConflict):
		WriteError(w, http.StatusConflict, msg, logger)
	case errors.Is(err, service.ErrValidation):
		WriteError(w, http.StatusBadRequest, msg, logger)
	case errors.Is(err, repository.ErrUnavailable):
		logger.Error("store unavailable", "error", err)
		WriteError(w, http.StatusServiceUnavailable, "Service temporarily unavailable", logger)
	default:
		logger.Error("request failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}
