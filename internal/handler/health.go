package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// HealthChecker проверяет доступность зависимости
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает эндпоинты проверки состояния
type HealthHandler struct {
	store HealthChecker
}

// NewHealthHandler создает новый HealthHandler
func NewHealthHandler(store HealthChecker) *HealthHandler {
	return &HealthHandler{
		store: store,
	}
}

// HealthResponse представляет ответ проверки состояния
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health обрабатывает GET /health: процесс жив, зависимости не проверяются
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready обрабатывает GET /ready: 200 только если хранилище отвечает
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Checks: map[string]string{"store": "ok"}}
	statusCode := http.StatusOK

	if err := h.store.Ping(ctx); err != nil {
		resp.Status = "unavailable"
		slog.ErrorContext(ctx, "Store is not ready", "error", err)
		resp.Checks["store"] = "unavailable"
		statusCode = http.StatusServiceUnavailable
	}

	RespondWithJSON(w, r, statusCode, resp)
}
