package handler

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Сообщения об ошибках, которые получает клиент
const (
	msgNotFound         = "Not found"
	msgUnitNotFound     = "Unit not found"
	msgMethodNotAllowed = "Method not allowed"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{Error: message})
}

// HandleError логирует ошибку операции и отвечает 500 с общим сообщением.
// Подробности ошибки клиенту не передаются.
func HandleError(w http.ResponseWriter, r *http.Request, err error, message string) {
	slog.ErrorContext(r.Context(), message,
		"error", err,
		"request_id", chimiddleware.GetReqID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
	)
	RespondWithError(w, r, http.StatusInternalServerError, message)
}

// NotFound отвечает 404 на неизвестные пути API
func NotFound(w http.ResponseWriter, r *http.Request) {
	RespondWithError(w, r, http.StatusNotFound, msgNotFound)
}
