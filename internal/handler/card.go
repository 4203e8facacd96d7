package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/service"
)

// CardHandler обрабатывает эндпоинты карточек
type CardHandler struct {
	cardService *service.CardService
}

// NewCardHandler создает новый CardHandler
func NewCardHandler(cardService *service.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// CardRequest представляет тело запроса для создания и изменения карточки.
// Отсутствующее поле не меняется (при создании становится пустой строкой).
type CardRequest struct {
	Title *string `json:"title"`
	Desc  *string `json:"desc"`
	Link  *string `json:"link"`
}

func (req CardRequest) fields() service.CardFields {
	return service.CardFields{Title: req.Title, Desc: req.Desc, Link: req.Link}
}

// List обрабатывает GET /api/cards
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cardService.List(r.Context())
	if err != nil {
		HandleError(w, r, err, "Failed to fetch cards")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, cards)
}

// Create обрабатывает POST /api/cards
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CardRequest
	if err := DecodeBody(r, &req); err != nil {
		HandleError(w, r, err, "Failed to create card")
		return
	}

	card, err := h.cardService.Create(r.Context(), req.fields())
	if err != nil {
		HandleError(w, r, err, "Failed to create card")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, card)
}

// Update обрабатывает PUT /api/cards/{id}.
// Для несуществующей карточки возвращается null.
func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req CardRequest
	if err := DecodeBody(r, &req); err != nil {
		HandleError(w, r, err, "Failed to update card")
		return
	}

	card, err := h.cardService.Update(r.Context(), chi.URLParam(r, "id"), req.fields())
	if err != nil {
		if domain.IsNotFound(err) {
			RespondWithJSON(w, r, http.StatusOK, nil)
			return
		}
		HandleError(w, r, err, "Failed to update card")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, card)
}

// Delete обрабатывает DELETE /api/cards/{id}
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.cardService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		HandleError(w, r, err, "Failed to delete card")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Deleted"})
}
