package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/service"
)

// UnitHandler обрабатывает эндпоинты подразделений и их вложенных списков
type UnitHandler struct {
	unitService *service.UnitService
}

// NewUnitHandler создает новый UnitHandler
func NewUnitHandler(unitService *service.UnitService) *UnitHandler {
	return &UnitHandler{
		unitService: unitService,
	}
}

// UnitRequest представляет тело запроса для создания и изменения подразделения.
// Списки учитываются только при создании.
type UnitRequest struct {
	Name         *string              `json:"name"`
	Description  *string              `json:"description"`
	Managers     *string              `json:"managers"`
	Sites        []domain.Site        `json:"sites"`
	Contacts     []domain.Contact     `json:"contacts"`
	MailmanLists []domain.MailmanList `json:"mailmanLists"`
}

func (req UnitRequest) fields() service.UnitFields {
	return service.UnitFields{Name: req.Name, Description: req.Description, Managers: req.Managers}
}

// List обрабатывает GET /api/units
func (h *UnitHandler) List(w http.ResponseWriter, r *http.Request) {
	units, err := h.unitService.List(r.Context())
	if err != nil {
		HandleError(w, r, err, "Failed to fetch units")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, units)
}

// Create обрабатывает POST /api/units
func (h *UnitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req UnitRequest
	if err := DecodeBody(r, &req); err != nil {
		HandleError(w, r, err, "Failed to create unit")
		return
	}

	unit, err := h.unitService.Create(r.Context(), req.fields(), req.Sites, req.Contacts, req.MailmanLists)
	if err != nil {
		HandleError(w, r, err, "Failed to create unit")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, unit)
}

// Get обрабатывает GET /api/units/{id}. Единственный эндпоинт, отвечающий 404.
func (h *UnitHandler) Get(w http.ResponseWriter, r *http.Request) {
	unit, err := h.unitService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrUnitNotFound) {
			RespondWithError(w, r, http.StatusNotFound, msgUnitNotFound)
			return
		}
		HandleError(w, r, err, "Failed to fetch unit")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, unit)
}

// Update обрабатывает PUT /api/units/{id}
func (h *UnitHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UnitRequest
	if err := DecodeBody(r, &req); err != nil {
		HandleError(w, r, err, "Failed to update unit")
		return
	}

	unit, err := h.unitService.Update(r.Context(), chi.URLParam(r, "id"), req.fields())
	respondWithUnit(w, r, unit, err, "Failed to update unit")
}

// Delete обрабатывает DELETE /api/units/{id}
func (h *UnitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.unitService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		HandleError(w, r, err, "Failed to delete unit")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Deleted"})
}

// AddSite обрабатывает POST /api/units/{id}/sites
func (h *UnitHandler) AddSite(w http.ResponseWriter, r *http.Request) {
	addEntry(w, r, h.unitService.AddSite, "Failed to add site")
}

// AddContact обрабатывает POST /api/units/{id}/contacts
func (h *UnitHandler) AddContact(w http.ResponseWriter, r *http.Request) {
	addEntry(w, r, h.unitService.AddContact, "Failed to add contact")
}

// AddMailmanList обрабатывает POST /api/units/{id}/mailman
func (h *UnitHandler) AddMailmanList(w http.ResponseWriter, r *http.Request) {
	addEntry(w, r, h.unitService.AddMailmanList, "Failed to add mailman list")
}

// RemoveSite обрабатывает DELETE /api/units/{id}/sites/{entryID}
func (h *UnitHandler) RemoveSite(w http.ResponseWriter, r *http.Request) {
	h.removeEntry(w, r, domain.ListSites, "Failed to remove site")
}

// RemoveContact обрабатывает DELETE /api/units/{id}/contacts/{entryID}
func (h *UnitHandler) RemoveContact(w http.ResponseWriter, r *http.Request) {
	h.removeEntry(w, r, domain.ListContacts, "Failed to remove contact")
}

// RemoveMailmanList обрабатывает DELETE /api/units/{id}/mailman/{entryID}
func (h *UnitHandler) RemoveMailmanList(w http.ResponseWriter, r *http.Request) {
	h.removeEntry(w, r, domain.ListMailmanLists, "Failed to remove mailman list")
}

func (h *UnitHandler) removeEntry(w http.ResponseWriter, r *http.Request, list domain.UnitList, message string) {
	unit, err := h.unitService.RemoveEntry(r.Context(), chi.URLParam(r, "id"), list, chi.URLParam(r, "entryID"))
	respondWithUnit(w, r, unit, err, message)
}

// addEntry декодирует элемент списка и добавляет его в подразделение
func addEntry[E domain.Entry](w http.ResponseWriter, r *http.Request, add func(context.Context, string, E) (*domain.Unit, error), message string) {
	var entry E
	if err := DecodeBody(r, &entry); err != nil {
		HandleError(w, r, err, message)
		return
	}

	unit, err := add(r.Context(), chi.URLParam(r, "id"), entry)
	respondWithUnit(w, r, unit, err, message)
}

// respondWithUnit отдает подразделение целиком; для несуществующего подразделения отдается null
func respondWithUnit(w http.ResponseWriter, r *http.Request, unit *domain.Unit, err error, message string) {
	if err != nil {
		if domain.IsNotFound(err) {
			RespondWithJSON(w, r, http.StatusOK, nil)
			return
		}
		HandleError(w, r, err, message)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, unit)
}
