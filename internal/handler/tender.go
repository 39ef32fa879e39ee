package handler

import (
	"net/http"

	"github.com/tenderdesk/tenderdesk/internal/middleware"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/repository"
	"github.com/tenderdesk/tenderdesk/internal/service"
)

type TenderHandler struct {
	service *service.TenderService
}

func NewTenderHandler(service *service.TenderService) *TenderHandler {
	return &TenderHandler{service: service}
}

func (h *TenderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.TenderFilter{
		CPV:  r.URL.Query().Get("cpv"),
		Page: pageFromQuery(r),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := model.TenderStatus(status)
		filter.Status = &s
	}

	tenders, total, err := h.service.List(r.Context(), middleware.TenantFromContext(r.Context()), filter)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondList(w, tenders, total)
}

func (h *TenderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateTenderInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err)
		return
	}
	tender, err := h.service.Create(r.Context(), middleware.TenantFromContext(r.Context()), input)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, tender)
}

func (h *TenderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	tender, err := h.service.Get(r.Context(), middleware.TenantFromContext(r.Context()), id)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, tender)
}
