package handler

import (
	"net/http"

	"github.com/tenderdesk/tenderdesk/internal/middleware"
	"github.com/tenderdesk/tenderdesk/internal/service"
)

type ClientCompanyHandler struct {
	service *service.ClientCompanyService
}

func NewClientCompanyHandler(service *service.ClientCompanyService) *ClientCompanyHandler {
	return &ClientCompanyHandler{service: service}
}

func (h *ClientCompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"
	clients, total, err := h.service.List(r.Context(), middleware.TenantFromContext(r.Context()), includeArchived, pageFromQuery(r))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondList(w, clients, total)
}

func (h *ClientCompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.ClientCompanyInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err)
		return
	}
	client, err := h.service.Create(r.Context(), middleware.TenantFromContext(r.Context()), input)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, client)
}

func (h *ClientCompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	client, err := h.service.Get(r.Context(), middleware.TenantFromContext(r.Context()), id)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, client)
}

func (h *ClientCompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	var input service.ClientCompanyInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err)
		return
	}
	client, err := h.service.Update(r.Context(), middleware.TenantFromContext(r.Context()), id, input)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, client)
}

func (h *ClientCompanyHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	if err := h.service.Archive(r.Context(), middleware.TenantFromContext(r.Context()), id); err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}
