package handler

import (
	"net/http"

	"github.com/tenderdesk/tenderdesk/internal/middleware"
	"github.com/tenderdesk/tenderdesk/internal/service"
)

// KnowledgeHandler manages document metadata. Uploads go straight to object
// storage; the client registers the storage key afterwards.
type KnowledgeHandler struct {
	service *service.KnowledgeService
}

func NewKnowledgeHandler(service *service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{service: service}
}

func (h *KnowledgeHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, total, err := h.service.List(r.Context(), middleware.TenantFromContext(r.Context()), pageFromQuery(r))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondList(w, docs, total)
}

func (h *KnowledgeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateDocumentInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err)
		return
	}
	doc, err := h.service.Create(r.Context(), middleware.TenantFromContext(r.Context()), input)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, doc)
}

func (h *KnowledgeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	doc, err := h.service.Get(r.Context(), middleware.TenantFromContext(r.Context()), id)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, doc)
}

func (h *KnowledgeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), middleware.TenantFromContext(r.Context()), id); err != nil {
		respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
