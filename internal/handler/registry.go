package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tenderdesk/tenderdesk/internal/middleware"
	"github.com/tenderdesk/tenderdesk/internal/service"
)

// RegistryHandler looks up companies in the chamber of commerce register.
type RegistryHandler struct {
	service *service.RegistryService
}

func NewRegistryHandler(service *service.RegistryService) *RegistryHandler {
	return &RegistryHandler{service: service}
}

func (h *RegistryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Lookup(r.Context(), middleware.TenantFromContext(r.Context()), chi.URLParam(r, "kvk"))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, profile)
}
