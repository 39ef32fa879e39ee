package handler

import (
	"net/http"

	"github.com/tenderdesk/tenderdesk/internal/middleware"
	"github.com/tenderdesk/tenderdesk/internal/service"
)

type TenantHandler struct {
	tenants       *service.TenantService
	secureCookies bool
}

func NewTenantHandler(tenants *service.TenantService, secureCookies bool) *TenantHandler {
	return &TenantHandler{tenants: tenants, secureCookies: secureCookies}
}

// Current returns the resolved tenant context of the request.
func (h *TenantHandler) Current(w http.ResponseWriter, r *http.Request) {
	respondOK(w, http.StatusOK, middleware.TenantFromContext(r.Context()))
}

type SwitchTenantRequest struct {
	TenantID string `json:"tenant_id"`
}

// Switch makes another of the caller's companies active and remembers the
// choice in a cookie.
func (h *TenantHandler) Switch(w http.ResponseWriter, r *http.Request) {
	var req SwitchTenantRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, r, err)
		return
	}

	tc, err := h.tenants.Switch(r.Context(), middleware.UserFromContext(r.Context()).ID, req.TenantID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.ActiveCompanyCookie,
		Value:    tc.TenantID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	respondOK(w, http.StatusOK, tc)
}
