package handler

import (
	"net/http"

	"github.com/tenderdesk/tenderdesk/internal/middleware"
	"github.com/tenderdesk/tenderdesk/internal/service"
)

// CompanyHandler serves the active company, its members and its settings.
type CompanyHandler struct {
	companies   *service.CompanyService
	memberships *service.MembershipService
}

func NewCompanyHandler(companies *service.CompanyService, memberships *service.MembershipService) *CompanyHandler {
	return &CompanyHandler{companies: companies, memberships: memberships}
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	company, err := h.companies.GetCompany(r.Context(), middleware.TenantFromContext(r.Context()))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, company)
}

func (h *CompanyHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateSettingsInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err)
		return
	}
	company, err := h.companies.UpdateSettings(r.Context(), middleware.TenantFromContext(r.Context()), input)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, company)
}

func (h *CompanyHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"
	members, err := h.memberships.ListMembers(r.Context(), middleware.TenantFromContext(r.Context()), includeInactive)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondList(w, members, int64(len(members)))
}

func (h *CompanyHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	var input service.UpdateMemberInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err)
		return
	}
	member, err := h.memberships.UpdateMember(r.Context(), middleware.TenantFromContext(r.Context()), id, input)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, member)
}

// DeactivateMember takes an optional reason from the query string.
func (h *CompanyHandler) DeactivateMember(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	var reason *string
	if q := r.URL.Query().Get("reason"); q != "" {
		reason = &q
	}
	member, err := h.memberships.Deactivate(r.Context(), middleware.TenantFromContext(r.Context()), id, reason)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, member)
}

func (h *CompanyHandler) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	var input service.TransferOwnershipInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err)
		return
	}
	if err := h.memberships.TransferOwnership(r.Context(), middleware.TenantFromContext(r.Context()), input); err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}
