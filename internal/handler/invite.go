package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tenderdesk/tenderdesk/internal/middleware"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/service"
)

type InviteHandler struct {
	invites *service.InviteService
}

func NewInviteHandler(invites *service.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

// InvitePreview is what an invitee sees before accepting.
type InvitePreview struct {
	Email       string            `json:"email"`
	CompanyName string            `json:"company_name"`
	InvitedRole model.CompanyRole `json:"invited_role"`
	ExpiresAt   time.Time         `json:"expires_at"`
	// EmailMatches tells the client whether to offer switching accounts.
	EmailMatches bool `json:"email_matches"`
}

func (h *InviteHandler) Show(w http.ResponseWriter, r *http.Request) {
	invite, err := h.invites.FindByToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	preview := InvitePreview{
		Email:        invite.Email,
		InvitedRole:  invite.InvitedRole,
		ExpiresAt:    invite.ExpiresAt,
		EmailMatches: model.NormalizeEmail(middleware.UserFromContext(r.Context()).Email) == invite.Email,
	}
	if invite.Company != nil {
		preview.CompanyName = invite.Company.Name
	}
	respondOK(w, http.StatusOK, preview)
}

func (h *InviteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	membership, err := h.invites.Accept(r.Context(), middleware.UserFromContext(r.Context()), chi.URLParam(r, "token"))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, membership)
}

func (h *InviteHandler) List(w http.ResponseWriter, r *http.Request) {
	invites, err := h.invites.ListPending(r.Context(), middleware.TenantFromContext(r.Context()))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondList(w, invites, int64(len(invites)))
}

func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateInviteInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err)
		return
	}

	invite, err := h.invites.CreateInvite(r.Context(), middleware.TenantFromContext(r.Context()), middleware.UserFromContext(r.Context()), input)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, invite)
}

func (h *InviteHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	if err := h.invites.Revoke(r.Context(), middleware.TenantFromContext(r.Context()), id); err != nil {
		respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
