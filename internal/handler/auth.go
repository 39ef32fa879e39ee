// internal/handler/auth.go
package handler

import (
	"log/slog"
	"net/http"

	chmw "github.com/go-chi/chi/v5/middleware"

	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/middleware"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/service"
)

type AuthHandler struct {
	userService         *service.UserService
	registrationService *service.RegistrationService
}

func NewAuthHandler(userService *service.UserService, registrationService *service.RegistrationService) *AuthHandler {
	return &AuthHandler{
		userService:         userService,
		registrationService: registrationService,
	}
}

type LoginResponse struct {
	BaseResponse
	User        *model.User         `json:"user"`
	Memberships []*model.Membership `json:"memberships"`
	// NeedsRegistration is set when the user has no active membership yet.
	NeedsRegistration bool `json:"needs_registration"`
}

// LoginHandler records the login of the session principal. New users are
// created here; operator-domain users are joined to the operator company.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		respondWithError(w, r, domain.ErrUnauthorized)
		return
	}

	output, err := h.userService.Login(r.Context(), *principal)
	if err != nil {
		slog.ErrorContext(r.Context(), "User login error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, LoginResponse{
		BaseResponse:      BaseResponse{Ok: true},
		User:              output.User,
		Memberships:       output.Memberships,
		NeedsRegistration: len(output.Memberships) == 0,
	})
}

// MeHandler returns the authenticated user with their active memberships.
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	memberships, err := h.userService.ListMemberships(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, LoginResponse{
		BaseResponse:      BaseResponse{Ok: true},
		User:              user,
		Memberships:       memberships,
		NeedsRegistration: len(memberships) == 0,
	})
}

// RegisterHandler completes onboarding in one of the registration modes.
func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err)
		return
	}

	output, err := h.registrationService.Register(r.Context(), middleware.UserFromContext(r.Context()), input)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	status := http.StatusCreated
	if output.Mode == service.ModeRequestDomainJoin {
		status = http.StatusAccepted
	}
	respondOK(w, status, output)
}
