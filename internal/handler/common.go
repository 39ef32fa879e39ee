package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/middleware"
	"github.com/tenderdesk/tenderdesk/internal/repository"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct { // TypeGen: ErrorResponse
	BaseResponse
	Error         string              `json:"error"`
	Details       []domain.FieldError `json:"details,omitempty"`
	Code          string              `json:"error_code"`
	SwitchAccount bool                `json:"switch_account,omitempty"`
	Retryable     bool                `json:"retryable,omitempty"`
}

type BaseResponse struct { // TypeGen: DefaultResponse
	Ok bool `json:"ok"`
}

// ListResponse wraps a page of results.
type ListResponse struct {
	BaseResponse
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
}

type DataResponse struct {
	BaseResponse
	Data interface{} `json:"data"`
}

func respondOK(w http.ResponseWriter, code int, data interface{}) {
	respondWithJSON(w, code, DataResponse{BaseResponse: BaseResponse{Ok: true}, Data: data})
}

func respondList(w http.ResponseWriter, items interface{}, total int64) {
	respondWithJSON(w, http.StatusOK, ListResponse{BaseResponse: BaseResponse{Ok: true}, Items: items, Total: total})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondWithError maps a service error onto a status code and error code.
// Unknown errors are logged and answered with a generic message.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *domain.ValidationError
		conflictErr   *domain.ConflictError
		rateErr       *domain.RateLimitError
		externalErr   *domain.ExternalServiceError
	)

	switch {
	case errors.As(err, &validationErr):
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Code: "VALIDATION_ERROR", Details: validationErr.Fields})
	case errors.Is(err, domain.ErrInvalidInput):
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Code: "VALIDATION_ERROR"})
	case errors.Is(err, domain.ErrUnauthorized):
		respondWithJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated", Code: "UNAUTHORIZED"})
	case errors.Is(err, domain.ErrNoActiveTenant):
		respondWithJSON(w, http.StatusForbidden, ErrorResponse{Error: "No active company membership", Code: "NO_ACTIVE_TENANT"})
	case errors.Is(err, domain.ErrEmailMismatch):
		respondWithJSON(w, http.StatusForbidden, ErrorResponse{Error: "This invite was sent to a different email address", Code: "EMAIL_MISMATCH", SwitchAccount: true})
	case errors.Is(err, domain.ErrDomainNotAllowed):
		respondWithJSON(w, http.StatusForbidden, ErrorResponse{Error: "Your email domain is not allowed for this company", Code: "DOMAIN_NOT_ALLOWED"})
	case errors.Is(err, domain.ErrEmailNotVerified):
		respondWithJSON(w, http.StatusForbidden, ErrorResponse{Error: "Verify your email address first", Code: "EMAIL_NOT_VERIFIED"})
	case errors.Is(err, domain.ErrSoleOwner):
		respondWithJSON(w, http.StatusForbidden, ErrorResponse{Error: "A company must keep at least one active owner", Code: "SOLE_OWNER"})
	case errors.Is(err, domain.ErrForbidden):
		respondWithJSON(w, http.StatusForbidden, ErrorResponse{Error: "Insufficient role", Code: "FORBIDDEN"})
	case errors.Is(err, domain.ErrNotFound):
		// Cross-tenant hits get the exact same body as a real miss.
		respondWithJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not found", Code: "NOT_FOUND"})
	case errors.As(err, &conflictErr):
		respondWithJSON(w, http.StatusConflict, ErrorResponse{
			Error:   conflictErr.Error(),
			Code:    "CONFLICT",
			Details: []domain.FieldError{{Field: conflictErr.Field, Message: "already exists"}},
		})
	case errors.Is(err, domain.ErrStaleState):
		respondWithJSON(w, http.StatusConflict, ErrorResponse{Error: "The stage was changed by someone else, reload and retry", Code: "STALE_STATE"})
	case errors.Is(err, domain.ErrInvalidTransition):
		respondWithJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "INVALID_TRANSITION"})
	case errors.Is(err, domain.ErrStageOutOfOrder):
		respondWithJSON(w, http.StatusConflict, ErrorResponse{Error: "The previous stage is not approved yet", Code: "STAGE_OUT_OF_ORDER"})
	case errors.Is(err, domain.ErrBidLocked):
		respondWithJSON(w, http.StatusConflict, ErrorResponse{Error: "Completed bids cannot be deleted", Code: "BID_LOCKED"})
	case errors.Is(err, domain.ErrActiveBids):
		respondWithJSON(w, http.StatusConflict, ErrorResponse{Error: "The client company still has open bids", Code: "ACTIVE_BIDS"})
	case errors.As(err, &rateErr):
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(rateErr.RetryAfter.Seconds()))))
		respondWithJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: "Too many requests", Code: "RATE_LIMITED", Retryable: true})
	case errors.As(err, &externalErr):
		slog.WarnContext(r.Context(), "External service failed", "service", externalErr.Service, "error", err,
			"endpoint", r.Method+" "+r.URL.Path, "requestID", chmw.GetReqID(r.Context()))
		respondWithJSON(w, http.StatusBadGateway, ErrorResponse{Error: externalErr.Service + " is unavailable, try again", Code: "EXTERNAL_SERVICE_ERROR", Retryable: true})
	default:
		attrs := []any{"error", err, "endpoint", r.Method + " " + r.URL.Path, "requestID", chmw.GetReqID(r.Context())}
		if user := middleware.UserFromContext(r.Context()); user != nil {
			attrs = append(attrs, "userID", user.ID)
		}
		if tc := middleware.TenantFromContext(r.Context()); tc != nil {
			attrs = append(attrs, "tenantID", tc.TenantID)
		}
		slog.ErrorContext(r.Context(), "Request failed", attrs...)
		respondWithJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", Code: "INTERNAL_ERROR"})
	}
}

// decodeJSON reads a JSON body into dst, refusing unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("body", "request body is empty")
		}
		return domain.NewValidationError("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	return nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

func uuidQuery(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be a UUID")
	}
	return &id, nil
}

func pageFromQuery(r *http.Request) repository.Page {
	var page repository.Page
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		page.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset >= 0 {
		page.Offset = offset
	}
	return page
}

func timeQuery(r *http.Request, name string) time.Time {
	t, _ := time.Parse(time.RFC3339, r.URL.Query().Get(name))
	return t
}
