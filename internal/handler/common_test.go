package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderdesk/tenderdesk/internal/domain"
)

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.NewValidationError("name", "is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"invalid input", fmt.Errorf("parsing: %w", domain.ErrInvalidInput), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"no tenant", domain.ErrNoActiveTenant, http.StatusForbidden, "NO_ACTIVE_TENANT"},
		{"email mismatch", domain.ErrEmailMismatch, http.StatusForbidden, "EMAIL_MISMATCH"},
		{"domain not allowed", domain.ErrDomainNotAllowed, http.StatusForbidden, "DOMAIN_NOT_ALLOWED"},
		{"email not verified", domain.ErrEmailNotVerified, http.StatusForbidden, "EMAIL_NOT_VERIFIED"},
		{"sole owner", domain.ErrSoleOwner, http.StatusForbidden, "SOLE_OWNER"},
		{"insufficient role", domain.ErrInsufficientRole, http.StatusForbidden, "FORBIDDEN"},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"tenant mismatch", domain.ErrTenantMismatch, http.StatusNotFound, "NOT_FOUND"},
		{"invite not found", domain.ErrInviteNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"conflict", &domain.ConflictError{Field: "name"}, http.StatusConflict, "CONFLICT"},
		{"stale", domain.ErrStaleState, http.StatusConflict, "STALE_STATE"},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{"out of order", domain.ErrStageOutOfOrder, http.StatusConflict, "STAGE_OUT_OF_ORDER"},
		{"bid locked", domain.ErrBidLocked, http.StatusConflict, "BID_LOCKED"},
		{"active bids", domain.ErrActiveBids, http.StatusConflict, "ACTIVE_BIDS"},
		{"rate limited", &domain.RateLimitError{RetryAfter: 1500 * time.Millisecond}, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"external", &domain.ExternalServiceError{Service: "kvk", Err: errors.New("timeout")}, http.StatusBadGateway, "EXTERNAL_SERVICE_ERROR"},
		{"unknown", errors.New(`pq: relation "bids" does not exist`), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			respondWithError(w, httptest.NewRequest(http.MethodGet, "/api/bids", nil), tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Ok)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestRespondWithErrorDetails(t *testing.T) {
	t.Run("validation fields are listed", func(t *testing.T) {
		w := httptest.NewRecorder()
		respondWithError(w, httptest.NewRequest(http.MethodPost, "/api/clients", nil), domain.NewValidationError("kvk_number", "must be 8 digits"))

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Details, 1)
		assert.Equal(t, "kvk_number", body.Details[0].Field)
	})

	t.Run("retry after is rounded up", func(t *testing.T) {
		w := httptest.NewRecorder()
		respondWithError(w, httptest.NewRequest(http.MethodGet, "/", nil), &domain.RateLimitError{RetryAfter: 1500 * time.Millisecond})
		assert.Equal(t, "2", w.Header().Get("Retry-After"))
	})

	t.Run("email mismatch offers account switch", func(t *testing.T) {
		w := httptest.NewRecorder()
		respondWithError(w, httptest.NewRequest(http.MethodPost, "/", nil), domain.ErrEmailMismatch)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.SwitchAccount)
	})

	t.Run("external errors are retryable", func(t *testing.T) {
		w := httptest.NewRecorder()
		respondWithError(w, httptest.NewRequest(http.MethodPost, "/", nil), &domain.ExternalServiceError{Service: "ai", Err: errors.New("503")})

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Retryable)
	})

	t.Run("internal error text is not leaked", func(t *testing.T) {
		w := httptest.NewRecorder()
		respondWithError(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("password authentication failed for user tenderdesk"))
		assert.NotContains(t, w.Body.String(), "password")
	})
}

func TestDecodeJSON(t *testing.T) {
	type input struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"Acme"}`, false},
		{"unknown field", `{"name":"Acme","tenant_id":"other"}`, true},
		{"empty body", ``, true},
		{"malformed", `{"name":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst input
			err := decodeJSON(httptest.NewRecorder(), r, &dst)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "Acme", dst.Name)
				return
			}
			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "body", validationErr.Fields[0].Field)
		})
	}
}
