package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderdesk/tenderdesk/internal/auth"
	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/middleware"
	"github.com/tenderdesk/tenderdesk/internal/model"
)

const testSecret = "middleware-test-secret"

type userFunc func(ctx context.Context, p auth.Principal) (*model.User, error)

func (f userFunc) Authenticate(ctx context.Context, p auth.Principal) (*model.User, error) {
	return f(ctx, p)
}

type resolverFunc func(ctx context.Context, userID uuid.UUID, hint string) (*model.TenantContext, error)

func (f resolverFunc) Resolve(ctx context.Context, userID uuid.UUID, hint string) (*model.TenantContext, error) {
	return f(ctx, userID, hint)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Ok   bool   `json:"ok"`
		Code string `json:"error_code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Ok)
	return body.Code
}

func issueToken(t *testing.T, tokens *auth.TokenManager) string {
	t.Helper()
	token, err := tokens.Generate(auth.Principal{ExternalID: "ext-1", Email: "jan@acme.nl", EmailVerified: true})
	require.NoError(t, err)
	return token
}

func TestRequirePrincipal(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret, "tenderdesk", time.Hour)
	token := issueToken(t, tokens)

	var seen *auth.Principal
	handler := middleware.RequirePrincipal(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "ext-1", seen.ExternalID)
	})

	t.Run("session cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		forged := issueToken(t, auth.NewTokenManager("other-secret", "tenderdesk", time.Hour))
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret, "tenderdesk", time.Hour)
	token := issueToken(t, tokens)
	user := &model.User{ID: uuid.New(), Email: "jan@acme.nl"}

	request := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		return req
	}

	t.Run("known user is put on the context", func(t *testing.T) {
		users := userFunc(func(ctx context.Context, p auth.Principal) (*model.User, error) {
			assert.Equal(t, "ext-1", p.ExternalID)
			return user, nil
		})
		var seen *model.User
		handler := middleware.Authenticate(tokens, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.UserFromContext(r.Context())
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, request())

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, user, seen)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := userFunc(func(context.Context, auth.Principal) (*model.User, error) {
			return nil, domain.ErrUnauthorized
		})
		w := httptest.NewRecorder()
		middleware.Authenticate(tokens, users)(okHandler()).ServeHTTP(w, request())

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
	})

	t.Run("lookup failure", func(t *testing.T) {
		users := userFunc(func(context.Context, auth.Principal) (*model.User, error) {
			return nil, errors.New("connection refused")
		})
		w := httptest.NewRecorder()
		middleware.Authenticate(tokens, users)(okHandler()).ServeHTTP(w, request())

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestTenant(t *testing.T) {
	user := &model.User{ID: uuid.New(), Email: "jan@acme.nl"}
	tc := &model.TenantContext{UserID: user.ID, TenantID: "acme-bv-x1y2z3", CompanyRole: model.CompanyRoleMember}

	t.Run("header hint wins over cookie", func(t *testing.T) {
		var gotHint string
		resolver := resolverFunc(func(ctx context.Context, userID uuid.UUID, hint string) (*model.TenantContext, error) {
			assert.Equal(t, user.ID, userID)
			gotHint = hint
			return tc, nil
		})
		var seen *model.TenantContext
		handler := middleware.Tenant(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.TenantFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/bids", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), user))
		req.Header.Set(middleware.ActiveCompanyHeader, "from-header")
		req.AddCookie(&http.Cookie{Name: middleware.ActiveCompanyCookie, Value: "from-cookie"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "from-header", gotHint)
		assert.Equal(t, tc, seen)
	})

	t.Run("cookie hint", func(t *testing.T) {
		var gotHint string
		resolver := resolverFunc(func(ctx context.Context, userID uuid.UUID, hint string) (*model.TenantContext, error) {
			gotHint = hint
			return tc, nil
		})
		req := httptest.NewRequest(http.MethodGet, "/api/bids", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), user))
		req.AddCookie(&http.Cookie{Name: middleware.ActiveCompanyCookie, Value: "from-cookie"})
		w := httptest.NewRecorder()
		middleware.Tenant(resolver)(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, "from-cookie", gotHint)
	})

	t.Run("no active membership", func(t *testing.T) {
		resolver := resolverFunc(func(context.Context, uuid.UUID, string) (*model.TenantContext, error) {
			return nil, domain.ErrNoActiveTenant
		})
		req := httptest.NewRequest(http.MethodGet, "/api/bids", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), user))
		w := httptest.NewRecorder()
		middleware.Tenant(resolver)(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "NO_ACTIVE_TENANT", errorCode(t, w))
	})

	t.Run("no user", func(t *testing.T) {
		resolver := resolverFunc(func(context.Context, uuid.UUID, string) (*model.TenantContext, error) {
			t.Fatal("resolver must not run without a user")
			return nil, nil
		})
		w := httptest.NewRecorder()
		middleware.Tenant(resolver)(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bids", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireCompanyRole(t *testing.T) {
	tests := []struct {
		role model.CompanyRole
		want int
	}{
		{model.CompanyRoleViewer, http.StatusForbidden},
		{model.CompanyRoleMember, http.StatusForbidden},
		{model.CompanyRoleAdmin, http.StatusOK},
		{model.CompanyRoleOwner, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/api/company/settings", nil)
			req = req.WithContext(middleware.WithTenant(req.Context(), &model.TenantContext{CompanyRole: tt.role}))
			w := httptest.NewRecorder()
			middleware.RequireCompanyRole(model.CompanyRoleAdmin)(okHandler()).ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", errorCode(t, w))
			}
		})
	}

	t.Run("no tenant", func(t *testing.T) {
		w := httptest.NewRecorder()
		middleware.RequireCompanyRole(model.CompanyRoleViewer)(okHandler()).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRequirePlatformRole(t *testing.T) {
	support := model.PlatformRoleSupport
	viewer := model.PlatformRoleViewer

	tests := []struct {
		name string
		tc   *model.TenantContext
		want int
	}{
		{"support in operator company", &model.TenantContext{IsOperator: true, PlatformRole: &support}, http.StatusOK},
		{"viewer in operator company", &model.TenantContext{IsOperator: true, PlatformRole: &viewer}, http.StatusForbidden},
		{"support outside operator company", &model.TenantContext{IsOperator: false, PlatformRole: &support}, http.StatusForbidden},
		{"no platform role", &model.TenantContext{IsOperator: true}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/audit-logs", nil)
			req = req.WithContext(middleware.WithTenant(req.Context(), tt.tc))
			w := httptest.NewRecorder()
			middleware.RequirePlatformRole(model.PlatformRoleSupport)(okHandler()).ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRecovery(t *testing.T) {
	handler := middleware.Recovery(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bids", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, w))
	assert.NotContains(t, w.Body.String(), "boom")
}
