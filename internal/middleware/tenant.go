package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/metrics"
	"github.com/tenderdesk/tenderdesk/internal/model"
)

const (
	// ActiveCompanyCookie remembers the tenant a browser last switched to.
	ActiveCompanyCookie = "td_active_company"
	// ActiveCompanyHeader lets API clients pick the tenant per request.
	ActiveCompanyHeader = "X-Active-Company"
)

type TenantResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID, hint string) (*model.TenantContext, error)
}

// Tenant resolves the active tenant for the authenticated user. It must run
// after Authenticate.
func Tenant(resolver TenantResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				respondWithError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
				return
			}

			tc, err := resolver.Resolve(r.Context(), user.ID, tenantHint(r))
			switch {
			case errors.Is(err, domain.ErrNoActiveTenant):
				metrics.AuthzDenialsTotal.WithLabelValues("no_tenant").Inc()
				respondWithError(w, http.StatusForbidden, "NO_ACTIVE_TENANT", "No active company membership")
				return
			case err != nil:
				slog.ErrorContext(r.Context(), "Resolving tenant failed", "error", err, "userID", user.ID, "requestID", chmw.GetReqID(r.Context()))
				respondWithError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), tc)))
		})
	}
}

// tenantHint prefers the explicit header over the cookie.
func tenantHint(r *http.Request) string {
	if h := r.Header.Get(ActiveCompanyHeader); h != "" {
		return h
	}
	if c, err := r.Cookie(ActiveCompanyCookie); err == nil {
		return c.Value
	}
	return ""
}

func TenantFromContext(ctx context.Context) *model.TenantContext {
	tc, _ := ctx.Value(tenantKey).(*model.TenantContext)
	return tc
}

func WithTenant(ctx context.Context, tc *model.TenantContext) context.Context {
	return context.WithValue(ctx, tenantKey, tc)
}

// RequireCompanyRole refuses callers below min in the active company.
func RequireCompanyRole(min model.CompanyRole) func(http.Handler) http.Handler {
	return requireTenant(func(tc *model.TenantContext) bool { return tc.HasCompanyRole(min) })
}

// RequirePlatformRole refuses callers below min on the platform. Platform
// roles only count when the active company is the operator company.
func RequirePlatformRole(min model.PlatformRole) func(http.Handler) http.Handler {
	return requireTenant(func(tc *model.TenantContext) bool { return tc.HasPlatformRole(min) })
}

func requireTenant(allowed func(*model.TenantContext) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tc := TenantFromContext(r.Context())
			if tc == nil || !allowed(tc) {
				metrics.AuthzDenialsTotal.WithLabelValues("role").Inc()
				respondWithError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
